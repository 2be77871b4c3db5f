package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/repcoach/internal/coach"
	"github.com/alexanderramin/repcoach/internal/posesim"
	"github.com/alexanderramin/repcoach/internal/posetrack"
	"github.com/alexanderramin/repcoach/internal/repository"
	"github.com/alexanderramin/repcoach/internal/service"
	"github.com/alexanderramin/repcoach/internal/testutil"
	"github.com/alexanderramin/repcoach/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCoach answers every message with reply, or fails with err.
type stubCoach struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (c *stubCoach) Chat(context.Context, coach.ChatRequest) (*coach.ChatResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &coach.ChatResponse{Text: c.reply}, nil
}

func (c *stubCoach) Available(context.Context) bool { return c.err == nil }

// testEnv is an App backed by an in-memory DB and a simulated pose backend.
type testEnv struct {
	app   *App
	sim   *posesim.Simulator
	coach *stubCoach
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)

	records := repository.NewSQLiteExerciseRepo(database)
	profiles := repository.NewSQLiteProfileRepo(database)
	chats := repository.NewSQLiteChatRepo(database)
	stub := &stubCoach{reply: "Keep going!"}

	sim := posesim.New()
	srv := httptest.NewServer(sim.Handler())
	t.Cleanup(srv.Close)

	tcfg := posetrack.DefaultConfig()
	tcfg.BaseURL = srv.URL
	tcfg.PollIntervalMs = 20
	tcfg.SettleDelayMs = 0

	app := &App{
		User:          "alice",
		Exercises:     service.NewExerciseService(records, profiles),
		Profiles:      service.NewProfileService(profiles),
		Chat:          service.NewChatService(chats, stub, testutil.NewTestUoW(database)),
		Workouts:      service.NewWorkoutService(records, profiles, stub),
		Tracking:      posetrack.NewClient(tcfg),
		TrackerConfig: tcfg,
	}
	return &testEnv{app: app, sim: sim, coach: stub}
}

// executeCmd runs the root command with args and captures its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app)
	require.NoError(t, err)
	assert.Contains(t, out, "repcoach")
	assert.Contains(t, out, "perform")
}

func TestRootCmd_SetupRunsWithFlags(t *testing.T) {
	env := newTestEnv(t)
	var got GlobalFlags
	env.app.Setup = func(_ context.Context, f GlobalFlags) error {
		got = f
		return nil
	}

	_, err := executeCmd(t, env.app, "--user", "bob", "--db", "/tmp/x.db", "--log-level", "debug", "workout", "list")
	require.NoError(t, err)
	assert.Equal(t, GlobalFlags{User: "bob", DBPath: "/tmp/x.db", LogLevel: "debug"}, got)
	assert.Equal(t, "bob", env.app.User)
}

func TestWorkoutList(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app, "workout", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Push Ups")
	assert.Contains(t, out, "Pull Ups")
	assert.Contains(t, out, "Planks")
}

func TestWorkoutSuggest(t *testing.T) {
	env := newTestEnv(t)
	env.coach.reply = `{"workouts":[{"name":"Planks","reps":4,"reason":"core"}]}`

	out, err := executeCmd(t, env.app, "workout", "suggest", "--goal", "abs")
	require.NoError(t, err)
	assert.Contains(t, out, "Planks")
	assert.Contains(t, out, "4 reps")
}

func TestWorkoutSuggest_CoachDown(t *testing.T) {
	env := newTestEnv(t)
	env.coach.err = coach.ErrUnavailable

	_, err := executeCmd(t, env.app, "workout", "suggest")
	assert.ErrorIs(t, err, coach.ErrUnavailable)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := executeCmd(t, env.app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts recorded yet.")

	old := testutil.NewTestRecord("alice", testutil.WithCompletedAt(time.Now().AddDate(0, 0, -30)))
	old.ExerciseType = "Pull Ups"
	require.NoError(t, env.app.Exercises.RecordExercise(ctx, old))
	require.NoError(t, env.app.Exercises.RecordExercise(ctx, testutil.NewTestRecord("alice")))

	out, err = executeCmd(t, env.app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Push Ups")
	assert.Contains(t, out, "Pull Ups")

	out, err = executeCmd(t, env.app, "history", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Push Ups")
	assert.NotContains(t, out, "Pull Ups")

	_, err = executeCmd(t, env.app, "history", "--days", "-1")
	assert.Error(t, err)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.app.Exercises.RecordExercise(context.Background(), testutil.NewTestRecord("alice")))

	out, err := executeCmd(t, env.app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back")
	assert.Contains(t, out, "Push Ups")
}

func TestProfileSetAndShow(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app, "profile", "set", "--name", "Alice Doe", "--height", "170", "--weight", "65")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile saved.")

	out, err = executeCmd(t, env.app, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Doe")
	assert.Contains(t, out, "22.49")
}

func TestProfileSet_NoFlagsNonInteractive(t *testing.T) {
	env := newTestEnv(t)

	_, err := executeCmd(t, env.app, "profile", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestProfileSet_InvalidValue(t *testing.T) {
	env := newTestEnv(t)

	_, err := executeCmd(t, env.app, "profile", "set", "--weight=-3")
	assert.ErrorIs(t, err, service.ErrInvalidProfile)
}

func TestBMI(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app, "bmi", "--height", "180", "--weight", "81")
	require.NoError(t, err)
	assert.Contains(t, out, "25.00")
	assert.Contains(t, out, "Overweight")

	_, err = executeCmd(t, env.app, "bmi", "--height", "180")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both --height and --weight")

	_, err = executeCmd(t, env.app, "bmi")
	require.ErrorIs(t, err, service.ErrMissingMeasurements)
	assert.Contains(t, err.Error(), "profile set")

	_, err = executeCmd(t, env.app, "profile", "set", "--height", "170", "--weight", "65")
	require.NoError(t, err)
	out, err = executeCmd(t, env.app, "bmi")
	require.NoError(t, err)
	assert.Contains(t, out, "22.49")
}

func TestChat_OneShotAndHistory(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app, "chat", "how", "many", "planks?")
	require.NoError(t, err)
	assert.Contains(t, out, "You: how many planks?")
	assert.Contains(t, out, "Coach: Keep going!")

	out, err = executeCmd(t, env.app, "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "how many planks?")
}

func TestChat_CoachFailure(t *testing.T) {
	env := newTestEnv(t)
	env.coach.err = coach.ErrTimeout

	_, err := executeCmd(t, env.app, "chat", "hello")
	require.ErrorIs(t, err, coach.ErrTimeout)

	out, err := executeCmd(t, env.app, "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "No messages yet")
}

func TestPerform_PlainCompletesAndSaves(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go env.sim.Run(ctx, 10*time.Millisecond)

	out, err := executeCmd(t, env.app, "perform", "planks", "--reps", "3", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Planks")
	assert.Contains(t, out, "Live feed:")
	assert.Contains(t, out, "target 3 reps")
	assert.Contains(t, out, "Workout complete!")
	assert.Contains(t, out, "Saved to your history.")

	history, err := env.app.Exercises.ListHistory(context.Background(), "alice", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Planks", history[0].ExerciseType)
	assert.Equal(t, "3", history[0].ExerciseID)
	assert.GreaterOrEqual(t, history[0].Reps, 3)
}

func TestPerform_ServiceDown(t *testing.T) {
	env := newTestEnv(t)
	env.sim.SetHealthy(false)

	out, err := executeCmd(t, env.app, "perform", "1", "--plain")
	require.ErrorIs(t, err, tracker.ErrServiceUnavailable)
	assert.Contains(t, out, "Could not start session")
	assert.Equal(t, 0, env.sim.Calls("/reset"))
}

func TestPerform_UnknownExercise(t *testing.T) {
	env := newTestEnv(t)

	_, err := executeCmd(t, env.app, "perform", "burpees")
	assert.ErrorIs(t, err, service.ErrUnknownExercise)
}

func TestPerform_RejectsNegativeReps(t *testing.T) {
	env := newTestEnv(t)

	_, err := executeCmd(t, env.app, "perform", "1", "--reps", "-2")
	assert.Error(t, err)
}

func TestSessionConfigFor_DefaultsReps(t *testing.T) {
	env := newTestEnv(t)

	cfg, err := sessionConfigFor(env.app, "pull ups", 0)
	require.NoError(t, err)
	assert.Equal(t, tracker.SessionConfig{
		UserID:            "alice",
		ExerciseID:        "2",
		ExerciseName:      "Pull Ups",
		AssignedReps:      10,
		CaloriesPerMinute: 60,
	}, cfg)
}

func TestProfileUpdateFromForm(t *testing.T) {
	upd := profileUpdateFromForm("alice", "Alice", "a@example.com", "", "170.5", "abc")
	require.NotNil(t, upd.FullName)
	assert.Equal(t, "Alice", *upd.FullName)
	assert.Nil(t, upd.Age)
	require.NotNil(t, upd.HeightCm)
	assert.Equal(t, 170.5, *upd.HeightCm)
	assert.Nil(t, upd.WeightKg)
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validateOptionalPositiveFloat(""))
	assert.NoError(t, validateOptionalPositiveFloat("72.5"))
	assert.Error(t, validateOptionalPositiveFloat("0"))
	assert.Error(t, validateOptionalPositiveFloat("tall"))

	assert.NoError(t, validateOptionalAge(" "))
	assert.NoError(t, validateOptionalAge("42"))
	assert.Error(t, validateOptionalAge("151"))

	assert.Equal(t, "", formatOptionalFloat(0))
	assert.Equal(t, "170.5", formatOptionalFloat(170.5))
	assert.Equal(t, "", formatOptionalInt(0))
	assert.Equal(t, "30", formatOptionalInt(30))
}

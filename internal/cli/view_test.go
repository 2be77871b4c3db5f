package cli

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/repcoach/internal/coach"
	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/teatest"
	"github.com/alexanderramin/repcoach/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plainView(m tea.Model) string {
	return ansiPattern.ReplaceAllString(m.View(), "")
}

var (
	keyS = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}
	keyQ = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

// press delivers msg and runs the resulting Cmd inline, feeding its message
// back into the model.
func press(t *testing.T, m tea.Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func newTestSession(t *testing.T, env *testEnv, reps int) (*sessionModel, *tracker.Tracker) {
	t.Helper()
	cfg, err := sessionConfigFor(env.app, "planks", reps)
	require.NoError(t, err)
	tr, err := tracker.New(cfg, env.app.Tracking, env.app.Exercises, tracker.FromConfig(env.app.TrackerConfig)...)
	require.NoError(t, err)
	t.Cleanup(tr.Close)
	return newSessionModel(context.Background(), tr), tr
}

func drainUntil(t *testing.T, m *sessionModel, tr *tracker.Tracker, kind tracker.EventKind) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-tr.Events():
			m.Update(sessionEventMsg(ev))
			if ev.Kind == kind {
				return
			}
		case <-deadline:
			t.Fatalf("no %s event", kind)
		}
	}
}

func TestSessionView_Initial(t *testing.T) {
	env := newTestEnv(t)
	m, _ := newTestSession(t, env, 3)

	d := teatest.New(t, m, teatest.WithSize(80, 24))
	d.RequireViewContains("PLANKS", "IDLE", "0 / 3", "00:00", "Live feed:", "/video_feed", "s start/stop · q quit")
}

func TestSessionView_CompletesAndShowsOutcome(t *testing.T) {
	env := newTestEnv(t)
	m, tr := newTestSession(t, env, 3)

	press(t, m, keyS)
	assert.Contains(t, plainView(m), "RUNNING")
	assert.Contains(t, plainView(m), "Tracking. Press s to stop.")

	env.sim.SetReps(3)
	drainUntil(t, m, tr, tracker.EventCompleted)

	view := plainView(m)
	assert.Contains(t, view, "COMPLETED")
	assert.Contains(t, view, "3 / 3")
	assert.Contains(t, view, "Workout complete!")
	assert.Contains(t, view, "Saved to your history.")

	history, err := env.app.Exercises.ListHistory(context.Background(), "alice", 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSessionView_StopBelowTarget(t *testing.T) {
	env := newTestEnv(t)
	m, tr := newTestSession(t, env, 3)

	press(t, m, keyS)
	env.sim.SetReps(1)
	drainUntil(t, m, tr, tracker.EventRepsChanged)

	press(t, m, keyS)
	view := plainView(m)
	assert.Contains(t, view, "STOPPED")
	assert.Contains(t, view, "1 of 3 reps")
	assert.Contains(t, view, "Nothing was saved.")
	assert.Equal(t, tracker.PhaseStopped, tr.Snapshot().Phase)
}

func TestSessionView_StartFailure(t *testing.T) {
	env := newTestEnv(t)
	env.sim.SetHealthy(false)
	m, tr := newTestSession(t, env, 3)

	press(t, m, keyS)
	view := plainView(m)
	assert.Contains(t, view, "Could not start session")
	assert.Contains(t, view, "IDLE")
	assert.Equal(t, tracker.PhaseIdle, tr.Snapshot().Phase)
}

func TestSessionView_QuitClosesTracker(t *testing.T) {
	env := newTestEnv(t)
	m, tr := newTestSession(t, env, 3)

	press(t, m, keyS)
	require.Equal(t, tracker.PhaseRunning, tr.Snapshot().Phase)

	_, cmd := m.Update(keyQ)
	require.NotNil(t, cmd)
	assert.Contains(t, plainView(m), "Closing...")

	msg := cmd()
	assert.Equal(t, tracker.PhaseStopped, tr.Snapshot().Phase)

	_, quit := m.Update(msg)
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

// gatedRecorder holds the first save until release is closed.
type gatedRecorder struct {
	next    tracker.Recorder
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *gatedRecorder) RecordExercise(ctx context.Context, rec *domain.ExerciseRecord) error {
	r.once.Do(func() { close(r.entered) })
	<-r.release
	return r.next.RecordExercise(ctx, rec)
}

func TestSessionView_QuitDoesNotWaitForPendingSave(t *testing.T) {
	env := newTestEnv(t)
	cfg, err := sessionConfigFor(env.app, "planks", 3)
	require.NoError(t, err)
	rec := &gatedRecorder{next: env.app.Exercises, entered: make(chan struct{}), release: make(chan struct{})}
	tr, err := tracker.New(cfg, env.app.Tracking, rec, tracker.FromConfig(env.app.TrackerConfig)...)
	require.NoError(t, err)
	t.Cleanup(tr.Close)
	m := newSessionModel(context.Background(), tr)

	press(t, m, keyS)
	env.sim.SetReps(3)
	select {
	case <-rec.entered:
	case <-time.After(3 * time.Second):
		t.Fatal("session never reached the save")
	}

	cmds := make(chan tea.Cmd, 1)
	go func() {
		_, cmd := m.Update(keyQ)
		cmds <- cmd
	}()
	var cmd tea.Cmd
	select {
	case cmd = <-cmds:
	case <-time.After(time.Second):
		close(rec.release)
		t.Fatal("quit key blocked the update loop")
	}
	require.NotNil(t, cmd)
	assert.Contains(t, plainView(m), "Saving your workout...")

	close(rec.release)
	_, quit := m.Update(cmd())
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())

	m.drainPending()
	require.NotNil(t, m.outcome)
	assert.True(t, m.outcome.Saved)

	history, err := env.app.Exercises.ListHistory(context.Background(), env.app.User, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].Reps)
}

func TestSessionView_IgnoresEventsFromAnotherAttempt(t *testing.T) {
	env := newTestEnv(t)
	m, tr := newTestSession(t, env, 3)
	require.Equal(t, uint64(0), tr.Snapshot().Attempt)

	m.Update(sessionEventMsg(tracker.Event{
		Kind:     tracker.EventCompleted,
		Snapshot: tracker.Snapshot{Attempt: 7, Phase: tracker.PhaseCompleted, ObservedReps: 3, AssignedReps: 3, Saved: true},
		Record:   &domain.ExerciseRecord{Reps: 3, DurationSec: 30},
		Saved:    true,
	}))

	assert.Nil(t, m.outcome)
	view := plainView(m)
	assert.Contains(t, view, "IDLE")
	assert.Contains(t, view, "0 / 3")
	assert.NotContains(t, view, "Workout complete")
}

func TestChatView_SendAndReply(t *testing.T) {
	env := newTestEnv(t)
	history := []*domain.ChatMessage{{Message: "earlier question", Response: "earlier answer"}}
	m := newChatModel(context.Background(), env.app, "session-alice-1", history)

	d := teatest.New(t, m, teatest.WithSize(80, 24))
	d.RequireViewContains("session-alice-1", "You: earlier question", "Coach: earlier answer")

	d.Type("hi coach")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := plainView(m)
	assert.Contains(t, view, "You: hi coach")
	assert.Contains(t, view, "Coach: Keep going!")
	assert.NotContains(t, view, "Coach is typing...")

	stored, err := env.app.Chat.History(context.Background(), "alice", 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "hi coach", stored[0].Message)
}

func TestChatView_CoachError(t *testing.T) {
	env := newTestEnv(t)
	env.coach.err = coach.ErrUnavailable
	m := newChatModel(context.Background(), env.app, "s", nil)

	d := teatest.New(t, m)
	d.RequireViewContains("No messages yet")
	d.Type("hello")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, plainView(m), "Coach unavailable:")
}

func TestChatView_Quit(t *testing.T) {
	env := newTestEnv(t)
	m := newChatModel(context.Background(), env.app, "s", nil)

	d := teatest.New(t, m)
	d.Type("/quit")
	d.PressEnter()
	assert.True(t, d.Quitting)

	d2 := teatest.New(t, newChatModel(context.Background(), env.app, "s", nil))
	d2.PressEsc()
	assert.True(t, d2.Quitting)
}

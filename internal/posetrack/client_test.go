package posetrack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/repcoach/internal/posesim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimClient(t *testing.T) (*Client, *posesim.Simulator) {
	t.Helper()
	sim := posesim.New()
	srv := httptest.NewServer(sim.Handler())
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/"
	return NewClient(cfg), sim
}

func TestClient_ProbeResetStatus(t *testing.T) {
	c, sim := newSimClient(t)
	ctx := context.Background()

	require.NoError(t, c.Probe(ctx))

	sim.Advance(7)
	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, st.Reps)

	require.NoError(t, c.Reset(ctx))
	st, err = c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Reps)
}

func TestClient_FeedURL(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://pose.local:8000/"})
	assert.Equal(t, "http://pose.local:8000/video_feed", c.FeedURL())
}

func TestClient_NonSuccessStatus(t *testing.T) {
	c, sim := newSimClient(t)
	sim.SetHealthy(false)

	err := c.Probe(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "probe", se.Op)
}

func TestClient_Timeout(t *testing.T) {
	c, sim := newSimClient(t)
	sim.SetDelay("/", 300*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Probe(ctx)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Unavailable(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"}) // nothing listening
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := c.Probe(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_BadStatusBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reps": "many"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Status(context.Background())
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("REPCOACH_TRACKER_URL", "http://10.0.0.5:8000")
	t.Setenv("REPCOACH_TRACKER_POLL_INTERVAL_MS", "250")
	t.Setenv("REPCOACH_TRACKER_SETTLE_DELAY_MS", "0")
	t.Setenv("REPCOACH_TRACKER_RESET_TIMEOUT_MS", "-3")

	cfg := LoadConfig()
	assert.Equal(t, "http://10.0.0.5:8000", cfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, time.Duration(0), cfg.SettleDelay())
	assert.Equal(t, 5*time.Second, cfg.ResetTimeout(), "invalid values are ignored")
}

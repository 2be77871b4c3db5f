package posetrack

import (
	"os"
	"strconv"
	"time"
)

// Config holds the Tracking Service endpoint and the timing used by
// sessions run against it.
type Config struct {
	BaseURL         string
	HealthTimeoutMs int
	ResetTimeoutMs  int
	StatusTimeoutMs int
	PollIntervalMs  int
	SettleDelayMs   int
	// MaxPollFailures stops a session after this many consecutive failed
	// status polls. Zero keeps polling indefinitely.
	MaxPollFailures int
}

// DefaultConfig returns a Config pointing at a local pose backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "http://localhost:8000",
		HealthTimeoutMs: 5000,
		ResetTimeoutMs:  5000,
		StatusTimeoutMs: 5000,
		PollIntervalMs:  1500,
		SettleDelayMs:   300,
		MaxPollFailures: 0,
	}
}

// LoadConfig reads tracker configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overrides cfg with any REPCOACH_TRACKER_* variables that are set.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("REPCOACH_TRACKER_URL"); v != "" {
		cfg.BaseURL = v
	}
	applyMsEnv(&cfg.HealthTimeoutMs, "REPCOACH_TRACKER_HEALTH_TIMEOUT_MS", false)
	applyMsEnv(&cfg.ResetTimeoutMs, "REPCOACH_TRACKER_RESET_TIMEOUT_MS", false)
	applyMsEnv(&cfg.StatusTimeoutMs, "REPCOACH_TRACKER_STATUS_TIMEOUT_MS", false)
	applyMsEnv(&cfg.PollIntervalMs, "REPCOACH_TRACKER_POLL_INTERVAL_MS", false)
	applyMsEnv(&cfg.SettleDelayMs, "REPCOACH_TRACKER_SETTLE_DELAY_MS", true)
	applyMsEnv(&cfg.MaxPollFailures, "REPCOACH_TRACKER_MAX_POLL_FAILURES", true)
}

func applyMsEnv(dst *int, envName string, allowZero bool) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || (n == 0 && !allowZero) {
		return
	}
	*dst = n
}

func (c Config) HealthTimeout() time.Duration { return ms(c.HealthTimeoutMs) }
func (c Config) ResetTimeout() time.Duration  { return ms(c.ResetTimeoutMs) }
func (c Config) StatusTimeout() time.Duration { return ms(c.StatusTimeoutMs) }
func (c Config) PollInterval() time.Duration  { return ms(c.PollIntervalMs) }
func (c Config) SettleDelay() time.Duration   { return ms(c.SettleDelayMs) }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

package coach

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of coach call being made.
type TaskType string

const (
	TaskChat    TaskType = "chat"
	TaskSuggest TaskType = "suggest"
)

// TaskConfig holds per-task parameters.
type TaskConfig struct {
	TimeoutMs int // overrides global if > 0
}

// Config holds all configuration for the coach client.
type Config struct {
	Enabled       bool
	LogCalls      bool
	Endpoint      string
	TimeoutMs     int
	MaxRetries    int
	RatePerMinute float64
	Tasks         map[TaskType]TaskConfig
}

// DefaultConfig returns a Config pointing at the hosted coach. The hosted
// service sleeps when idle, so the timeout allows for a cold start.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		LogCalls:      false,
		Endpoint:      "https://conversationalllmsapi.onrender.com",
		TimeoutMs:     30000,
		MaxRetries:    1,
		RatePerMinute: 20,
		Tasks:         map[TaskType]TaskConfig{},
	}
}

// LoadConfig reads coach configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overrides cfg with any REPCOACH_COACH_* variables that are set.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("REPCOACH_COACH_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("REPCOACH_COACH_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := os.Getenv("REPCOACH_COACH_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("REPCOACH_COACH_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("REPCOACH_COACH_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("REPCOACH_COACH_RATE_PER_MINUTE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RatePerMinute = f
		}
	}

	applyTaskTimeoutEnv(cfg, TaskChat, "REPCOACH_COACH_CHAT_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskSuggest, "REPCOACH_COACH_SUGGEST_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout in milliseconds for a task.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}

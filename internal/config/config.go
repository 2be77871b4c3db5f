// Package config loads the optional TOML configuration file and layers it
// with environment overrides.
package config

import (
	"fmt"
	"os"
	"os/user"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/repcoach/internal/coach"
	"github.com/alexanderramin/repcoach/internal/posetrack"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "unset" from zero values.
type FileConfig struct {
	User    *string       `toml:"user"`
	DBPath  *string       `toml:"db"`
	Log     LogConfig     `toml:"log"`
	Tracker TrackerConfig `toml:"tracker"`
	Coach   CoachConfig   `toml:"coach"`
}

type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

type TrackerConfig struct {
	URL             *string `toml:"url"`
	HealthTimeoutMs *int    `toml:"health-timeout-ms"`
	ResetTimeoutMs  *int    `toml:"reset-timeout-ms"`
	StatusTimeoutMs *int    `toml:"status-timeout-ms"`
	PollIntervalMs  *int    `toml:"poll-interval-ms"`
	SettleDelayMs   *int    `toml:"settle-delay-ms"`
	MaxPollFailures *int    `toml:"max-poll-failures"`
}

type CoachConfig struct {
	Enabled    *bool    `toml:"enabled"`
	Endpoint   *string  `toml:"endpoint"`
	TimeoutMs  *int     `toml:"timeout-ms"`
	MaxRetries *int     `toml:"max-retries"`
	RatePerMin *float64 `toml:"rate-per-minute"`
	LogCalls   *bool    `toml:"log-calls"`
}

// Settings is the fully resolved configuration handed to the CLI.
type Settings struct {
	User     string
	DBPath   string
	LogLevel string
	LogFile  string
	Tracker  posetrack.Config
	Coach    coach.Config
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Resolve layers defaults, the file at path and REPCOACH_* environment
// variables, in that order.
func Resolve(path string) (Settings, error) {
	fc, err := LoadFile(path)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		User:    defaultUser(),
		DBPath:  DefaultDBPath(),
		Tracker: posetrack.DefaultConfig(),
		Coach:   coach.DefaultConfig(),
	}
	fc.apply(&s)

	if v := os.Getenv("REPCOACH_USER"); v != "" {
		s.User = v
	}
	if v := os.Getenv("REPCOACH_DB"); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv("REPCOACH_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("REPCOACH_LOG_FILE"); v != "" {
		s.LogFile = v
	}
	posetrack.ApplyEnv(&s.Tracker)
	coach.ApplyEnv(&s.Coach)

	return s, nil
}

func (fc FileConfig) apply(s *Settings) {
	setString(&s.User, fc.User)
	setString(&s.DBPath, fc.DBPath)
	setString(&s.LogLevel, fc.Log.Level)
	setString(&s.LogFile, fc.Log.File)

	t := fc.Tracker
	setString(&s.Tracker.BaseURL, t.URL)
	setPositive(&s.Tracker.HealthTimeoutMs, t.HealthTimeoutMs)
	setPositive(&s.Tracker.ResetTimeoutMs, t.ResetTimeoutMs)
	setPositive(&s.Tracker.StatusTimeoutMs, t.StatusTimeoutMs)
	setPositive(&s.Tracker.PollIntervalMs, t.PollIntervalMs)
	if t.SettleDelayMs != nil && *t.SettleDelayMs >= 0 {
		s.Tracker.SettleDelayMs = *t.SettleDelayMs
	}
	if t.MaxPollFailures != nil && *t.MaxPollFailures >= 0 {
		s.Tracker.MaxPollFailures = *t.MaxPollFailures
	}

	c := fc.Coach
	if c.Enabled != nil {
		s.Coach.Enabled = *c.Enabled
	}
	if c.LogCalls != nil {
		s.Coach.LogCalls = *c.LogCalls
	}
	setString(&s.Coach.Endpoint, c.Endpoint)
	setPositive(&s.Coach.TimeoutMs, c.TimeoutMs)
	if c.MaxRetries != nil && *c.MaxRetries >= 0 {
		s.Coach.MaxRetries = *c.MaxRetries
	}
	if c.RatePerMin != nil && *c.RatePerMin > 0 {
		s.Coach.RatePerMinute = *c.RatePerMin
	}
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setPositive(dst *int, v *int) {
	if v != nil && *v > 0 {
		*dst = *v
	}
}

func defaultUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if v := os.Getenv("USER"); v != "" {
		return v
	}
	return "local"
}

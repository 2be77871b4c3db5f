package tracker

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
	PhaseStopped   Phase = "stopped"
)

// SessionConfig describes the exercise being tracked. It does not change for
// the lifetime of a Tracker.
type SessionConfig struct {
	UserID            string
	ExerciseID        string
	ExerciseName      string
	AssignedReps      int
	CaloriesPerMinute float64
}

// Validate reports whether the config can be tracked.
func (c SessionConfig) Validate() error {
	if strings.TrimSpace(c.ExerciseName) == "" && strings.TrimSpace(c.ExerciseID) == "" {
		return fmt.Errorf("%w: exercise is required", ErrInvalidConfig)
	}
	if c.AssignedReps <= 0 {
		return fmt.Errorf("%w: assigned reps must be positive, got %d", ErrInvalidConfig, c.AssignedReps)
	}
	if c.CaloriesPerMinute < 0 || math.IsNaN(c.CaloriesPerMinute) {
		return fmt.Errorf("%w: calorie rate must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	Attempt        uint64
	Phase          Phase
	ObservedReps   int
	AssignedReps   int
	ElapsedSeconds int
	Saved          bool
}

// Progress is reps completed against the target.
type Progress struct {
	Reps           int
	Assigned       int
	ElapsedSeconds int
}

// Remaining returns how many reps are left to reach the target.
func (p Progress) Remaining() int {
	if p.Reps >= p.Assigned {
		return 0
	}
	return p.Assigned - p.Reps
}

// Fraction returns completion in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Assigned <= 0 {
		return 0
	}
	f := float64(p.Reps) / float64(p.Assigned)
	if f > 1 {
		return 1
	}
	return f
}

// Outcome is the result of Stop.
type Outcome struct {
	Phase    Phase
	Progress Progress
	Record   *domain.ExerciseRecord
	Saved    bool
}

// Calories converts an elapsed duration into calories burned at the given
// per-minute rate, rounded to the nearest whole calorie.
func Calories(elapsedSeconds int, perMinute float64) int {
	return int(math.Round(float64(elapsedSeconds) / 60 * perMinute))
}

// BuildRecord creates the history record for a finished session.
func BuildRecord(cfg SessionConfig, reps, elapsedSeconds int, completedAt time.Time) *domain.ExerciseRecord {
	exType := cfg.ExerciseName
	if exType == "" {
		exType = cfg.ExerciseID
	}
	return &domain.ExerciseRecord{
		UserID:       cfg.UserID,
		ExerciseID:   cfg.ExerciseID,
		ExerciseType: exType,
		Reps:         reps,
		DurationSec:  elapsedSeconds,
		Calories:     Calories(elapsedSeconds, cfg.CaloriesPerMinute),
		CompletedAt:  completedAt.UTC(),
	}
}

package service

import (
	"context"

	"github.com/alexanderramin/repcoach/internal/domain"
)

type ExerciseService interface {
	// RecordExercise validates and stores a finished session, assigning an
	// ID and completion time when missing.
	RecordExercise(ctx context.Context, rec *domain.ExerciseRecord) error
	GetRecord(ctx context.Context, id string) (*domain.ExerciseRecord, error)
	// ListHistory returns the user's sessions newest first; days <= 0 means all.
	ListHistory(ctx context.Context, userID string, days int) ([]*domain.ExerciseRecord, error)
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Update(ctx context.Context, upd ProfileUpdate) (*domain.UserProfile, error)
	BMI(ctx context.Context, userID string) (*BMIReport, error)
}

type ChatService interface {
	// SessionID returns the user's conversation id, creating it on first use.
	SessionID(ctx context.Context, userID string) (string, error)
	Send(ctx context.Context, userID, message string) (*domain.ChatMessage, error)
	History(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error)
}

type WorkoutService interface {
	Catalog() []domain.Exercise
	Find(ref string) (domain.Exercise, error)
	Suggest(ctx context.Context, userID, goal string) ([]Suggestion, error)
}

// Dashboard is the summary shown on the dashboard screen.
type Dashboard struct {
	Stats   domain.Stats
	Recent  []*domain.ExerciseRecord
	Profile *domain.UserProfile // nil when the user has no profile
	BMI     *BMIReport          // nil without measurements
}

// ProfileUpdate changes only the fields that are non-nil.
type ProfileUpdate struct {
	UserID   string
	FullName *string
	Email    *string
	Age      *int
	HeightCm *float64
	WeightKg *float64
}

// BMIReport is a computed BMI with its category.
type BMIReport struct {
	HeightCm float64
	WeightKg float64
	BMI      float64
	Category domain.BMICategory
}

// Suggestion is a recommended workout from the coach.
type Suggestion struct {
	Exercise domain.Exercise
	Reps     int
	Reason   string
}

package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
)

type ExerciseRepo interface {
	Create(ctx context.Context, r *domain.ExerciseRecord) error
	GetByID(ctx context.Context, id string) (*domain.ExerciseRecord, error)
	// ListByUser returns newest first; limit <= 0 means all.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ExerciseRecord, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.ExerciseRecord, error)
	// Stats totals all history; WeeklyWorkouts counts records at or after weekStart.
	Stats(ctx context.Context, userID string, weekStart time.Time) (*domain.Stats, error)
}

type ProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

type ChatRepo interface {
	Create(ctx context.Context, m *domain.ChatMessage) error
	// ListRecent returns the newest limit messages in chronological order.
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error)
	GetSessionID(ctx context.Context, userID string) (string, error)
	PutSessionID(ctx context.Context, userID, sessionID string, createdAt time.Time) error
}

package testutil

import (
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/google/uuid"
)

// Record options
type RecordOption func(*domain.ExerciseRecord)

func WithExercise(e domain.Exercise) RecordOption {
	return func(r *domain.ExerciseRecord) {
		r.ExerciseID = e.ID
		r.ExerciseType = e.Name
	}
}

func WithReps(n int) RecordOption {
	return func(r *domain.ExerciseRecord) {
		r.Reps = n
	}
}

func WithDuration(sec int) RecordOption {
	return func(r *domain.ExerciseRecord) {
		r.DurationSec = sec
	}
}

func WithCalories(c int) RecordOption {
	return func(r *domain.ExerciseRecord) {
		r.Calories = c
	}
}

func WithCompletedAt(t time.Time) RecordOption {
	return func(r *domain.ExerciseRecord) {
		r.CompletedAt = t.UTC()
	}
}

// NewTestRecord builds a completed Push Ups session for userID.
func NewTestRecord(userID string, opts ...RecordOption) *domain.ExerciseRecord {
	r := &domain.ExerciseRecord{
		ID:           uuid.New().String(),
		UserID:       userID,
		ExerciseID:   "1",
		ExerciseType: "Push Ups",
		Reps:         10,
		DurationSec:  100,
		Calories:     83,
		CompletedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Profile options
type ProfileOption func(*domain.UserProfile)

func WithMeasurements(heightCm, weightKg float64) ProfileOption {
	return func(p *domain.UserProfile) {
		p.HeightCm = heightCm
		p.WeightKg = weightKg
	}
}

func WithName(name string) ProfileOption {
	return func(p *domain.UserProfile) {
		p.FullName = name
	}
}

func NewTestProfile(userID string, opts ...ProfileOption) *domain.UserProfile {
	p := &domain.UserProfile{
		UserID:    userID,
		FullName:  "Test User",
		Email:     userID + "@example.com",
		Age:       30,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// NewTestChatMessage builds a stored exchange created at the given time.
func NewTestChatMessage(userID, message, response string, at time.Time) *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: "session-" + userID + "-1",
		Message:   message,
		Response:  response,
		CreatedAt: at.UTC().Truncate(time.Millisecond),
	}
}

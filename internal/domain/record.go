package domain

import "time"

// ExerciseRecord is a finished tracking session as stored in exercise history.
type ExerciseRecord struct {
	ID           string
	UserID       string
	ExerciseID   string
	ExerciseType string
	Reps         int
	DurationSec  int
	Calories     int
	CompletedAt  time.Time
}

// Stats aggregates a user's exercise history for the dashboard.
type Stats struct {
	TotalWorkouts    int
	WeeklyWorkouts   int
	TotalCalories    int
	TotalDurationSec int
}

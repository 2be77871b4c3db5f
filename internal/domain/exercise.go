package domain

import "strings"

type ExerciseType string

const (
	ExerciseStrength ExerciseType = "strength"
	ExerciseCore     ExerciseType = "core"
	ExerciseCardio   ExerciseType = "cardio"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// DefaultAssignedReps is the repetition target used when the caller does not
// choose one.
const DefaultAssignedReps = 10

// Exercise is a workout the user can perform under the tracker.
type Exercise struct {
	ID                string
	Name              string
	Type              ExerciseType
	Description       string
	Difficulty        Difficulty
	DurationMin       int
	CaloriesPerMinute float64
	DefaultReps       int
}

// SuggestedWorkouts returns the built-in workout catalog.
func SuggestedWorkouts() []Exercise {
	return []Exercise{
		{
			ID:                "1",
			Name:              "Push Ups",
			Type:              ExerciseStrength,
			Description:       "Upper body strength exercise",
			Difficulty:        DifficultyBeginner,
			DurationMin:       10,
			CaloriesPerMinute: 50,
			DefaultReps:       DefaultAssignedReps,
		},
		{
			ID:                "2",
			Name:              "Pull Ups",
			Type:              ExerciseStrength,
			Description:       "Back and arm strength exercise",
			Difficulty:        DifficultyIntermediate,
			DurationMin:       10,
			CaloriesPerMinute: 60,
			DefaultReps:       DefaultAssignedReps,
		},
		{
			ID:                "3",
			Name:              "Planks",
			Type:              ExerciseCore,
			Description:       "Core stability exercise",
			Difficulty:        DifficultyBeginner,
			DurationMin:       5,
			CaloriesPerMinute: 30,
			DefaultReps:       DefaultAssignedReps,
		},
	}
}

// FindExercise looks an exercise up by ID or case-insensitive name.
func FindExercise(catalog []Exercise, ref string) (Exercise, bool) {
	ref = strings.TrimSpace(ref)
	for _, e := range catalog {
		if e.ID == ref || strings.EqualFold(e.Name, ref) {
			return e, true
		}
	}
	norm := strings.ReplaceAll(strings.ToLower(ref), "-", " ")
	for _, e := range catalog {
		if strings.ToLower(e.Name) == norm {
			return e, true
		}
	}
	return Exercise{}, false
}

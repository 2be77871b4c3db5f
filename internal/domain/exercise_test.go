package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestedWorkouts_Catalog(t *testing.T) {
	catalog := SuggestedWorkouts()
	assert.Len(t, catalog, 3)
	for _, e := range catalog {
		assert.NotEmpty(t, e.ID)
		assert.Positive(t, e.CaloriesPerMinute)
		assert.Equal(t, DefaultAssignedReps, e.DefaultReps)
	}
}

func TestFindExercise(t *testing.T) {
	catalog := SuggestedWorkouts()

	e, ok := FindExercise(catalog, "2")
	assert.True(t, ok)
	assert.Equal(t, "Pull Ups", e.Name)

	e, ok = FindExercise(catalog, "push ups")
	assert.True(t, ok)
	assert.Equal(t, "1", e.ID)

	e, ok = FindExercise(catalog, "push-ups")
	assert.True(t, ok)
	assert.Equal(t, "1", e.ID)

	_, ok = FindExercise(catalog, "burpees")
	assert.False(t, ok)
}

func TestTranscript_AlternatesRoles(t *testing.T) {
	turns := Transcript([]*ChatMessage{
		{Message: "hi", Response: "hello"},
		{Message: "plan?", Response: "squats"},
	})
	assert.Len(t, turns, 4)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[1].Content)
	assert.Equal(t, RoleAssistant, turns[3].Role)
}

package coach

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suggestion struct {
	Name   string  `json:"name"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

func TestExtractJSON_Clean(t *testing.T) {
	got, err := ExtractJSON[suggestion](`{"name":"Planks","reps":5}`, nil)
	require.NoError(t, err)
	assert.Equal(t, suggestion{Name: "Planks", Reps: 5}, got)
}

func TestExtractJSON_FencedWithProse(t *testing.T) {
	raw := "Sure! Try this:\n```json\n{\"name\":\"Push Ups\",\"reps\":12}\n```\nGood luck."
	got, err := ExtractJSON[suggestion](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Push Ups", got.Name)
	assert.Equal(t, 12, got.Reps)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `prefix {"name":"odd } name {","reps":3} trailing }`
	got, err := ExtractJSON[suggestion](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "odd } name {", got.Name)
}

func TestExtractJSON_CommentsAndBareDecimals(t *testing.T) {
	raw := "{\n  \"name\": \"Pull Ups\", // upper body\n  /* keep it light */ \"weight\": .5,\n  \"reps\": 8\n}"
	got, err := ExtractJSON[suggestion](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pull Ups", got.Name)
	assert.Equal(t, 0.5, got.Weight)
	assert.Equal(t, 8, got.Reps)
}

func TestExtractJSON_SlashesInStringsKept(t *testing.T) {
	got, err := ExtractJSON[suggestion](`{"name":"http://x/y .5"}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://x/y .5", got.Name)
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, err := ExtractJSON[suggestion]("No response received from AI.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	_, err := ExtractJSON[suggestion](`{"name":"x"`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Validation(t *testing.T) {
	positive := func(s suggestion) error {
		if s.Reps <= 0 {
			return errors.New("reps must be positive")
		}
		return nil
	}

	_, err := ExtractJSON(`{"name":"x","reps":0}`, positive)
	require.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")

	got, err := ExtractJSON(`{"name":"x","reps":2}`, positive)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Reps)
}

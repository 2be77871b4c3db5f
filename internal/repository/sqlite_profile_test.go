package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/repcoach/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_UpsertInsertsThenUpdates(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestProfile("alice", testutil.WithName("Alice"), testutil.WithMeasurements(170, 65))
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FullName)
	assert.Equal(t, 170.0, got.HeightCm)
	assert.Equal(t, 65.0, got.WeightKg)
	assert.True(t, p.UpdatedAt.Equal(got.UpdatedAt))

	p.WeightKg = 62.5
	p.UpdatedAt = p.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Upsert(ctx, p))

	got, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 62.5, got.WeightKg)
	assert.Equal(t, "Alice", got.FullName)
	assert.True(t, p.UpdatedAt.Equal(got.UpdatedAt))
}

func TestProfileRepo_RejectsNegativeMeasurements(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))

	p := testutil.NewTestProfile("alice", testutil.WithMeasurements(-1, 60))
	assert.Error(t, repo.Upsert(context.Background(), p))
}

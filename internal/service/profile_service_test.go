package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestProfileService_Get_EmptyForNewUser(t *testing.T) {
	repos := setupRepos(t)
	svc := NewProfileService(repos.profiles)

	p, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.UserID)
	assert.False(t, p.HasMeasurements())
}

func TestProfileService_Update_PartialFields(t *testing.T) {
	repos := setupRepos(t)
	svc := NewProfileService(repos.profiles)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.(*profileService).now = fixedClock(now)
	ctx := context.Background()

	_, err := svc.Update(ctx, ProfileUpdate{
		UserID:   "alice",
		FullName: ptr(" Alice Doe "),
		Email:    ptr("alice@example.com"),
		HeightCm: ptr(165.0),
		WeightKg: ptr(60.0),
	})
	require.NoError(t, err)

	p, err := svc.Update(ctx, ProfileUpdate{UserID: "alice", WeightKg: ptr(58.5)})
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", p.FullName)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, 165.0, p.HeightCm)
	assert.Equal(t, 58.5, p.WeightKg)
	assert.Equal(t, now, p.UpdatedAt)

	stored, err := repos.profiles.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 58.5, stored.WeightKg)
}

func TestProfileService_Update_Invalid(t *testing.T) {
	repos := setupRepos(t)
	svc := NewProfileService(repos.profiles)
	ctx := context.Background()

	tests := []struct {
		name string
		upd  ProfileUpdate
	}{
		{"missing user", ProfileUpdate{FullName: ptr("x")}},
		{"bad email", ProfileUpdate{UserID: "alice", Email: ptr("not-an-email")}},
		{"negative age", ProfileUpdate{UserID: "alice", Age: ptr(-1)}},
		{"zero height", ProfileUpdate{UserID: "alice", HeightCm: ptr(0.0)}},
		{"negative weight", ProfileUpdate{UserID: "alice", WeightKg: ptr(-70.0)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tc.upd)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}

	_, err := repos.profiles.Get(ctx, "alice")
	assert.Error(t, err, "nothing stored")
}

func TestProfileService_BMI(t *testing.T) {
	repos := setupRepos(t)
	svc := NewProfileService(repos.profiles)
	ctx := context.Background()

	_, err := svc.BMI(ctx, "alice")
	require.ErrorIs(t, err, ErrMissingMeasurements)

	_, err = svc.Update(ctx, ProfileUpdate{UserID: "alice", HeightCm: ptr(170.0), WeightKg: ptr(65.0)})
	require.NoError(t, err)

	report, err := svc.BMI(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 22.49, report.BMI)
	assert.Equal(t, domain.BMINormal, report.Category)
}

func TestNewBMIReport(t *testing.T) {
	tests := []struct {
		h, w float64
		bmi  float64
		cat  domain.BMICategory
	}{
		{180, 55, 16.98, domain.BMIUnderweight},
		{170, 65, 22.49, domain.BMINormal},
		{175, 80, 26.12, domain.BMIOverweight},
		{160, 90, 35.16, domain.BMIObese},
	}
	for _, tc := range tests {
		r, err := NewBMIReport(tc.h, tc.w)
		require.NoError(t, err)
		assert.Equal(t, tc.bmi, r.BMI)
		assert.Equal(t, tc.cat, r.Category)
	}

	_, err := NewBMIReport(0, 70)
	assert.ErrorIs(t, err, domain.ErrInvalidMeasurement)
}

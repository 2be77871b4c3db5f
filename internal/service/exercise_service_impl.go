package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	weeklyWindow     = 7 * 24 * time.Hour
	dashboardRecentN = 5
)

type exerciseService struct {
	records  repository.ExerciseRepo
	profiles repository.ProfileRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewExerciseService(records repository.ExerciseRepo, profiles repository.ProfileRepo, observers ...UseCaseObserver) ExerciseService {
	return &exerciseService{
		records:  records,
		profiles: profiles,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *exerciseService) RecordExercise(ctx context.Context, rec *domain.ExerciseRecord) (err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, "record-exercise", fields)
	defer func() { done(err) }()

	if err = validateRecord(rec); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = s.now().UTC()
	}
	fields["record_id"] = rec.ID
	fields["user_id"] = rec.UserID
	fields["reps"] = rec.Reps

	return s.records.Create(ctx, rec)
}

func validateRecord(rec *domain.ExerciseRecord) error {
	switch {
	case rec == nil:
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	case strings.TrimSpace(rec.UserID) == "":
		return fmt.Errorf("%w: user id is required", ErrInvalidRecord)
	case strings.TrimSpace(rec.ExerciseType) == "":
		return fmt.Errorf("%w: exercise type is required", ErrInvalidRecord)
	case rec.Reps < 0 || rec.DurationSec < 0 || rec.Calories < 0:
		return fmt.Errorf("%w: reps, duration and calories must not be negative", ErrInvalidRecord)
	}
	return nil
}

func (s *exerciseService) GetRecord(ctx context.Context, id string) (*domain.ExerciseRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *exerciseService) ListHistory(ctx context.Context, userID string, days int) ([]*domain.ExerciseRecord, error) {
	if days <= 0 {
		return s.records.ListByUser(ctx, userID, 0)
	}
	since := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	return s.records.ListSince(ctx, userID, since)
}

// Dashboard loads stats, recent sessions, and the profile concurrently.
func (s *exerciseService) Dashboard(ctx context.Context, userID string) (dash *Dashboard, err error) {
	done := observe(ctx, s.observer, "dashboard", map[string]any{"user_id": userID})
	defer func() { done(err) }()

	dash = &Dashboard{}
	weekStart := s.now().UTC().Add(-weeklyWindow)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.records.Stats(gctx, userID, weekStart)
		if err != nil {
			return err
		}
		dash.Stats = *stats
		return nil
	})
	g.Go(func() error {
		recent, err := s.records.ListByUser(gctx, userID, dashboardRecentN)
		if err != nil {
			return err
		}
		dash.Recent = recent
		return nil
	})
	g.Go(func() error {
		p, err := s.profiles.Get(gctx, userID)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		dash.Profile = p
		if p.HasMeasurements() {
			dash.BMI, _ = NewBMIReport(p.HeightCm, p.WeightKg)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}
	return dash, nil
}

package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewProfileService(profiles repository.ProfileRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		profiles: profiles,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// Get returns the stored profile, or an empty one for a user who never saved
// theirs.
func (s *profileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return &domain.UserProfile{UserID: userID}, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, upd ProfileUpdate) (p *domain.UserProfile, err error) {
	done := observe(ctx, s.observer, "update-profile", map[string]any{"user_id": upd.UserID})
	defer func() { done(err) }()

	if strings.TrimSpace(upd.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidProfile)
	}
	if p, err = s.Get(ctx, upd.UserID); err != nil {
		return nil, err
	}

	if upd.FullName != nil {
		p.FullName = strings.TrimSpace(*upd.FullName)
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email != "" {
			if _, perr := mail.ParseAddress(email); perr != nil {
				return nil, fmt.Errorf("%w: email %q: %v", ErrInvalidProfile, email, perr)
			}
		}
		p.Email = email
	}
	if upd.Age != nil {
		if *upd.Age < 0 || *upd.Age > 150 {
			return nil, fmt.Errorf("%w: age %d out of range", ErrInvalidProfile, *upd.Age)
		}
		p.Age = *upd.Age
	}
	if upd.HeightCm != nil {
		if *upd.HeightCm <= 0 {
			return nil, fmt.Errorf("%w: height: %w", ErrInvalidProfile, domain.ErrInvalidMeasurement)
		}
		p.HeightCm = *upd.HeightCm
	}
	if upd.WeightKg != nil {
		if *upd.WeightKg <= 0 {
			return nil, fmt.Errorf("%w: weight: %w", ErrInvalidProfile, domain.ErrInvalidMeasurement)
		}
		p.WeightKg = *upd.WeightKg
	}
	p.UpdatedAt = s.now().UTC()

	if err = s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) BMI(ctx context.Context, userID string) (*BMIReport, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.HasMeasurements() {
		return nil, ErrMissingMeasurements
	}
	return NewBMIReport(p.HeightCm, p.WeightKg)
}

// NewBMIReport computes a BMI report for the given measurements.
func NewBMIReport(heightCm, weightKg float64) (*BMIReport, error) {
	bmi, err := domain.ComputeBMI(heightCm, weightKg)
	if err != nil {
		return nil, err
	}
	return &BMIReport{
		HeightCm: heightCm,
		WeightKg: weightKg,
		BMI:      bmi,
		Category: domain.CategorizeBMI(bmi),
	}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/repcoach/internal/coach"
	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/repository"
)

type workoutService struct {
	catalog  []domain.Exercise
	records  repository.ExerciseRepo
	profiles repository.ProfileRepo
	coach    coach.Client
	observer UseCaseObserver
	now      func() time.Time
}

func NewWorkoutService(
	records repository.ExerciseRepo,
	profiles repository.ProfileRepo,
	client coach.Client,
	observers ...UseCaseObserver,
) WorkoutService {
	return &workoutService{
		catalog:  domain.SuggestedWorkouts(),
		records:  records,
		profiles: profiles,
		coach:    client,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *workoutService) Catalog() []domain.Exercise {
	out := make([]domain.Exercise, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *workoutService) Find(ref string) (domain.Exercise, error) {
	e, ok := domain.FindExercise(s.catalog, ref)
	if !ok {
		return domain.Exercise{}, fmt.Errorf("%w: %q", ErrUnknownExercise, ref)
	}
	return e, nil
}

type suggestionReply struct {
	Workouts []struct {
		Name   string `json:"name"`
		Reps   int    `json:"reps"`
		Reason string `json:"reason"`
	} `json:"workouts"`
}

// Suggest asks the coach to pick workouts from the catalog for the user.
func (s *workoutService) Suggest(ctx context.Context, userID, goal string) (out []Suggestion, err error) {
	done := observe(ctx, s.observer, "suggest-workouts", map[string]any{"user_id": userID})
	defer func() { done(err) }()

	if s.coach == nil {
		return nil, coach.ErrDisabled
	}

	prompt, err := s.buildPrompt(ctx, userID, goal)
	if err != nil {
		return nil, err
	}
	reply, err := s.coach.Chat(ctx, coach.ChatRequest{
		Task:      coach.TaskSuggest,
		Message:   prompt,
		SessionID: fmt.Sprintf("suggest-%s", userID),
	})
	if err != nil {
		return nil, fmt.Errorf("asking coach: %w", err)
	}

	parsed, err := coach.ExtractJSON(reply.Text, s.validateReply)
	if err != nil {
		return nil, err
	}
	for _, w := range parsed.Workouts {
		e, _ := domain.FindExercise(s.catalog, w.Name)
		out = append(out, Suggestion{Exercise: e, Reps: w.Reps, Reason: strings.TrimSpace(w.Reason)})
	}
	return out, nil
}

func (s *workoutService) validateReply(r suggestionReply) error {
	if len(r.Workouts) == 0 {
		return errors.New("no workouts suggested")
	}
	for _, w := range r.Workouts {
		if _, ok := domain.FindExercise(s.catalog, w.Name); !ok {
			return fmt.Errorf("workout %q is not in the catalog", w.Name)
		}
		if w.Reps <= 0 {
			return fmt.Errorf("workout %q has non-positive reps %d", w.Name, w.Reps)
		}
	}
	return nil
}

func (s *workoutService) buildPrompt(ctx context.Context, userID, goal string) (string, error) {
	var b strings.Builder
	b.WriteString("Suggest workouts for me from this list only:\n")
	for _, e := range s.catalog {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", e.Name, e.Type, e.Difficulty)
	}

	p, err := s.profiles.Get(ctx, userID)
	switch {
	case err == nil && p.HasMeasurements():
		bmi, _ := p.BMI()
		fmt.Fprintf(&b, "My BMI is %.2f (%s).", bmi, domain.CategorizeBMI(bmi))
		if p.Age > 0 {
			fmt.Fprintf(&b, " I am %d years old.", p.Age)
		}
		b.WriteString("\n")
	case err != nil && !isNotFound(err):
		return "", err
	}

	stats, err := s.records.Stats(ctx, userID, s.now().UTC().Add(-weeklyWindow))
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "I did %d workouts this week and %d in total.\n", stats.WeeklyWorkouts, stats.TotalWorkouts)

	if goal = strings.TrimSpace(goal); goal != "" {
		fmt.Fprintf(&b, "My goal: %s\n", goal)
	}
	b.WriteString(`Answer only with JSON: {"workouts":[{"name":"...","reps":10,"reason":"..."}]}`)
	return b.String(), nil
}

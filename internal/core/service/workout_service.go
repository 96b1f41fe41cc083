package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/gate"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// staffRoles may read other users' training records.
var staffRoles = []domain.Role{domain.RoleCoach, domain.RoleAdmin}

type WorkoutService struct {
	repo   ports.WorkoutRepository
	logger zerolog.Logger
}

func NewWorkoutService(repo ports.WorkoutRepository, logger zerolog.Logger) *WorkoutService {
	return &WorkoutService{repo: repo, logger: logger}
}

func (s *WorkoutService) Create(ctx context.Context, actor ports.Actor, in ports.WorkoutInput) (*domain.Workout, error) {
	now := time.Now().UTC()
	w := &domain.Workout{
		UserID:    actor.UserID,
		Date:      dateOrNow(in.Date, now),
		Exercises: in.Exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Info().Str("workout_id", w.ID).Str("user_id", w.UserID).Int("exercises", len(w.Exercises)).Msg("workout logged")
	return w, nil
}

// Get returns a workout its owner, or staff, may see.
func (s *WorkoutService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Workout, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.UserID != actor.UserID && !gate.Allows(actor.Role, staffRoles) {
		return nil, domain.ErrWorkoutNotFound
	}
	return w, nil
}

func (s *WorkoutService) List(ctx context.Context, actor ports.Actor, userID string) ([]*domain.Workout, error) {
	if userID == "" {
		userID = actor.UserID
	}
	if userID != actor.UserID && !gate.Allows(actor.Role, staffRoles) {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces date and exercises. Only the owner may edit.
func (s *WorkoutService) Update(ctx context.Context, actor ports.Actor, id string, in ports.WorkoutInput) (*domain.Workout, error) {
	w, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !in.Date.IsZero() {
		w.Date = in.Date.UTC()
	}
	if in.Exercises != nil {
		w.Exercises = in.Exercises
	}
	w.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkoutService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// owned hides workouts of other users behind ErrWorkoutNotFound.
func (s *WorkoutService) owned(ctx context.Context, actor ports.Actor, id string) (*domain.Workout, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.UserID != actor.UserID {
		return nil, domain.ErrWorkoutNotFound
	}
	return w, nil
}

func dateOrNow(d, now time.Time) time.Time {
	if d.IsZero() {
		return now
	}
	return d.UTC()
}

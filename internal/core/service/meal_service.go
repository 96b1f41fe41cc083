package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// MealService keeps every meal private to the user who logged it.
type MealService struct {
	repo   ports.MealRepository
	logger zerolog.Logger
}

func NewMealService(repo ports.MealRepository, logger zerolog.Logger) *MealService {
	return &MealService{repo: repo, logger: logger}
}

func (s *MealService) Create(ctx context.Context, actor ports.Actor, in ports.MealInput) (*domain.Meal, error) {
	now := time.Now().UTC()
	m := &domain.Meal{
		UserID:    actor.UserID,
		MealType:  in.MealType,
		FoodItems: in.FoodItems,
		Date:      dateOrNow(in.Date, now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Calories != nil {
		m.Calories = *in.Calories
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info().Str("meal_id", m.ID).Str("user_id", m.UserID).Str("meal_type", string(m.MealType)).Int("calories", m.Calories).Msg("meal logged")
	return m, nil
}

// List returns the actor's meals, restricted to day's UTC date unless day is zero.
func (s *MealService) List(ctx context.Context, actor ports.Actor, day time.Time) ([]*domain.Meal, error) {
	if !day.IsZero() {
		day = day.UTC().Truncate(24 * time.Hour)
	}
	return s.repo.ListByUser(ctx, actor.UserID, day)
}

func (s *MealService) Update(ctx context.Context, actor ports.Actor, id string, in ports.MealInput) (*domain.Meal, error) {
	m, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.MealType != "" {
		m.MealType = in.MealType
	}
	if in.FoodItems != nil {
		m.FoodItems = in.FoodItems
	}
	if in.Calories != nil {
		m.Calories = *in.Calories
	}
	if !in.Date.IsZero() {
		m.Date = in.Date.UTC()
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MealService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *MealService) owned(ctx context.Context, actor ports.Actor, id string) (*domain.Meal, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != actor.UserID {
		return nil, domain.ErrMealNotFound
	}
	return m, nil
}

package ports

import (
	"context"
	"time"

	"github.com/fittrack/fittrack/internal/core/domain"
)

// WorkoutRepository persists workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, w *domain.Workout) error
	FindByID(ctx context.Context, id string) (*domain.Workout, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Workout, error)
	Update(ctx context.Context, w *domain.Workout) error
	Delete(ctx context.Context, id string) error
}

// MealRepository persists meals.
type MealRepository interface {
	Create(ctx context.Context, m *domain.Meal) error
	FindByID(ctx context.Context, id string) (*domain.Meal, error)
	// ListByUser returns the user's meals; a non-zero day restricts them to that UTC date.
	ListByUser(ctx context.Context, userID string, day time.Time) ([]*domain.Meal, error)
	Update(ctx context.Context, m *domain.Meal) error
	Delete(ctx context.Context, id string) error
}

// Actor identifies who is calling a fitness operation.
type Actor struct {
	UserID string
	Role   domain.Role
}

// WorkoutInput is the DTO passed from the transport layer for create/update.
type WorkoutInput struct {
	Date      time.Time
	Exercises []domain.Exercise
}

// MealInput is the DTO passed from the transport layer for create/update.
// On update, zero values and a nil Calories leave the stored field as is.
type MealInput struct {
	MealType  domain.MealType
	FoodItems []string
	Calories  *int
	Date      time.Time
}

// WorkoutService defines use-case operations for workouts.
type WorkoutService interface {
	Create(ctx context.Context, actor Actor, in WorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Workout, error)
	// List returns the workouts of userID; an empty userID means the actor's own.
	List(ctx context.Context, actor Actor, userID string) ([]*domain.Workout, error)
	Update(ctx context.Context, actor Actor, id string, in WorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

// MealService defines use-case operations for meals.
type MealService interface {
	Create(ctx context.Context, actor Actor, in MealInput) (*domain.Meal, error)
	List(ctx context.Context, actor Actor, day time.Time) ([]*domain.Meal, error)
	Update(ctx context.Context, actor Actor, id string, in MealInput) (*domain.Meal, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

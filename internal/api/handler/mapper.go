package handler

import (
	"time"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toProfileUpdate(req updateProfileRequest) domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:   req.Name,
		Avatar: req.Avatar,
		Age:    req.Age,
		Weight: req.Weight,
		Height: req.Height,
		Goal:   req.Goal,
	}
}

func toWorkoutInput(req workoutRequest) ports.WorkoutInput {
	exercises := make([]domain.Exercise, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		exercises = append(exercises, domain.Exercise{
			Name:     e.Name,
			Sets:     e.Sets,
			Reps:     e.Reps,
			Duration: e.Duration,
		})
	}
	return ports.WorkoutInput{Date: derefTime(req.Date), Exercises: exercises}
}

func toMealInput(req mealRequest) ports.MealInput {
	return ports.MealInput{
		MealType:  domain.MealType(req.MealType),
		FoodItems: req.FoodItems,
		Calories:  req.Calories,
		Date:      derefTime(req.Date),
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

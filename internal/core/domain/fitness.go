package domain

import (
	"errors"
	"time"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrMealNotFound    = errors.New("meal not found")
	ErrForbidden       = errors.New("access forbidden")
)

// Exercise is one movement inside a workout.
type Exercise struct {
	Name     string `json:"name" bson:"name"`
	Sets     int    `json:"sets" bson:"sets"`
	Reps     int    `json:"reps" bson:"reps"`
	Duration string `json:"duration" bson:"duration"`
}

// Workout is a training session logged by a user.
type Workout struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"user_id"`
	Date      time.Time  `json:"date" bson:"date"`
	Exercises []Exercise `json:"exercises" bson:"exercises"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

// MealType enumerates the meal slots of a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Meal is a nutrition entry logged by a user.
type Meal struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"user_id"`
	MealType  MealType  `json:"mealType" bson:"meal_type"`
	FoodItems []string  `json:"foodItems" bson:"food_items"`
	Calories  int       `json:"calories" bson:"calories"`
	Date      time.Time `json:"date" bson:"date"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

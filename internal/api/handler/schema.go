package handler

import (
	"time"

	"github.com/fittrack/fittrack/internal/core/domain"
)

// errorResponse documents the envelope written by the API error handler.
type errorResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=user coach admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Users ---

type updateProfileRequest struct {
	Name   *string  `json:"name"   validate:"omitempty,min=1"`
	Avatar *string  `json:"avatar" validate:"omitempty,url"`
	Age    *int     `json:"age"    validate:"omitempty,gt=0,lt=150"`
	Weight *float64 `json:"weight" validate:"omitempty,gt=0"`
	Height *float64 `json:"height" validate:"omitempty,gt=0"`
	Goal   *string  `json:"goal"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user coach admin"`
}

// --- Workouts ---

type exerciseRequest struct {
	Name     string `json:"name"     validate:"required"`
	Sets     int    `json:"sets"     validate:"gte=0"`
	Reps     int    `json:"reps"     validate:"gte=0"`
	Duration string `json:"duration"`
}

type workoutRequest struct {
	Date      *time.Time        `json:"date"`
	Exercises []exerciseRequest `json:"exercises" validate:"required,min=1,dive"`
}

// --- Meals ---

type mealRequest struct {
	MealType  string     `json:"mealType"  validate:"required,oneof=breakfast lunch dinner snack"`
	FoodItems []string   `json:"foodItems" validate:"required,min=1,dive,required"`
	Calories  *int       `json:"calories"  validate:"omitempty,gte=0"`
	Date      *time.Time `json:"date"`
}

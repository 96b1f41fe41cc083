package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/api/metrics"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// WorkoutHandler handles HTTP requests for workout operations.
type WorkoutHandler struct {
	service ports.WorkoutService
}

func NewWorkoutHandler(service ports.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

// Create handles POST /api/workouts.
//
// @Summary      Log a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      workoutRequest  true  "Workout"
// @Success      201   {object}  domain.Workout
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/workouts [post]
func (h *WorkoutHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req workoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	w, err := h.service.Create(c.Request().Context(), actor, toWorkoutInput(req))
	if err != nil {
		return err
	}
	metrics.WorkoutsLoggedTotal.Inc()
	return c.JSON(http.StatusCreated, w)
}

// List handles GET /api/workouts.
//
// @Summary      List own workouts
// @Tags         workouts
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Workout
// @Failure      401  {object}  errorResponse
// @Router       /api/workouts [get]
func (h *WorkoutHandler) List(c echo.Context) error {
	return h.list(c, "")
}

// ListForUser handles GET /api/workouts/user/:userId.
//
// @Summary      List a user's workouts
// @Tags         workouts
// @Produce      json
// @Security     TokenAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {array}   domain.Workout
// @Failure      403     {object}  errorResponse
// @Router       /api/workouts/user/{userId} [get]
func (h *WorkoutHandler) ListForUser(c echo.Context) error {
	return h.list(c, c.Param("userId"))
}

func (h *WorkoutHandler) list(c echo.Context, userID string) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	workouts, err := h.service.List(c.Request().Context(), actor, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workouts)
}

// Get handles GET /api/workouts/:id.
//
// @Summary      Get a workout
// @Tags         workouts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Workout ID"
// @Success      200  {object}  domain.Workout
// @Failure      404  {object}  errorResponse
// @Router       /api/workouts/{id} [get]
func (h *WorkoutHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	w, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w)
}

// Update handles PUT /api/workouts/:id.
//
// @Summary      Update a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string          true  "Workout ID"
// @Param        body  body      workoutRequest  true  "Workout"
// @Success      200   {object}  domain.Workout
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/workouts/{id} [put]
func (h *WorkoutHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req workoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	w, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), toWorkoutInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w)
}

// Delete handles DELETE /api/workouts/:id.
//
// @Summary      Delete a workout
// @Tags         workouts
// @Security     TokenAuth
// @Param        id   path  string  true  "Workout ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/workouts/{id} [delete]
func (h *WorkoutHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/api/metrics"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// dateLayout is the format of the :date path parameter.
const dateLayout = "2006-01-02"

// MealHandler handles HTTP requests for meal operations.
type MealHandler struct {
	service ports.MealService
}

func NewMealHandler(service ports.MealService) *MealHandler {
	return &MealHandler{service: service}
}

// Create handles POST /api/meals.
//
// @Summary      Log a meal
// @Tags         meals
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      mealRequest  true  "Meal"
// @Success      201   {object}  domain.Meal
// @Failure      400   {object}  errorResponse
// @Router       /api/meals [post]
func (h *MealHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req mealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.service.Create(c.Request().Context(), actor, toMealInput(req))
	if err != nil {
		return err
	}
	metrics.MealsLoggedTotal.WithLabelValues(string(m.MealType)).Inc()
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /api/meals.
//
// @Summary      List own meals
// @Tags         meals
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}  domain.Meal
// @Router       /api/meals [get]
func (h *MealHandler) List(c echo.Context) error {
	return h.list(c, time.Time{})
}

// ListByDate handles GET /api/meals/date/:date.
//
// @Summary      List own meals of one day
// @Tags         meals
// @Produce      json
// @Security     TokenAuth
// @Param        date  path      string  true  "Day as YYYY-MM-DD"
// @Success      200   {array}   domain.Meal
// @Failure      400   {object}  errorResponse
// @Router       /api/meals/date/{date} [get]
func (h *MealHandler) ListByDate(c echo.Context) error {
	day, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return h.list(c, day)
}

func (h *MealHandler) list(c echo.Context, day time.Time) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	meals, err := h.service.List(c.Request().Context(), actor, day)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meals)
}

// Update handles PUT /api/meals/:id.
//
// @Summary      Update a meal
// @Tags         meals
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string       true  "Meal ID"
// @Param        body  body      mealRequest  true  "Meal"
// @Success      200   {object}  domain.Meal
// @Failure      404   {object}  errorResponse
// @Router       /api/meals/{id} [put]
func (h *MealHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req mealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), toMealInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /api/meals/:id.
//
// @Summary      Delete a meal
// @Tags         meals
// @Security     TokenAuth
// @Param        id   path  string  true  "Meal ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/meals/{id} [delete]
func (h *MealHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

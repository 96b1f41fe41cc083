package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fittrack/fittrack/internal/core/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

type apiError struct {
	target  error
	code    int
	message string
}

// apiErrors maps domain errors to responses. Messages are the ones clients
// show to users verbatim.
var apiErrors = []apiError{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{domain.ErrUserExists, http.StatusConflict, "User with this email already exists"},
	{domain.ErrUserNotFound, http.StatusNotFound, "No user found with this email address"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{domain.ErrInvalidResetToken, http.StatusBadRequest, "Invalid or expired reset token"},
	{domain.ErrForbidden, http.StatusForbidden, "Access denied"},
	{domain.ErrWorkoutNotFound, http.StatusNotFound, "Workout not found"},
	{domain.ErrMealNotFound, http.StatusNotFound, "Meal not found"},
}

// NewHTTPErrorHandler renders every handler error as {"message": "..."}.
// Errors it does not recognise are logged and reported as a 500 without
// details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := statusFor(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}
	for _, e := range apiErrors {
		if errors.Is(err, e.target) {
			return e.code, e.message
		}
	}
	return http.StatusInternalServerError, "Server error"
}

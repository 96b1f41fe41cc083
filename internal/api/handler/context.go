package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// ctxActor extracts the identity injected by the Auth middleware. A missing
// subject or unknown role means the middleware did not run or the token is
// structurally valid but unusable.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get(CtxUserID).(string)
	role, _ := c.Get(CtxRole).(domain.Role)
	if userID == "" || !role.Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
	}
	return ports.Actor{UserID: userID, Role: role}, nil
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

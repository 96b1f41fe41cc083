package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/api/handler"
	"github.com/fittrack/fittrack/internal/api/metrics"
	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/gate"
)

// RBAC admits requests whose role is in allowedRoles, using the same rule as
// client-side navigation.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(handler.CtxRole).(domain.Role)
			if !gate.Allows(role, allowedRoles) {
				metrics.AccessDecisionsTotal.WithLabelValues("deny").Inc()
				return domain.ErrForbidden
			}
			metrics.AccessDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

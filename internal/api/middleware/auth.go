package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/api/handler"
	"github.com/fittrack/fittrack/internal/core/domain"
)

// TokenHeader carries the raw JWT. Authorization: Bearer is accepted as well.
const TokenHeader = "x-auth-token"

// Auth validates the JWT and injects the subject and role into the context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := tokenFrom(c.Request())
			if err != nil {
				return err
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
			}

			sub, _ := claims["sub"].(string)
			roleClaim, _ := claims["role"].(string)
			role := domain.Role(roleClaim)
			if sub == "" || !role.Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
			}

			c.Set(handler.CtxUserID, sub)
			c.Set(handler.CtxRole, role)

			return next(c)
		}
	}
}

func tokenFrom(r *http.Request) (string, error) {
	if tok := strings.TrimSpace(r.Header.Get(TokenHeader)); tok != "" {
		return tok, nil
	}

	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

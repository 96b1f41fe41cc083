package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/api/handler"
	"github.com/fittrack/fittrack/internal/core/domain"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, setHeader func(*http.Request)) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setHeader(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestAuthMiddleware_XAuthToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "42", "role": "coach", "exp": time.Now().Add(time.Hour).Unix()})

	rec, c, called := runAuth(t, func(r *http.Request) { r.Header.Set(TokenHeader, token) })
	if !called {
		t.Fatalf("next not called, status %d", rec.Code)
	}
	if c.Get(handler.CtxUserID) != "42" {
		t.Fatalf("user_id not set")
	}
	if c.Get(handler.CtxRole) != domain.RoleCoach {
		t.Fatalf("role not set")
	}
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "1", "role": "user"})

	rec, _, called := runAuth(t, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) })
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{"sub": "1", "role": "user", "exp": time.Now().Add(-time.Hour).Unix()})
	unknownRole := signToken(t, jwt.MapClaims{"sub": "1", "role": "superuser"})
	noSubject := signToken(t, jwt.MapClaims{"role": "admin"})

	cases := map[string]func(*http.Request){
		"missing header": func(*http.Request) {},
		"bad scheme":     func(r *http.Request) { r.Header.Set("Authorization", "Token abc") },
		"garbage token":  func(r *http.Request) { r.Header.Set(TokenHeader, "not-a-token") },
		"expired":        func(r *http.Request) { r.Header.Set(TokenHeader, expired) },
		"unknown role":   func(r *http.Request) { r.Header.Set(TokenHeader, unknownRole) },
		"no subject":     func(r *http.Request) { r.Header.Set(TokenHeader, noSubject) },
	}
	for name, set := range cases {
		t.Run(name, func(t *testing.T) {
			rec, _, called := runAuth(t, set)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "role": "admin"}).SignedString([]byte("other"))

	rec, _, called := runAuth(t, func(r *http.Request) { r.Header.Set(TokenHeader, signed) })
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

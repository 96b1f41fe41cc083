package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fittrack/fittrack/internal/api/middleware"
	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
	"github.com/fittrack/fittrack/internal/infrastructure/http/handlers"
)

const testSecret = "secret"

type fakeAuth struct{}

func (fakeAuth) Register(context.Context, ports.RegisterInput) (string, *domain.User, error) {
	return "", nil, domain.ErrUserExists
}

func (fakeAuth) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if email == "john@example.com" && password == "password123" {
		return "tok", &domain.User{ID: "1", Email: email, Role: domain.RoleUser}, nil
	}
	return "", nil, domain.ErrInvalidCredentials
}

func (fakeAuth) ForgotPassword(context.Context, string) error        { return nil }
func (fakeAuth) ResetPassword(context.Context, string, string) error { return nil }

type fakeUsers struct{}

func (fakeUsers) Me(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Name: "John Doe", Role: domain.RoleUser}, nil
}

func (fakeUsers) UpdateProfile(ctx context.Context, id string, _ domain.ProfileUpdate) (*domain.User, error) {
	return fakeUsers{}.Me(ctx, id)
}

func (fakeUsers) List(context.Context, domain.Role) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (fakeUsers) ChangeRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	return &domain.User{ID: id, Role: role}, nil
}

type fakeWorkouts struct{ ports.WorkoutService }

func (fakeWorkouts) List(context.Context, ports.Actor, string) ([]*domain.Workout, error) {
	return []*domain.Workout{}, nil
}

type fakeMeals struct{ ports.MealService }

func newTestRouter(limiter *middleware.IPRateLimiter) *echo.Echo {
	return NewRouter(Deps{
		Auth:         fakeAuth{},
		Users:        fakeUsers{},
		Workouts:     fakeWorkouts{},
		Meals:        fakeMeals{},
		JWTSecret:    testSecret,
		LoginLimiter: limiter,
		Checks: map[string]handlers.Check{
			"mongodb": func(context.Context) error { return nil },
		},
		Log: zerolog.Nop(),
	})
}

func tokenFor(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id, "role": string(role), "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func serve(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = "198.51.100.1:1234"
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	msg, _ := body["message"].(string)
	return msg
}

func TestRouter_LoginErrorEnvelope(t *testing.T) {
	e := newTestRouter(nil)

	rec := serve(e, http.MethodPost, "/api/auth/login", `{"email":"john@example.com","password":"nope"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := message(t, rec); msg != "Invalid email or password" {
		t.Fatalf("unexpected message %q", msg)
	}

	rec = serve(e, http.MethodPost, "/api/auth/register", `{"name":"John","email":"john@example.com","password":"secret1"}`, "")
	if rec.Code != http.StatusConflict || message(t, rec) != "User with this email already exists" {
		t.Fatalf("expected 409 envelope, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	e := newTestRouter(nil)

	rec := serve(e, http.MethodGet, "/api/users/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = serve(e, http.MethodGet, "/api/users/me", "", tokenFor(t, "1", domain.RoleUser))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var u domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil || u.ID != "1" {
		t.Fatalf("unexpected user %s", rec.Body.String())
	}
}

func TestRouter_RoleRestrictedRoutes(t *testing.T) {
	e := newTestRouter(nil)
	user := tokenFor(t, "1", domain.RoleUser)
	coach := tokenFor(t, "2", domain.RoleCoach)
	admin := tokenFor(t, "3", domain.RoleAdmin)

	cases := []struct {
		method, path, body, token string
		want                      int
	}{
		{http.MethodGet, "/api/users", "", user, http.StatusForbidden},
		{http.MethodGet, "/api/users", "", coach, http.StatusForbidden},
		{http.MethodGet, "/api/users", "", admin, http.StatusOK},
		{http.MethodGet, "/api/users/role/coach", "", user, http.StatusForbidden},
		{http.MethodGet, "/api/users/role/coach", "", coach, http.StatusOK},
		{http.MethodGet, "/api/workouts/user/1", "", user, http.StatusForbidden},
		{http.MethodGet, "/api/workouts/user/1", "", coach, http.StatusOK},
		{http.MethodPut, "/api/users/1/role", `{"role":"coach"}`, coach, http.StatusForbidden},
		{http.MethodPut, "/api/users/1/role", `{"role":"coach"}`, admin, http.StatusOK},
	}
	for _, tc := range cases {
		rec := serve(e, tc.method, tc.path, tc.body, tc.token)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
		}
		if tc.want == http.StatusForbidden && message(t, rec) != "Access denied" {
			t.Fatalf("unexpected forbidden body %s", rec.Body.String())
		}
	}
}

func TestRouter_LoginRateLimited(t *testing.T) {
	e := newTestRouter(middleware.NewIPRateLimiter(1, 1))

	first := serve(e, http.MethodPost, "/api/auth/login", `{"email":"john@example.com","password":"password123"}`, "")
	second := serve(e, http.MethodPost, "/api/auth/login", `{"email":"john@example.com","password":"password123"}`, "")

	if first.Code != http.StatusOK {
		t.Fatalf("expected first login 200, got %d", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}

func TestRouter_Probes(t *testing.T) {
	e := newTestRouter(nil)

	if rec := serve(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/metrics", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %d", rec.Code)
	}
}

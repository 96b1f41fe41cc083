package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestIPRateLimiter_PerIPBuckets(t *testing.T) {
	l := NewIPRateLimiter(60, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatalf("burst of 2 should pass")
	}
	if l.Allow("10.0.0.1") {
		t.Fatalf("third request should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatalf("other IP must have its own bucket")
	}

	now = now.Add(time.Second)
	if !l.Allow("10.0.0.1") {
		t.Fatalf("one token should refill after a second at 60/min")
	}
}

func TestIPRateLimiter_EvictsIdleVisitors(t *testing.T) {
	l := NewIPRateLimiter(60, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(idleAfter + time.Minute)
	l.Allow("10.0.0.2")

	if _, ok := l.visitors["10.0.0.1"]; ok {
		t.Fatalf("idle visitor should be evicted")
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	e := echo.New()
	mw := RateLimit(NewIPRateLimiter(1, 1), "login")
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := h(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", codes)
	}
}

package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fittrack/fittrack/internal/core/domain"
)

func sessionFor(role domain.Role) domain.Session {
	return domain.Authenticated(&domain.User{ID: "1", Email: "x@example.com", Role: role})
}

func TestAllows(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		allowed []domain.Role
		want    bool
	}{
		{"empty list admits user", domain.RoleUser, nil, true},
		{"empty list admits admin", domain.RoleAdmin, nil, true},
		{"member of list", domain.RoleCoach, []domain.Role{domain.RoleCoach, domain.RoleAdmin}, true},
		{"not a member", domain.RoleUser, []domain.Role{domain.RoleCoach, domain.RoleAdmin}, false},
		{"missing role fails closed", "", nil, false},
		{"unknown role fails closed", "superuser", []domain.Role{"superuser"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allows(tt.role, tt.allowed))
		})
	}
}

func TestDecide_EmptyRoleSetAdmitsAnyAuthenticatedRole(t *testing.T) {
	rule := domain.RouteRule{Pattern: "/dashboard", Access: domain.AccessProtected}
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleCoach, domain.RoleAdmin} {
		assert.Equal(t, Decision{Outcome: Render}, Decide(sessionFor(role), rule), role)
	}
}

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	for _, rule := range DefaultTable().Rules() {
		if rule.Access != domain.AccessProtected {
			continue
		}
		got := Decide(domain.Unauthenticated(), rule)
		assert.Equal(t, Decision{Outcome: Redirect, Location: "/login"}, got, rule.Pattern)
	}
}

func TestDecide_PublicOnlyRedirectsAuthenticated(t *testing.T) {
	table := DefaultTable()
	for _, path := range []string{"/login", "/register", "/forgot-password"} {
		got := table.Navigate(sessionFor(domain.RoleUser), path)
		assert.Equal(t, Decision{Outcome: Redirect, Location: "/dashboard"}, got, path)

		got = table.Navigate(domain.Unauthenticated(), path)
		assert.Equal(t, Render, got.Outcome, path)
	}
}

func TestDecide_LoadingNeverRedirects(t *testing.T) {
	loadingAnon := domain.InitialSession()
	loadingUser := sessionFor(domain.RoleUser)
	loadingUser.Loading = true

	for _, rule := range DefaultTable().Rules() {
		for _, s := range []domain.Session{loadingAnon, loadingUser} {
			got := Decide(s, rule)
			assert.NotEqual(t, Redirect, got.Outcome, rule.Pattern)
			if rule.Access != domain.AccessOpen {
				assert.Equal(t, Defer, got.Outcome, rule.Pattern)
			}
		}
	}
}

func TestDecide_CoachRouteRejectsUserRole(t *testing.T) {
	got := DefaultTable().Navigate(sessionFor(domain.RoleUser), "/coach/dashboard")
	assert.Equal(t, Decision{Outcome: Redirect, Location: "/login"}, got)

	got = DefaultTable().Navigate(sessionFor(domain.RoleCoach), "/coach/dashboard")
	assert.Equal(t, Render, got.Outcome)
}

func TestDecide_AuthenticatedWithoutUserFailsClosed(t *testing.T) {
	s := domain.Session{IsAuthenticated: true}
	got := Decide(s, domain.RouteRule{Pattern: "/dashboard"})
	assert.Equal(t, Redirect, got.Outcome)
}

func TestDecide_RedirectOverride(t *testing.T) {
	rule := domain.RouteRule{Pattern: "/admin", Roles: []domain.Role{domain.RoleAdmin}, Redirect: "/dashboard"}
	got := Decide(sessionFor(domain.RoleCoach), rule)
	assert.Equal(t, Decision{Outcome: Redirect, Location: "/dashboard"}, got)
}

func TestDecide_OpenRoutesAlwaysRender(t *testing.T) {
	table := DefaultTable()
	for _, s := range []domain.Session{domain.InitialSession(), domain.Unauthenticated(), sessionFor(domain.RoleAdmin)} {
		assert.Equal(t, Render, table.Navigate(s, "/pricing").Outcome)
	}
}

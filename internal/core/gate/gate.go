// Package gate decides, per navigation, whether a screen may render for the
// current session.
package gate

import (
	"slices"

	"github.com/fittrack/fittrack/internal/core/domain"
)

// Outcome is the verdict of a single navigation.
type Outcome int

const (
	// Render shows the requested page.
	Render Outcome = iota
	// Redirect sends the client to Decision.Location.
	Redirect
	// Defer shows a loading placeholder and makes no decision yet.
	Defer
	// NotFound means no rule covers the path.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Defer:
		return "defer"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Decision is what the client should do for a navigation.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Allows reports whether role passes the allow-list. An empty list admits any
// known role; a missing or unknown role is always denied.
func Allows(role domain.Role, allowed []domain.Role) bool {
	if !role.Valid() {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	return slices.Contains(allowed, role)
}

// Decide applies rule to the session.
func Decide(s domain.Session, rule domain.RouteRule) Decision {
	switch rule.Access {
	case domain.AccessOpen:
		return Decision{Outcome: Render}

	case domain.AccessPublicOnly:
		if s.Loading {
			return Decision{Outcome: Defer}
		}
		if s.IsAuthenticated {
			return Decision{Outcome: Redirect, Location: rule.Fallback()}
		}
		return Decision{Outcome: Render}

	default:
		if s.Loading {
			return Decision{Outcome: Defer}
		}
		if s.IsAuthenticated && s.User != nil && Allows(s.User.Role, rule.Roles) {
			return Decision{Outcome: Render}
		}
		return Decision{Outcome: Redirect, Location: rule.Fallback()}
	}
}

package domain

// Access classifies how a route reacts to the session.
type Access string

const (
	// AccessProtected routes require an authenticated user whose role is allowed.
	AccessProtected Access = "protected"
	// AccessPublicOnly routes are for anonymous visitors; logged-in users are sent away.
	AccessPublicOnly Access = "public-only"
	// AccessOpen routes render for everybody and are never gated.
	AccessOpen Access = "open"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// RouteRule maps a path pattern to its access requirements. Rules are static
// once the table is built.
type RouteRule struct {
	Pattern string `yaml:"path" json:"path"`
	Access  Access `yaml:"access" json:"access"`
	// Roles is the allow-list for protected routes. Empty means any
	// authenticated role.
	Roles []Role `yaml:"roles" json:"roles,omitempty"`
	// Redirect overrides the fallback location when access is denied.
	Redirect string `yaml:"redirect" json:"redirect,omitempty"`
}

// Fallback returns where a denied navigation is sent.
func (r RouteRule) Fallback() string {
	if r.Redirect != "" {
		return r.Redirect
	}
	if r.Access == AccessPublicOnly {
		return DashboardPath
	}
	return LoginPath
}

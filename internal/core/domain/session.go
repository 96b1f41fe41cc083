package domain

// Session is the authentication state of one client.
//
// IsAuthenticated implies User != nil. Loading is layered on top of the
// resolved state: while it is set, callers must not make redirect decisions.
type Session struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`
}

// InitialSession is the state a client starts in, before hydration.
func InitialSession() Session {
	return Session{Loading: true}
}

// Authenticated returns the resolved logged-in state for u.
func Authenticated(u *User) Session {
	return Session{IsAuthenticated: true, User: u}
}

// Unauthenticated returns the resolved logged-out state.
func Unauthenticated() Session {
	return Session{}
}

// Role returns the role of the current user, or "" when nobody is logged in.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Clone returns a copy of s that shares no memory with it.
func (s Session) Clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

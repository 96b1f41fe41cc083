package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// Messages stored in Session.Error.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserExists         = "User with this email already exists"
	MsgUserNotFound       = "No user found with this email address"
	MsgInvalidRole        = "Invalid role"
	MsgInvalidResetToken  = "Invalid or expired reset token"
	MsgLoginFailed        = "Login failed"
	MsgRegisterFailed     = "Registration failed"
	MsgForgotFailed       = "Error sending reset email"
	MsgResetFailed        = "Error resetting password"
)

// userMessager is implemented by provider errors that carry a message meant
// for the user, such as a backend's error body.
type userMessager interface {
	UserMessage() string
}

// SessionStore is the single source of truth for who is logged in. It is
// built once at start-up and handed to whoever needs it.
//
// Mutating calls are not coordinated with each other: the last one to finish
// wins. Callers are expected to hold off new submissions while Loading is set.
type SessionStore struct {
	mu    sync.RWMutex
	state domain.Session

	provider ports.AuthProvider
	storage  ports.Storage
	log      zerolog.Logger
}

// NewSessionStore returns a store in the initial loading state. Call Hydrate
// before making routing decisions.
func NewSessionStore(provider ports.AuthProvider, storage ports.Storage, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		state:    domain.InitialSession(),
		provider: provider,
		storage:  storage,
		log:      log,
	}
}

// Snapshot returns a copy of the current session.
func (s *SessionStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Hydrate restores the session from storage. Every failure resolves to the
// logged-out state and clears the persisted credential; nothing is surfaced.
func (s *SessionStore) Hydrate(ctx context.Context) {
	s.begin()
	key := s.provider.StorageKey()

	stored, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("session storage unreadable, starting logged out")
		s.clear(ctx)
		s.resolve(domain.Unauthenticated())
		return
	}
	if !ok || stored == "" {
		s.resolve(domain.Unauthenticated())
		return
	}

	user, err := s.provider.Restore(ctx, stored)
	if err != nil || user == nil {
		s.log.Debug().Err(err).Msg("stored session rejected")
		s.clear(ctx)
		s.resolve(domain.Unauthenticated())
		return
	}

	s.log.Debug().Str("user_id", user.ID).Msg("session restored")
	s.resolve(domain.Authenticated(user))
}

// Login authenticates and persists the credential. On failure the session
// keeps its previous authentication state, Error is set and the error is
// returned to the caller.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.begin()

	cred, err := s.provider.Login(ctx, email, password)
	if err != nil {
		return s.fail("login", err, MsgLoginFailed)
	}

	s.persist(ctx, cred)
	s.resolve(domain.Authenticated(cred.User))
	s.log.Info().Str("user_id", cred.User.ID).Str("role", string(cred.User.Role)).Msg("logged in")
	return nil
}

// Register creates an account and logs it in. An empty role means the
// least-privileged one.
func (s *SessionStore) Register(ctx context.Context, in ports.RegisterInput) error {
	if in.Role == "" {
		in.Role = string(domain.RoleUser)
	}
	s.begin()

	cred, err := s.provider.Register(ctx, in)
	if err != nil {
		return s.fail("register", err, MsgRegisterFailed)
	}

	s.persist(ctx, cred)
	s.resolve(domain.Authenticated(cred.User))
	s.log.Info().Str("user_id", cred.User.ID).Str("role", string(cred.User.Role)).Msg("registered")
	return nil
}

// Logout forgets the credential and resets to the logged-out state. It cannot fail.
func (s *SessionStore) Logout(ctx context.Context) {
	s.clear(ctx)
	s.resolve(domain.Unauthenticated())
}

// ForgotPassword asks the provider to send a reset mail.
func (s *SessionStore) ForgotPassword(ctx context.Context, email string) error {
	s.begin()
	if err := s.provider.ForgotPassword(ctx, email); err != nil {
		return s.fail("forgot password", err, MsgForgotFailed)
	}
	s.settle()
	return nil
}

// ResetPassword sets a new password using a reset token.
func (s *SessionStore) ResetPassword(ctx context.Context, token, password string) error {
	s.begin()
	if err := s.provider.ResetPassword(ctx, token, password); err != nil {
		return s.fail("reset password", err, MsgResetFailed)
	}
	s.settle()
	return nil
}

// begin flags the current state as loading and clears the last error.
func (s *SessionStore) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.Error = ""
}

// settle clears the loading flag, leaving authentication untouched.
func (s *SessionStore) settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
}

func (s *SessionStore) resolve(next domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
}

func (s *SessionStore) fail(op string, err error, fallback string) error {
	msg := errorMessage(err, fallback)

	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = msg
	s.mu.Unlock()

	s.log.Debug().Err(err).Str("op", op).Msg("session operation failed")
	return fmt.Errorf("%s: %w", op, err)
}

func (s *SessionStore) persist(ctx context.Context, cred *ports.Credential) {
	value, err := s.provider.Encode(cred)
	if err == nil {
		err = s.storage.Set(ctx, s.provider.StorageKey(), value)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session, it will not survive a restart")
	}
}

func (s *SessionStore) clear(ctx context.Context) {
	if err := s.storage.Delete(ctx, s.provider.StorageKey()); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
}

func errorMessage(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, domain.ErrUserExists):
		return MsgUserExists
	case errors.Is(err, domain.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, domain.ErrInvalidRole):
		return MsgInvalidRole
	case errors.Is(err, domain.ErrInvalidResetToken):
		return MsgInvalidResetToken
	}
	return fallback
}

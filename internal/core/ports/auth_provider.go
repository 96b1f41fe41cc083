package ports

import (
	"context"

	"github.com/fittrack/fittrack/internal/core/domain"
)

// Credential is what a successful login or registration hands back.
type Credential struct {
	Token string
	User  *domain.User
}

// AuthProvider authenticates on behalf of a client session. Implementations
// decide what gets persisted and how a persisted value is turned back into
// a user at start-up.
type AuthProvider interface {
	// StorageKey is the storage key the credential is persisted under.
	StorageKey() string
	// Encode turns a credential into its persisted string form.
	Encode(cred *Credential) (string, error)
	// Restore resolves a persisted value back into a user.
	Restore(ctx context.Context, stored string) (*domain.User, error)

	Login(ctx context.Context, email, password string) (*Credential, error)
	Register(ctx context.Context, in RegisterInput) (*Credential, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// Storage is a string key-value store scoped to one client profile.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

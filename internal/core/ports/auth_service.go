package ports

import (
	"context"

	"github.com/fittrack/fittrack/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService covers the account lifecycle served by the backend.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// UserService serves profile reads and updates.
type UserService interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	ChangeRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
}

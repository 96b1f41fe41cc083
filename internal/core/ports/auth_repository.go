package ports

import (
	"context"

	"github.com/fittrack/fittrack/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListByRole returns every user, or only users with role when it is non-empty.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ResetTokenStore holds single-use password reset tokens.
type ResetTokenStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	// Consume returns the user the token was issued for and invalidates it.
	Consume(ctx context.Context, token string) (string, error)
}

// ResetMail is a queued password reset notification.
type ResetMail struct {
	Email string
	Name  string
	Token string
}

// MailQueue accepts reset mails for asynchronous delivery.
type MailQueue interface {
	Enqueue(ctx context.Context, mail ResetMail) error
}

// Mailer delivers a reset mail.
type Mailer interface {
	SendReset(ctx context.Context, mail ResetMail) error
}

// Package memory is an in-process AuthProvider seeded with demo accounts.
// It persists the logged-in user itself, so restoring a session needs no
// round trip.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// StorageKey is where the logged-in user is persisted.
const StorageKey = "currentUser"

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

var errCorruptUser = errors.New("stored user is incomplete")

type account struct {
	user domain.User
	hash []byte
}

// Provider keeps accounts in a map keyed by lower-cased email.
type Provider struct {
	mu       sync.RWMutex
	accounts map[string]*account
	resets   map[string]string // token -> email

	delay time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithDelay makes every operation wait d, like a slow network would.
func WithDelay(d time.Duration) Option {
	return func(p *Provider) { p.delay = d }
}

// WithLogger sets the logger used for simulated side effects.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Provider) { p.log = log }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// New returns a provider seeded with John Doe (user) and Jane Smith (coach).
func New(opts ...Option) *Provider {
	p := &Provider{
		accounts: make(map[string]*account),
		resets:   make(map[string]string),
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	seed := []domain.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", Role: domain.RoleUser},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: domain.RoleCoach},
	}
	for _, u := range seed {
		if err := p.AddUser(u, DemoPassword); err != nil {
			panic(fmt.Sprintf("memory provider: seed %s: %v", u.Email, err))
		}
	}
	return p
}

// AddUser stores u with password. Existing emails are rejected.
func (p *Provider) AddUser(u domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	now := p.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	p.mu.Lock()
	defer p.mu.Unlock()
	key := normalize(u.Email)
	if _, exists := p.accounts[key]; exists {
		return domain.ErrUserExists
	}
	p.accounts[key] = &account{user: u, hash: hash}
	return nil
}

func (p *Provider) StorageKey() string { return StorageKey }

func (p *Provider) Encode(cred *ports.Credential) (string, error) {
	if cred == nil || cred.User == nil {
		return "", errCorruptUser
	}
	b, err := json.Marshal(cred.User)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}
	return string(b), nil
}

// Restore decodes the persisted user. No account lookup happens: the saved
// blob is trusted, as it was written by this process.
func (p *Provider) Restore(_ context.Context, stored string) (*domain.User, error) {
	var u domain.User
	if err := json.Unmarshal([]byte(stored), &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if u.ID == "" || u.Email == "" || !u.Role.Valid() {
		return nil, errCorruptUser
	}
	return &u, nil
}

func (p *Provider) Login(ctx context.Context, email, password string) (*ports.Credential, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	acc, ok := p.accounts[normalize(email)]
	p.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	u := acc.user
	u.UpdatedAt = p.now().UTC()
	return &ports.Credential{User: &u}, nil
}

func (p *Provider) Register(ctx context.Context, in ports.RegisterInput) (*ports.Credential, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if !role.SelfAssignable() {
		return nil, domain.ErrInvalidRole
	}

	u := domain.User{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Email: in.Email,
		Role:  role,
	}
	if err := p.AddUser(u, in.Password); err != nil {
		return nil, err
	}

	p.mu.RLock()
	created := p.accounts[normalize(in.Email)].user
	p.mu.RUnlock()
	return &ports.Credential{User: &created}, nil
}

// ForgotPassword records a reset token for a known email and logs the mail
// that would have been sent.
func (p *Provider) ForgotPassword(ctx context.Context, email string) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.accounts[normalize(email)]; !ok {
		return domain.ErrUserNotFound
	}
	token := uuid.NewString()
	p.resets[token] = normalize(email)

	p.log.Info().Str("email", email).Msg("password reset email sent")
	return nil
}

// ResetPassword always succeeds. A token issued by ForgotPassword also
// updates the stored password.
func (p *Provider) ResetPassword(ctx context.Context, token, password string) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	email, ok := p.resets[token]
	delete(p.resets, token)
	p.mu.Unlock()
	if !ok {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if acc, ok := p.accounts[email]; ok {
		acc.hash = hash
		acc.user.UpdatedAt = p.now().UTC()
	}
	return nil
}

// PendingResetToken returns a token issued for email, if any.
func (p *Provider) PendingResetToken(email string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for token, e := range p.resets {
		if e == normalize(email) {
			return token, true
		}
	}
	return "", false
}

func (p *Provider) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

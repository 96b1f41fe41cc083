package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
)

type stubAuthRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
	seq   int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = "u" + strconv.Itoa(r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubAuthRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubAuthRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

type stubResetStore struct {
	tokens map[string]string
	err    error
}

func (s *stubResetStore) Issue(_ context.Context, userID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	token := "tok-" + userID
	s.tokens[token] = userID
	return token, nil
}

func (s *stubResetStore) Consume(_ context.Context, token string) (string, error) {
	id, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tokens, token)
	return id, nil
}

type stubMailQueue struct {
	sent []ports.ResetMail
	err  error
}

func (q *stubMailQueue) Enqueue(_ context.Context, m ports.ResetMail) error {
	if q.err != nil {
		return q.err
	}
	q.sent = append(q.sent, m)
	return nil
}

type authFixture struct {
	svc    *AuthService
	repo   *stubAuthRepo
	resets *stubResetStore
	mail   *stubMailQueue
}

func newAuthFixture() authFixture {
	f := authFixture{
		repo:   newStubAuthRepo(),
		resets: &stubResetStore{tokens: make(map[string]string)},
		mail:   &stubMailQueue{},
	}
	f.svc = NewAuthService(f.repo, f.resets, f.mail, "secret", time.Hour, zerolog.Nop())
	return f
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture()

	token, user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: " Alice@Example.com ", Password: "pass123", Role: "coach",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected stored user, got %+v", user)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	claims := parseClaims(t, token)
	if claims["role"] != "coach" || claims["sub"] != user.ID {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_Register_DefaultsToUser(t *testing.T) {
	f := newAuthFixture()

	_, user, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if _, _, err := f.svc.Register(ctx, ports.RegisterInput{Email: "x@example.com", Password: "pw"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := f.svc.Register(ctx, ports.RegisterInput{Name: "B", Email: "b@example.com", Password: "pw", Role: "wrong"}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for bad role, got %v", err)
	}
	if _, _, err := f.svc.Register(ctx, ports.RegisterInput{Name: "B", Email: "b@example.com", Password: "pw", Role: "admin"}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for admin, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newAuthFixture()
	in := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass"}

	_, _, _ = f.svc.Register(context.Background(), in)
	if _, _, err := f.svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if _, _, err := f.svc.Register(ctx, ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := f.svc.Login(ctx, "CAROL@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if claims := parseClaims(t, token); claims["role"] != string(domain.RoleUser) {
		t.Fatalf("expected role user, got %v", claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newAuthFixture()

	_, _, _ = f.svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})
	if _, _, err := f.svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	if _, _, err := f.svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ForgotAndResetPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	_, user, _ := f.svc.Register(ctx, ports.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "old"})

	if err := f.svc.ForgotPassword(ctx, "eve@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if len(f.mail.sent) != 1 {
		t.Fatalf("expected one queued mail, got %d", len(f.mail.sent))
	}
	mail := f.mail.sent[0]
	if mail.Email != user.Email || mail.Name != "Eve" || mail.Token == "" {
		t.Fatalf("unexpected mail: %+v", mail)
	}

	if err := f.svc.ResetPassword(ctx, mail.Token, "new"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, _, err := f.svc.Login(ctx, "eve@example.com", "new"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if err := f.svc.ResetPassword(ctx, mail.Token, "again"); err != domain.ErrInvalidResetToken {
		t.Fatalf("expected single-use token, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	if err := f.svc.ForgotPassword(context.Background(), "ghost@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(f.mail.sent) != 0 {
		t.Fatalf("no mail expected")
	}
}

func TestAuthService_ForgotPassword_TokenStoreDown(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	_, _, _ = f.svc.Register(ctx, ports.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "old"})
	f.resets.err = errors.New("redis down")

	if err := f.svc.ForgotPassword(ctx, "eve@example.com"); err == nil {
		t.Fatalf("expected error")
	}
	if len(f.mail.sent) != 0 {
		t.Fatalf("no mail expected")
	}
}

func TestAuthService_ForgotPassword_QueueUnavailable(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	_, _, _ = f.svc.Register(ctx, ports.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "old"})
	f.mail.err = context.DeadlineExceeded

	err := f.svc.ForgotPassword(ctx, "eve@example.com")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected queue error, got %v", err)
	}
}

func TestAuthService_ResetPassword_EmptyToken(t *testing.T) {
	f := newAuthFixture()

	if err := f.svc.ResetPassword(context.Background(), "", "pw"); err != domain.ErrInvalidResetToken {
		t.Fatalf("expected ErrInvalidResetToken, got %v", err)
	}
}

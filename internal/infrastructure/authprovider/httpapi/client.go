// Package httpapi is an AuthProvider backed by the FitTrack REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
)

// StorageKey is where the session token is persisted.
const StorageKey = "token"

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "x-auth-token"

const defaultTimeout = 15 * time.Second

// ErrIncompleteUser is returned when a 2xx answer carries a user without an
// id or a known role.
var ErrIncompleteUser = errors.New("api: incomplete user")

// APIError is a non-2xx answer from the API. Message is the server's
// `message` field, verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto domain errors so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrInvalidCredentials
	case http.StatusConflict:
		return domain.ErrUserExists
	case http.StatusNotFound:
		return domain.ErrUserNotFound
	}
	return nil
}

// Client talks to the API under baseURL (e.g. http://localhost:8080/api).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) StorageKey() string { return StorageKey }

func (c *Client) Encode(cred *ports.Credential) (string, error) {
	if cred == nil || cred.Token == "" {
		return "", fmt.Errorf("encode credential: missing token")
	}
	return cred.Token, nil
}

// Restore validates the stored token by asking the API who it belongs to.
func (c *Client) Restore(ctx context.Context, token string) (*domain.User, error) {
	var u *domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &u); err != nil {
		return nil, err
	}
	if err := checkUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*ports.Credential, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return toCredential(resp)
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*ports.Credential, error) {
	body := map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
		"role":     in.Role,
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &resp); err != nil {
		return nil, err
	}
	return toCredential(resp)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", "", body, nil)
}

func toCredential(resp authResponse) (*ports.Credential, error) {
	if resp.Token == "" {
		return nil, fmt.Errorf("api: auth response without token")
	}
	if err := checkUser(resp.User); err != nil {
		return nil, err
	}
	return &ports.Credential{Token: resp.Token, User: resp.User}, nil
}

func checkUser(u *domain.User) error {
	if u == nil || u.ID == "" || !u.Role.Valid() {
		return ErrIncompleteUser
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Message = er.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// UserMessage is the text shown to the user for this error.
func (e *APIError) UserMessage() string { return e.Message }

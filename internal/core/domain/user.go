package domain

import (
	"errors"
	"time"
)

// Role is the sole authorization input for a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleCoach Role = "coach"
	RoleAdmin Role = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCoach, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether a new account may pick r at registration.
// Admins are appointed, never self-registered.
func (r Role) SelfAssignable() bool {
	return r == RoleUser || r == RoleCoach
}

// ParseRole resolves a registration role, defaulting to the least-privileged one.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	Age          int       `json:"age,omitempty"`
	Weight       float64   `json:"weight,omitempty"`
	Height       float64   `json:"height,omitempty"`
	Goal         string    `json:"goal,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the fields a user may change on their own record.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
	Age    *int
	Weight *float64
	Height *float64
	Goal   *string
}

// Apply copies the non-nil fields of p onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Weight != nil {
		u.Weight = *p.Weight
	}
	if p.Height != nil {
		u.Height = *p.Height
	}
	if p.Goal != nil {
		u.Goal = *p.Goal
	}
}

package service

import (
	"context"
	"testing"

	"github.com/fittrack/fittrack/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubAuthRepo, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{Name: name, Email: email, Role: role})
	if err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	return u
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newStubAuthRepo()
	u := seedUser(t, repo, "John", "john@example.com", domain.RoleUser)
	svc := NewUserService(repo)

	goal := "run a marathon"
	weight := 72.5
	updated, err := svc.UpdateProfile(context.Background(), u.ID, domain.ProfileUpdate{Goal: &goal, Weight: &weight})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Goal != goal || updated.Weight != weight || updated.Name != "John" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	me, _ := svc.Me(context.Background(), u.ID)
	if me.Goal != goal {
		t.Fatalf("update not persisted: %+v", me)
	}
}

func TestUserService_Me_NotFound(t *testing.T) {
	svc := NewUserService(newStubAuthRepo())

	if _, err := svc.Me(context.Background(), "nope"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	repo := newStubAuthRepo()
	seedUser(t, repo, "John", "john@example.com", domain.RoleUser)
	seedUser(t, repo, "Jane", "jane@example.com", domain.RoleCoach)
	svc := NewUserService(repo)

	all, err := svc.List(context.Background(), "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 users, got %d (%v)", len(all), err)
	}
	coaches, _ := svc.List(context.Background(), domain.RoleCoach)
	if len(coaches) != 1 || coaches[0].Email != "jane@example.com" {
		t.Fatalf("unexpected coaches: %+v", coaches)
	}
	if _, err := svc.List(context.Background(), "guest"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	repo := newStubAuthRepo()
	u := seedUser(t, repo, "John", "john@example.com", domain.RoleUser)
	svc := NewUserService(repo)

	updated, err := svc.ChangeRole(context.Background(), u.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("change role failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %s", updated.Role)
	}
	if _, err := svc.ChangeRole(context.Background(), u.ID, "root"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

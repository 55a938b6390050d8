package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecodesafios-backend/internal/app"
	"ecodesafios-backend/internal/auth"
	"ecodesafios-backend/internal/domain"
	"ecodesafios-backend/internal/infra/memory"
)

func newUserService(users app.UserRepository) *app.UserService {
	return app.NewUserService(users, auth.NewTokenManager("test-secret", time.Hour))
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	service := newUserService(memory.NewUserStore())

	if _, _, err := service.Register(ctx, "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := service.Register(ctx, "alice", "other@example.com", "pw")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestLoginAutoRegistersUnknownUsers(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	service := newUserService(users)

	token, user, err := service.Login(ctx, "newcomer", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.Email != "newcomer@demo.com" {
		t.Fatalf("expected demo email, got %q", user.Email)
	}

	if _, exists, _ := users.GetUserByUsername(ctx, "newcomer"); !exists {
		t.Fatal("expected auto-registered account to persist")
	}
}

func TestProfileCountsCompletedChallenges(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	service := newUserService(users)

	if _, err := users.RecordChallengeCompletion(ctx, 1, 3, 200); err != nil {
		t.Fatalf("record completion: %v", err)
	}

	profile, err := service.Profile(ctx, 1)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Points != 200 || profile.CompletedChallenges != 1 {
		t.Fatalf("expected 200 points and 1 completion, got %+v", profile)
	}

	if _, err := service.Profile(ctx, 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

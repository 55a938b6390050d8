package redis

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"ecodesafios-backend/internal/domain"
)

func TestUserStoreCreateAndAward(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewUserStore(newClient(mr))

	user, err := store.CreateUser(ctx, "alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := store.AwardPoints(ctx, user.ID, 100); err != nil {
		t.Fatalf("award: %v", err)
	}
	total, err := store.AwardPoints(ctx, user.ID, 250)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if total != 350 {
		t.Fatalf("expected 350, got %d", total)
	}

	loaded, err := store.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Points != 350 || loaded.Username != "alice" {
		t.Fatalf("unexpected user %+v", loaded)
	}

	if _, err := store.AwardPoints(ctx, 999, 10); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestUserStoreUsernameLookup(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewUserStore(newClient(mr))

	if err := store.SeedDemoUser(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Seeding twice must not duplicate the account.
	if err := store.SeedDemoUser(ctx); err != nil {
		t.Fatalf("seed again: %v", err)
	}

	demo, exists, err := store.GetUserByUsername(ctx, "demo")
	if err != nil || !exists {
		t.Fatalf("expected demo user, exists=%v err=%v", exists, err)
	}
	if demo.Email != "demo@exemplo.com" {
		t.Fatalf("unexpected demo user %+v", demo)
	}

	if _, exists, err := store.GetUserByUsername(ctx, "ghost"); err != nil || exists {
		t.Fatalf("expected no ghost user, exists=%v err=%v", exists, err)
	}

	if _, err := store.CreateUser(ctx, "demo", "again@demo.com", ""); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestUserStoreChallengeCompletion(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewUserStore(newClient(mr))

	user, err := store.CreateUser(ctx, "bob", "bob@example.com", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	total, err := store.RecordChallengeCompletion(ctx, user.ID, 2, 250)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if total != 250 {
		t.Fatalf("expected 250, got %d", total)
	}

	if _, err := store.RecordChallengeCompletion(ctx, user.ID, 2, 250); !errors.Is(err, domain.ErrChallengeCompleted) {
		t.Fatalf("expected already-completed, got %v", err)
	}

	loaded, _ := store.GetUser(ctx, user.ID)
	if loaded.Points != 250 || len(loaded.CompletedChallenges) != 1 || loaded.CompletedChallenges[0] != 2 {
		t.Fatalf("unexpected state %+v", loaded)
	}
}

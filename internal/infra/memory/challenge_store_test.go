package memory

import (
	"context"
	"errors"
	"testing"

	"ecodesafios-backend/internal/domain"
)

func TestChallengeStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewChallengeStore(SeedChallenges())

	challenges, err := store.ListChallenges(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(challenges) != 5 {
		t.Fatalf("expected 5 seeded challenges, got %d", len(challenges))
	}

	created, err := store.CreateChallenge(ctx, domain.Challenge{Title: "Horta Comunitária", MaxPoints: 150, Active: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 6 || created.CreatedAt == "" {
		t.Fatalf("unexpected created challenge %+v", created)
	}

	updated, err := store.UpdateChallenge(ctx, created.ID, domain.Challenge{Title: "Horta Urbana", MaxPoints: 175})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Horta Urbana" || updated.MaxPoints != 175 {
		t.Fatalf("unexpected update %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatal("update must not touch createdAt")
	}

	if err := store.DeleteChallenge(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetChallenge(ctx, created.ID); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := store.DeleteChallenge(ctx, created.ID); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Fatalf("expected delete of missing challenge to fail, got %v", err)
	}
}

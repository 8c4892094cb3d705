package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/telefonbuch/internal/models"
	"github.com/mmynk/telefonbuch/internal/storage"
)

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("anna", "$2a$10$hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("lookup by username", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "anna")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Errorf("expected user %s, got %+v", user.ID, got)
		}
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Username != "anna" {
			t.Errorf("expected username anna, got %+v", got)
		}
	})

	t.Run("missing user returns nil", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("anna", "$2a$10$other"))
		if !errors.Is(err, storage.ErrDuplicateUsername) {
			t.Errorf("expected ErrDuplicateUsername, got %v", err)
		}
	})

	t.Run("username index is case-sensitive", func(t *testing.T) {
		if err := store.CreateUser(ctx, models.NewUser("Anna", "$2a$10$hash")); err != nil {
			t.Errorf("expected differently-cased username to be allowed, got %v", err)
		}
	})
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mmynk/telefonbuch/internal/auth"
	"github.com/mmynk/telefonbuch/internal/collation"
	"github.com/mmynk/telefonbuch/internal/middleware"
	"github.com/mmynk/telefonbuch/internal/models"
	"github.com/mmynk/telefonbuch/internal/storage"
)

// fakeStore is an in-memory storage.Store that counts calls, so tests can
// assert which tiers the orchestrator actually consulted.
type fakeStore struct {
	entries []models.Entry

	textResults      []models.Entry
	substringResults []models.Entry

	textCalls      int
	substringCalls int
	existsCalls    int
}

func (f *fakeStore) ListEntries(ctx context.Context) ([]models.Entry, error) {
	return f.entries, nil
}

func (f *fakeStore) SearchEntriesText(ctx context.Context, term string) ([]models.Entry, error) {
	f.textCalls++
	return f.textResults, nil
}

func (f *fakeStore) SearchEntriesSubstring(ctx context.Context, term string) ([]models.Entry, error) {
	f.substringCalls++
	return f.substringResults, nil
}

func (f *fakeStore) InsertEntry(ctx context.Context, entry *models.Entry) error {
	for _, e := range f.entries {
		if collation.Equal(e.Name, entry.Name) && collation.Equal(e.Phone, entry.Phone) {
			return storage.ErrDuplicateEntry
		}
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeStore) EntryExists(ctx context.Context, name, phone string) (bool, error) {
	f.existsCalls++
	for _, e := range f.entries {
		if collation.Equal(e.Name, name) && collation.Equal(e.Phone, phone) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountEntries(ctx context.Context) (int, error) { return len(f.entries), nil }

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error { return nil }
func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}
func (f *fakeStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return nil, nil
}
func (f *fakeStore) Close() error { return nil }

func authedCtx() context.Context {
	return middleware.WithUserID(context.Background(), "test-user")
}

func newTestService(store storage.Store) *PhonebookService {
	return NewPhonebookService(store, slog.Default())
}

func TestSearchBlankTermSkipsStore(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	for _, term := range []string{"", "   ", "\t"} {
		entries, err := svc.Search(authedCtx(), term)
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", term, err)
		}
		if len(entries) != 0 {
			t.Errorf("Search(%q) returned %d entries, want 0", term, len(entries))
		}
	}
	if store.textCalls != 0 || store.substringCalls != 0 {
		t.Errorf("blank terms must not reach the store (text=%d substring=%d)",
			store.textCalls, store.substringCalls)
	}
}

func TestSearchPrefersTextTier(t *testing.T) {
	store := &fakeStore{
		textResults: []models.Entry{{ID: "1", Name: "Montag, Petra"}},
		// Would reorder if the tiers were merged; must never be consulted.
		substringResults: []models.Entry{{ID: "2", Name: "Abend, Hans"}},
	}
	svc := newTestService(store)

	entries, err := svc.Search(authedCtx(), "Mon")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "1" {
		t.Errorf("expected text-tier result, got %v", entries)
	}
	if store.substringCalls != 0 {
		t.Error("substring tier consulted although text tier had results")
	}
}

func TestSearchFallsBackToSubstring(t *testing.T) {
	store := &fakeStore{
		substringResults: []models.Entry{{ID: "2", Name: "Montag, Petra"}},
	}
	svc := newTestService(store)

	entries, err := svc.Search(authedCtx(), "ont")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "2" {
		t.Errorf("expected substring fallback result, got %v", entries)
	}
	if store.textCalls != 1 || store.substringCalls != 1 {
		t.Errorf("expected both tiers tried once, got text=%d substring=%d",
			store.textCalls, store.substringCalls)
	}
}

func TestSearchRequiresAuth(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.Search(context.Background(), "anna")
	if !errors.Is(err, auth.ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
}

func TestCheckDuplicate(t *testing.T) {
	store := &fakeStore{
		entries: []models.Entry{{Name: "Anna Bauer", Phone: "0171/1234567"}},
	}
	svc := newTestService(store)
	ctx := authedCtx()

	t.Run("case-folded match is a duplicate", func(t *testing.T) {
		dup, err := svc.CheckDuplicate(ctx, "anna bauer", "0171/1234567")
		if err != nil {
			t.Fatalf("CheckDuplicate failed: %v", err)
		}
		if !dup {
			t.Error("expected duplicate")
		}
	})

	t.Run("empty values cannot collide", func(t *testing.T) {
		before := store.existsCalls
		for _, pair := range [][2]string{{"", "0171/1234567"}, {"Anna Bauer", ""}, {"  ", "  "}} {
			dup, err := svc.CheckDuplicate(ctx, pair[0], pair[1])
			if err != nil {
				t.Fatalf("CheckDuplicate failed: %v", err)
			}
			if dup {
				t.Errorf("empty pair %q reported as duplicate", pair)
			}
		}
		if store.existsCalls != before {
			t.Error("empty values must not reach the store")
		}
	})
}

func TestAddEntry(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := authedCtx()

	t.Run("valid entry", func(t *testing.T) {
		entry, err := svc.AddEntry(ctx, "  Anna Bauer  ", " 0171/1234567 ")
		if err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
		if entry.Name != "Anna Bauer" || entry.Phone != "0171/1234567" {
			t.Errorf("expected trimmed values, got %+v", entry)
		}
		if entry.ID == "" {
			t.Error("expected generated ID")
		}
	})

	t.Run("validation re-checked at the boundary", func(t *testing.T) {
		var ve *models.ValidationError
		_, err := svc.AddEntry(ctx, "Anna", "01714527294")
		if !errors.As(err, &ve) {
			t.Errorf("expected ValidationError for missing slash, got %v", err)
		}
		_, err = svc.AddEntry(ctx, "", "0171/4527294")
		if !errors.As(err, &ve) {
			t.Errorf("expected ValidationError for empty name, got %v", err)
		}
	})

	t.Run("duplicate surfaces as conflict", func(t *testing.T) {
		_, err := svc.AddEntry(ctx, "ANNA BAUER", "0171/1234567")
		if !errors.Is(err, storage.ErrDuplicateEntry) {
			t.Errorf("expected ErrDuplicateEntry, got %v", err)
		}
	})
}

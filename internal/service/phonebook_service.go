package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/telefonbuch/internal/auth"
	"github.com/mmynk/telefonbuch/internal/middleware"
	"github.com/mmynk/telefonbuch/internal/models"
	"github.com/mmynk/telefonbuch/internal/storage"
)

// PhonebookService implements the entry operations: authenticated listing,
// two-tier search, advisory duplicate checking and validated inserts.
type PhonebookService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPhonebookService creates a new phone book service.
func NewPhonebookService(store storage.Store, logger *slog.Logger) *PhonebookService {
	return &PhonebookService{
		store:  store,
		logger: logger,
	}
}

// requireAuth returns an error unless the context carries an authenticated
// identity. Guest identities pass; they see the same shared entry set.
func requireAuth(ctx context.Context) error {
	if middleware.GetUserID(ctx) == "" {
		return auth.ErrMissingToken
	}
	return nil
}

// ListEntries returns all entries in German phone-book name order.
func (s *PhonebookService) ListEntries(ctx context.Context) ([]models.Entry, error) {
	if err := requireAuth(ctx); err != nil {
		return nil, err
	}
	return s.store.ListEntries(ctx)
}

// Search runs the two-tier search strategy:
//
//  1. A blank term (after trimming) returns an empty result set without
//     touching the store.
//  2. The word/prefix text index is tried first; a non-empty result is
//     returned as-is, in descending relevance order.
//  3. Only if the text tier finds nothing, the literal substring fallback
//     runs and its result is returned in phone-book name order.
//
// The tiers are mutually exclusive per request and never merged, so a
// response is in pure relevance order or pure name order, never mixed.
func (s *PhonebookService) Search(ctx context.Context, term string) ([]models.Entry, error) {
	if err := requireAuth(ctx); err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Entry{}, nil
	}

	entries, err := s.store.SearchEntriesText(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	// The text index misses mid-word substrings; recover those at the
	// cost of losing relevance ranking.
	entries, err = s.store.SearchEntriesSubstring(ctx, term)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Search fell back to substring tier", "term", term, "results", len(entries))
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

// CheckDuplicate reports whether a (name, phone) pair would collide with an
// existing entry under the case-fold equality. Empty values cannot collide.
// Advisory only: the store's uniqueness constraint at insert time remains
// the authority.
func (s *PhonebookService) CheckDuplicate(ctx context.Context, name, phone string) (bool, error) {
	if err := requireAuth(ctx); err != nil {
		return false, err
	}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return false, nil
	}

	return s.store.EntryExists(ctx, name, phone)
}

// AddEntry validates and persists a new entry. Validation is re-checked here
// even though clients validate too; the duplicate decision is left entirely
// to the store's constraint, which reports storage.ErrDuplicateEntry.
func (s *PhonebookService) AddEntry(ctx context.Context, name, phone string) (*models.Entry, error) {
	if err := requireAuth(ctx); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if err := models.ValidateEntry(name, phone); err != nil {
		return nil, err
	}

	entry := models.NewEntry(name, phone)
	if err := s.store.InsertEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Entry added", "entry_id", entry.ID, "user_id", middleware.GetUserID(ctx))
	return entry, nil
}

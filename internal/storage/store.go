// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/telefonbuch/internal/models"
)

var (
	// ErrDuplicateEntry is returned by InsertEntry when a (name, phone)
	// pair already exists under the locale-neutral case fold. It is raised
	// by the store's uniqueness constraint, so it is authoritative even
	// when an advisory duplicate check raced and passed.
	ErrDuplicateEntry = errors.New("entry with this name and phone already exists")

	// ErrDuplicateUsername is returned by CreateUser when the username is
	// already taken (case-sensitive as stored).
	ErrDuplicateUsername = errors.New("username already taken")
)

// Store defines the interface for phone book storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// ListEntries returns all entries in German phone-book name order.
	ListEntries(ctx context.Context) ([]models.Entry, error)

	// SearchEntriesText returns entries whose name or phone matches term
	// via the word/prefix text index, ordered by descending relevance.
	// It misses mid-word substrings; use SearchEntriesSubstring for those.
	SearchEntriesText(ctx context.Context, term string) ([]models.Entry, error)

	// SearchEntriesSubstring returns entries whose name or phone contains
	// term as a case-insensitive literal substring, in phone-book name
	// order. Characters special to the matching engine are escaped.
	SearchEntriesSubstring(ctx context.Context, term string) ([]models.Entry, error)

	// InsertEntry persists a new entry. The entry ID is generated if
	// unset. Returns ErrDuplicateEntry on a uniqueness violation.
	InsertEntry(ctx context.Context, entry *models.Entry) error

	// EntryExists reports whether a (name, phone) pair already exists
	// under the same case-fold equality the uniqueness constraint uses.
	// Advisory only; InsertEntry remains the authority.
	EntryExists(ctx context.Context, name, phone string) (bool, error)

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)

	// CreateUser persists a new user account.
	// Returns ErrDuplicateUsername if the handle is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by their exact username.
	// Returns (nil, nil) if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by their ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}

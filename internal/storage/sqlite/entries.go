package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/telefonbuch/internal/collation"
	"github.com/mmynk/telefonbuch/internal/models"
	"github.com/mmynk/telefonbuch/internal/storage"
)

// likeEscaper makes a term literal inside a LIKE pattern. The backslash is
// declared as the escape character in the queries below.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const entryColumns = "id, name, phone, created_at"

// sortedOrder lists newest-last among identical names so repeated sorts are
// stable and deterministic.
const sortedOrder = "ORDER BY name_sort, created_at, id"

// InsertEntry persists a new entry. The uniqueness constraint over the
// folded (name, phone) pair is enforced by the database inside the same
// transaction that updates the text index, so concurrent inserts of
// colliding pairs resolve with exactly one winner.
func (s *SQLiteStore) InsertEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO entries (id, name, phone, name_fold, phone_fold, name_sort, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.ID,
		entry.Name,
		entry.Phone,
		collation.Fold(entry.Name),
		collation.Fold(entry.Phone),
		s.order.Key(entry.Name),
		entry.CreatedAt,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return storage.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO entries_fts (entry_id, name, phone) VALUES (?, ?, ?)",
		entry.ID, entry.Name, entry.Phone,
	)
	if err != nil {
		return fmt.Errorf("failed to index entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isConstraintViolation(err) {
			return storage.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListEntries returns all entries in German phone-book name order.
func (s *SQLiteStore) ListEntries(ctx context.Context) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries "+sortedOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return scanEntries(rows)
}

// SearchEntriesText queries the FTS5 word index with a prefix query per
// whitespace-separated token and returns matches best-first (FTS5 rank is
// ascending bm25). Mid-word substrings are not found here.
func (s *SQLiteStore) SearchEntriesText(ctx context.Context, term string) ([]models.Entry, error) {
	match := buildMatchQuery(term)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.phone, e.created_at
		FROM entries_fts
		JOIN entries e ON e.id = entries_fts.entry_id
		WHERE entries_fts MATCH ?
		ORDER BY entries_fts.rank`,
		match,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return scanEntries(rows)
}

// SearchEntriesSubstring matches term as a literal substring anywhere in the
// name or phone, ignoring case and accents, and returns matches in
// phone-book name order. LIKE metacharacters in the term are escaped so they
// match literally.
func (s *SQLiteStore) SearchEntriesSubstring(ctx context.Context, term string) ([]models.Entry, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	pattern := "%" + likeEscaper.Replace(collation.Fold(term)) + "%"
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+` FROM entries
		WHERE name_fold LIKE ? ESCAPE '\' OR phone_fold LIKE ? ESCAPE '\' `+sortedOrder,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return scanEntries(rows)
}

// EntryExists checks the same folded columns the uniqueness constraint
// indexes, so its answer agrees with InsertEntry up to races.
func (s *SQLiteStore) EntryExists(ctx context.Context, name, phone string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM entries WHERE name_fold = ? AND phone_fold = ? LIMIT 1",
		collation.Fold(name), collation.Fold(phone),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check entry existence: %w", err)
	}
	return true, nil
}

// CountEntries returns the number of stored entries.
func (s *SQLiteStore) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// buildMatchQuery turns a raw search term into an FTS5 prefix query:
// each token is quoted (doubling embedded quotes) and suffixed with *.
func buildMatchQuery(term string) string {
	tokens := strings.Fields(term)
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ReplaceAll(tok, `"`, `""`)
		if tok == "" {
			continue
		}
		parts = append(parts, `"`+tok+`"*`)
	}
	return strings.Join(parts, " ")
}

func scanEntries(rows *sql.Rows) ([]models.Entry, error) {
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

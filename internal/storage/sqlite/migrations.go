package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// The entries table carries three derived indexes:
//   - idx_entries_name_phone_fold: UNIQUE over the locale-neutral case folds
//     of (name, phone). This is the authoritative duplicate check; advisory
//     pre-flight checks query the same columns.
//   - idx_entries_name_sort: over the German phone-book collation key of the
//     name, so sorted listing is an index walk.
//   - entries_fts: FTS5 word index over name and phone for the relevance
//     search tier. remove_diacritics keeps it consistent with the fold.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username);

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    name_fold TEXT NOT NULL,
    phone_fold TEXT NOT NULL,
    name_sort BLOB NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_name_phone_fold ON entries(name_fold, phone_fold);
CREATE INDEX IF NOT EXISTS idx_entries_name_sort ON entries(name_sort);

CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
    entry_id UNINDEXED,
    name,
    phone,
    tokenize='unicode61 remove_diacritics 2'
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

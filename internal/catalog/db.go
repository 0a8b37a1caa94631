// Package catalog maintains a SQLite index of all persisted samples and
// derives dataset reports from it. The filesystem stays the source of
// truth; the catalog can always be rebuilt from the metadata artifacts.
package catalog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// New opens (or creates) the catalog database.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	return &DB{db}, nil
}

// Migrate creates the catalog schema if it doesn't exist yet.
func (db *DB) Migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS samples (
    stem        TEXT PRIMARY KEY,
    run_id      TEXT NOT NULL DEFAULT '',
    class_id    TEXT NOT NULL,
    captured_at TEXT NOT NULL,
    width       INTEGER NOT NULL,
    height      INTEGER NOT NULL,
    fps         REAL NOT NULL,
    attributes  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_class ON samples(class_id);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

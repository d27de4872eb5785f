package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps foreground reads from blocking behind a background scan's
	// write transaction; busy_timeout covers the brief commit window.
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. It is idempotent and safe to call on
// every startup, including against a database created by an older version:
// columns added since then are backfilled via ensureColumn.
func (db *DB) RunMigrations() error {
	migration := `
-- Scanned project catalog, one row per unique full_number
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    full_number TEXT NOT NULL UNIQUE,
    short_number TEXT NOT NULL,
    year TEXT NOT NULL,
    name TEXT NOT NULL,
    path TEXT NOT NULL,
    drive_location TEXT NOT NULL,
    last_scanned TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_full_number ON projects(full_number);
CREATE INDEX IF NOT EXISTS idx_projects_drive_location ON projects(drive_location);

-- User annotations, independent lifecycle: rows survive project deletion so
-- a rediscovered project (same id) gets its annotations back
CREATE TABLE IF NOT EXISTS project_metadata (
    project_id TEXT PRIMARY KEY,
    location TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    team TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    is_favorite INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP
);

-- Single-row scan bookkeeping
CREATE TABLE IF NOT EXISTS scan_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    last_scan_time TIMESTAMP
);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Alternate-location tracking arrived after the initial schema.
	evolutions := []struct {
		table, column, decl string
	}{
		{"projects", "alternate_path", "TEXT NOT NULL DEFAULT ''"},
		{"projects", "alternate_drive_location", "TEXT NOT NULL DEFAULT ''"},
	}
	for _, ev := range evolutions {
		if err := db.ensureColumn(ev.table, ev.column, ev.decl); err != nil {
			return err
		}
	}

	return nil
}

// ensureColumn adds a column if the table doesn't have it yet.
func (db *DB) ensureColumn(table, column, decl string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("failed to inspect table %s: %w", table, err)
	}

	found := false
	for rows.Next() {
		var (
			cid      int
			name     string
			colType  string
			notNull  int
			dfltVal  any
			primaryK int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltVal, &primaryK); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan table info for %s: %w", table, err)
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating table info for %s: %w", table, err)
	}
	rows.Close()

	if found {
		return nil
	}

	query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	return nil
}

package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"project_metadata",
		"scan_state",
	}

	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		require.Equal(t, table, name)
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	db := NewTestDB(t)

	// Running migrations again against an existing schema must be a no-op.
	require.NoError(t, db.RunMigrations())
	require.NoError(t, db.RunMigrations())
}

func TestMigrations_AddsAlternateColumns(t *testing.T) {
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Simulate a database created before alternate-location tracking.
	_, err = db.Exec(`
		CREATE TABLE projects (
			id TEXT PRIMARY KEY,
			full_number TEXT NOT NULL UNIQUE,
			short_number TEXT NOT NULL,
			year TEXT NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			drive_location TEXT NOT NULL,
			last_scanned TIMESTAMP NOT NULL
		)
	`)
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations())

	var count int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('projects')
		WHERE name IN ('alternate_path', 'alternate_drive_location')
	`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ScanStateRepository implements catalog.ScanStateRepository for SQLite
type ScanStateRepository struct {
	db *DB
}

// NewScanStateRepository creates a new ScanStateRepository
func NewScanStateRepository(db *DB) *ScanStateRepository {
	return &ScanStateRepository{db: db}
}

// LastScanTime returns when the catalog was last synchronized, or nil if no
// scan has completed yet.
func (r *ScanStateRepository) LastScanTime(ctx context.Context) (*time.Time, error) {
	query := `SELECT last_scan_time FROM scan_state WHERE id = 1`

	var at sql.NullTime
	err := r.db.QueryRowContext(ctx, query).Scan(&at)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last scan time: %w", err)
	}
	if !at.Valid {
		return nil, nil
	}
	return &at.Time, nil
}

// SetLastScanTime records the completion time of a scan pass.
func (r *ScanStateRepository) SetLastScanTime(ctx context.Context, at time.Time) error {
	query := `
		INSERT INTO scan_state (id, last_scan_time)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET last_scan_time = excluded.last_scan_time
	`

	if _, err := r.db.ExecContext(ctx, query, at.UTC()); err != nil {
		return fmt.Errorf("failed to set last scan time: %w", err)
	}
	return nil
}

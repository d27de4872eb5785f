package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgould/projdex/internal/domain/catalog"
	"github.com/rgould/projdex/internal/repository"
)

// CatalogRepository implements catalog.Repository for SQLite
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const projectColumns = `
	p.id, p.full_number, p.short_number, p.year, p.name, p.path,
	p.drive_location, p.alternate_path, p.alternate_drive_location,
	p.last_scanned,
	m.project_id, m.location, m.status, m.team, m.tags, m.is_favorite
`

// GetAll returns every project in the catalog with metadata joined in,
// ordered by project number for deterministic output.
func (r *CatalogRepository) GetAll(ctx context.Context) ([]catalog.ProjectRecord, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		LEFT JOIN project_metadata m ON m.project_id = p.id
		ORDER BY p.full_number ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var records []catalog.ProjectRecord
	for rows.Next() {
		rec, err := scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return records, nil
}

// GetByID retrieves a single project with metadata joined in.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*catalog.ProjectRecord, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		LEFT JOIN project_metadata m ON m.project_id = p.id
		WHERE p.id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	rec, err := scanProjectRow(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// BatchUpsert inserts or updates records by project identity, atomically as
// one transaction so concurrent readers never observe a half-applied batch.
// An incoming record whose full_number already exists under a different
// drive location is merged into the existing row's alternate slot instead of
// overwriting the primary location.
func (r *CatalogRepository) BatchUpsert(ctx context.Context, records []catalog.ProjectRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selectStmt, err := tx.PrepareContext(ctx, `
		SELECT id, full_number, short_number, year, name, path,
		       drive_location, alternate_path, alternate_drive_location, last_scanned
		FROM projects
		WHERE full_number = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare select: %w", err)
	}
	defer selectStmt.Close()

	upsertStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projects (
			id, full_number, short_number, year, name, path,
			drive_location, alternate_path, alternate_drive_location, last_scanned
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_number = excluded.full_number,
			short_number = excluded.short_number,
			year = excluded.year,
			name = excluded.name,
			path = excluded.path,
			drive_location = excluded.drive_location,
			alternate_path = excluded.alternate_path,
			alternate_drive_location = excluded.alternate_drive_location,
			last_scanned = excluded.last_scanned
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer upsertStmt.Close()

	for _, rec := range records {
		var existing catalog.ProjectRecord
		err := selectStmt.QueryRowContext(ctx, rec.FullNumber).Scan(
			&existing.ID,
			&existing.FullNumber,
			&existing.ShortNumber,
			&existing.Year,
			&existing.Name,
			&existing.Path,
			&existing.DriveLocation,
			&existing.AlternatePath,
			&existing.AlternateDriveLocation,
			&existing.LastScanned,
		)

		final := rec
		switch err {
		case nil:
			final = catalog.Merge(existing, rec)
		case sql.ErrNoRows:
			// first sighting, insert as-is
		default:
			return fmt.Errorf("failed to look up project %s: %w", rec.FullNumber, err)
		}

		_, err = upsertStmt.ExecContext(ctx,
			final.ID,
			final.FullNumber,
			final.ShortNumber,
			final.Year,
			final.Name,
			final.Path,
			final.DriveLocation,
			final.AlternatePath,
			final.AlternateDriveLocation,
			final.LastScanned,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert project %s: %w", final.FullNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch upsert: %w", err)
	}
	return nil
}

// Delete removes the given project ids in one transaction. Metadata rows are
// left in place so annotations survive a delete-then-rediscover cycle.
func (r *CatalogRepository) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf("DELETE FROM projects WHERE id IN (%s)", strings.Join(placeholders, ","))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete projects: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// ClearAlternates empties the alternate slot of the given project ids,
// leaving the primary fields untouched.
func (r *CatalogRepository) ClearAlternates(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(
		"UPDATE projects SET alternate_path = '', alternate_drive_location = '' WHERE id IN (%s)",
		strings.Join(placeholders, ","),
	)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear alternates: %w", err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProjectRow(row rowScanner) (*catalog.ProjectRecord, error) {
	var (
		rec        catalog.ProjectRecord
		metaID     sql.NullString
		metaLoc    sql.NullString
		metaStatus sql.NullString
		metaTeam   sql.NullString
		metaTags   sql.NullString
		metaFav    sql.NullBool
	)

	err := row.Scan(
		&rec.ID,
		&rec.FullNumber,
		&rec.ShortNumber,
		&rec.Year,
		&rec.Name,
		&rec.Path,
		&rec.DriveLocation,
		&rec.AlternatePath,
		&rec.AlternateDriveLocation,
		&rec.LastScanned,
		&metaID,
		&metaLoc,
		&metaStatus,
		&metaTeam,
		&metaTags,
		&metaFav,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project row: %w", err)
	}

	if metaID.Valid {
		meta := &catalog.ProjectMetadata{
			ProjectID:  metaID.String,
			Location:   metaLoc.String,
			Status:     metaStatus.String,
			Team:       metaTeam.String,
			IsFavorite: metaFav.Bool,
		}
		if metaTags.Valid && metaTags.String != "" {
			if err := json.Unmarshal([]byte(metaTags.String), &meta.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode tags for %s: %w", rec.ID, err)
			}
		}
		rec.Metadata = meta
	}

	return &rec, nil
}

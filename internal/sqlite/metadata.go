package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rgould/projdex/internal/domain/catalog"
	"github.com/rgould/projdex/internal/repository"
)

// MetadataRepository implements catalog.MetadataRepository for SQLite
type MetadataRepository struct {
	db *DB
}

// NewMetadataRepository creates a new MetadataRepository
func NewMetadataRepository(db *DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

// Get retrieves the annotations for a project
func (r *MetadataRepository) Get(ctx context.Context, projectID string) (*catalog.ProjectMetadata, error) {
	query := `
		SELECT project_id, location, status, team, tags, is_favorite
		FROM project_metadata
		WHERE project_id = ?
	`

	var (
		meta catalog.ProjectMetadata
		tags string
	)
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(
		&meta.ProjectID,
		&meta.Location,
		&meta.Status,
		&meta.Team,
		&tags,
		&meta.IsFavorite,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &meta.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}

	return &meta, nil
}

// Upsert creates or replaces the annotations for a project
func (r *MetadataRepository) Upsert(ctx context.Context, meta *catalog.ProjectMetadata) error {
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO project_metadata (project_id, location, status, team, tags, is_favorite, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			location = excluded.location,
			status = excluded.status,
			team = excluded.team,
			tags = excluded.tags,
			is_favorite = excluded.is_favorite,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		meta.ProjectID,
		meta.Location,
		meta.Status,
		meta.Team,
		string(encoded),
		meta.IsFavorite,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metadata: %w", err)
	}

	return nil
}

package catalog

import (
	"context"
	"time"
)

// Repository provides persistence for the scanned catalog.
type Repository interface {
	GetAll(ctx context.Context) ([]ProjectRecord, error)
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)
	BatchUpsert(ctx context.Context, records []ProjectRecord) error
	Delete(ctx context.Context, ids []string) error
	ClearAlternates(ctx context.Context, ids []string) error
}

// MetadataRepository provides persistence for user annotations.
type MetadataRepository interface {
	Get(ctx context.Context, projectID string) (*ProjectMetadata, error)
	Upsert(ctx context.Context, meta *ProjectMetadata) error
}

// ScanStateRepository tracks the timestamp of the last successful scan.
type ScanStateRepository interface {
	LastScanTime(ctx context.Context) (*time.Time, error)
	SetLastScanTime(ctx context.Context, at time.Time) error
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rgould/projdex/internal/repository"
)

// Service handles catalog operations: synchronizing scan results into the
// store and exposing catalog reads and metadata edits to the frontends.
type Service struct {
	repo   Repository
	meta   MetadataRepository
	state  ScanStateRepository
	logger *slog.Logger
}

// NewService creates a new catalog service.
func NewService(repo Repository, meta MetadataRepository, state ScanStateRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, meta: meta, state: state, logger: logger}
}

// SyncSummary reports the outcome of one root synchronization.
type SyncSummary struct {
	DriveLocation DriveLocation `json:"drive_location"`
	Upserted      int           `json:"upserted"`
	Deleted       int           `json:"deleted"`
}

// SyncRoot reconciles the store with a fresh full scan of one root: scanned
// records are upserted, records whose primary location is this root but were
// not observed are deleted, and records whose alternate location is this root
// but were not observed have the alternate cleared. The scanned list must
// come from a complete scan of the root; a partial list would delete live
// projects.
func (s *Service) SyncRoot(ctx context.Context, loc DriveLocation, scanned []ProjectRecord) (SyncSummary, error) {
	summary := SyncSummary{DriveLocation: loc}

	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("loading catalog for sync: %w", err)
	}

	seen := make(map[string]bool, len(scanned))
	for _, rec := range scanned {
		seen[rec.ID] = true
	}

	var missing, staleAlternates []string
	for _, rec := range existing {
		if seen[rec.ID] {
			continue
		}
		if rec.DriveLocation == loc {
			missing = append(missing, rec.ID)
		}
		if rec.AlternateDriveLocation == loc {
			staleAlternates = append(staleAlternates, rec.ID)
		}
	}

	if err := s.repo.BatchUpsert(ctx, scanned); err != nil {
		return summary, fmt.Errorf("upserting scan results: %w", err)
	}
	summary.Upserted = len(scanned)

	if len(missing) > 0 {
		if err := s.repo.Delete(ctx, missing); err != nil {
			return summary, fmt.Errorf("deleting vanished projects: %w", err)
		}
		summary.Deleted = len(missing)
	}

	if len(staleAlternates) > 0 {
		if err := s.repo.ClearAlternates(ctx, staleAlternates); err != nil {
			return summary, fmt.Errorf("clearing stale alternates: %w", err)
		}
	}

	s.logger.Info("catalog sync complete",
		"drive_location", loc,
		"upserted", summary.Upserted,
		"deleted", summary.Deleted,
	)
	return summary, nil
}

// GetAll returns the full catalog with metadata joined in.
func (s *Service) GetAll(ctx context.Context) ([]ProjectRecord, error) {
	return s.repo.GetAll(ctx)
}

// Get fetches a single project by id.
func (s *Service) Get(ctx context.Context, id string) (*ProjectRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return rec, nil
}

// Metadata fetches user annotations for a project. A project with no
// annotations yields (nil, nil), not an error.
func (s *Service) Metadata(ctx context.Context, projectID string) (*ProjectMetadata, error) {
	meta, err := s.meta.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting metadata: %w", err)
	}
	return meta, nil
}

// SetMetadata creates or replaces the annotations for a project. The project
// itself need not currently exist in the catalog: annotations are keyed by
// the stable project id and survive a delete-then-rediscover cycle.
func (s *Service) SetMetadata(ctx context.Context, meta *ProjectMetadata) error {
	if meta == nil || strings.TrimSpace(meta.ProjectID) == "" {
		return ErrInvalidInput
	}
	if err := s.meta.Upsert(ctx, meta); err != nil {
		return fmt.Errorf("upserting metadata: %w", err)
	}
	return nil
}

// LastScanTime returns when the catalog was last synchronized, or nil if it
// never has been.
func (s *Service) LastScanTime(ctx context.Context) (*time.Time, error) {
	return s.state.LastScanTime(ctx)
}

// MarkScanned records the completion time of a successful scan pass.
func (s *Service) MarkScanned(ctx context.Context, at time.Time) error {
	return s.state.SetLastScanTime(ctx, at)
}

// Package scansync coordinates a full scan pass: walk every enabled root,
// reconcile each into the store, and stamp the scan time. It is the glue
// between the pure scanner and the catalog service; scheduling policy lives
// with the callers.
package scansync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rgould/projdex/internal/config"
	"github.com/rgould/projdex/internal/domain/catalog"
	"github.com/rgould/projdex/internal/scanner"
)

// Runner runs scan-and-sync passes over the configured roots.
type Runner struct {
	scanner *scanner.Scanner
	catalog *catalog.Service
	roots   []config.RootConfig
	logger  *slog.Logger
}

// NewRunner creates a Runner over the given roots.
func NewRunner(sc *scanner.Scanner, svc *catalog.Service, roots []config.RootConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{scanner: sc, catalog: svc, roots: roots, logger: logger}
}

// SyncAll scans every enabled root and reconciles the store with each. A
// root that fails to scan (unreachable, unmounted) is reported and skipped
// without touching its records: deleting a root's catalog because the drive
// was offline would be destructive. The scan time is stamped only if at
// least one root synchronized.
func (r *Runner) SyncAll(ctx context.Context) ([]catalog.SyncSummary, error) {
	var (
		summaries []catalog.SyncSummary
		errs      []error
	)

	for _, root := range r.roots {
		if !root.Enabled {
			continue
		}
		summary, err := r.SyncRoot(ctx, root)
		if err != nil {
			if ctx.Err() != nil {
				return summaries, err
			}
			r.logger.Error("root sync failed", "path", root.Path, "drive_location", root.Location, "error", err)
			errs = append(errs, fmt.Errorf("root %s: %w", root.Path, err))
			continue
		}
		summaries = append(summaries, summary)
	}

	if len(summaries) > 0 {
		if err := r.catalog.MarkScanned(ctx, time.Now().UTC()); err != nil {
			errs = append(errs, fmt.Errorf("recording scan time: %w", err))
		}
	}

	return summaries, errors.Join(errs...)
}

// SyncRoot scans a single root and reconciles the store with the result.
func (r *Runner) SyncRoot(ctx context.Context, root config.RootConfig) (catalog.SyncSummary, error) {
	loc := catalog.DriveLocation(root.Location)

	records, err := r.scanner.ScanRoot(ctx, root.Path, loc)
	if err != nil {
		return catalog.SyncSummary{DriveLocation: loc}, err
	}

	return r.catalog.SyncRoot(ctx, loc, records)
}

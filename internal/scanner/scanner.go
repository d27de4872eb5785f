// Package scanner discovers project folders under configured drive roots.
// Scanning is a pure function of filesystem state: it emits records and
// never touches the store.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rgould/projdex/internal/domain/catalog"
)

// Scanner walks drive roots looking for project folders.
type Scanner struct {
	logger *slog.Logger
}

// New creates a new Scanner.
func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{logger: logger}
}

// ScanRoot enumerates the first-level year directories under a root and
// collects project records from each. An unreadable root is a scan-level
// failure so callers can tell "no projects" from "root unreachable"; an
// unreadable year directory is logged and skipped. Cancellation is honored
// at directory boundaries.
func (s *Scanner) ScanRoot(ctx context.Context, rootPath string, loc catalog.DriveLocation) ([]catalog.ProjectRecord, error) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, fmt.Errorf("reading root %s: %w", rootPath, err)
	}

	var records []catalog.ProjectRecord
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}

		year, ok := parseYearDirName(entry.Name())
		if !ok {
			continue
		}

		yearPath := filepath.Join(rootPath, entry.Name())
		recs, err := s.scanYearDir(ctx, yearPath, year, loc)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			s.logger.Warn("skipping unreadable year directory", "path", yearPath, "error", err)
			continue
		}
		records = append(records, recs...)
	}

	return records, nil
}

// ScanYearDirectory scans a single year directory, for targeted rescans. The
// year is taken from the directory's own name; an unrecognizable name is a
// caller error.
func (s *Scanner) ScanYearDirectory(ctx context.Context, path string, loc catalog.DriveLocation) ([]catalog.ProjectRecord, error) {
	year, ok := parseYearDirName(filepath.Base(path))
	if !ok {
		return nil, fmt.Errorf("%s is not a year directory", path)
	}
	return s.scanYearDir(ctx, path, year, loc)
}

func (s *Scanner) scanYearDir(ctx context.Context, path, year string, loc catalog.DriveLocation) ([]catalog.ProjectRecord, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading year directory %s: %w", path, err)
	}

	var records []catalog.ProjectRecord
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Entries that vanish mid-enumeration or can't be stat'd are
		// skipped, never fatal.
		info, err := entry.Info()
		if err != nil {
			s.logger.Debug("skipping unreadable entry", "path", filepath.Join(path, entry.Name()), "error", err)
			continue
		}
		if !info.IsDir() {
			continue
		}

		rec := TryParseProjectFolder(entry.Name(), filepath.Join(path, entry.Name()), year, loc)
		if rec == nil {
			continue
		}
		records = append(records, *rec)
	}

	return records, nil
}

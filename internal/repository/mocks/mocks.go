package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rgould/projdex/internal/domain/catalog"
)

// CatalogRepository is a mock for catalog.Repository.
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) GetAll(ctx context.Context) ([]catalog.ProjectRecord, error) {
	args := m.Called(ctx)
	if recs, ok := args.Get(0).([]catalog.ProjectRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) GetByID(ctx context.Context, id string) (*catalog.ProjectRecord, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*catalog.ProjectRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) BatchUpsert(ctx context.Context, records []catalog.ProjectRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *CatalogRepository) Delete(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *CatalogRepository) ClearAlternates(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MetadataRepository is a mock for catalog.MetadataRepository.
type MetadataRepository struct {
	mock.Mock
}

func (m *MetadataRepository) Get(ctx context.Context, projectID string) (*catalog.ProjectMetadata, error) {
	args := m.Called(ctx, projectID)
	if meta, ok := args.Get(0).(*catalog.ProjectMetadata); ok {
		return meta, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MetadataRepository) Upsert(ctx context.Context, meta *catalog.ProjectMetadata) error {
	args := m.Called(ctx, meta)
	return args.Error(0)
}

// ScanStateRepository is a mock for catalog.ScanStateRepository.
type ScanStateRepository struct {
	mock.Mock
}

func (m *ScanStateRepository) LastScanTime(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if at, ok := args.Get(0).(*time.Time); ok {
		return at, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScanStateRepository) SetLastScanTime(ctx context.Context, at time.Time) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}

package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgould/projdex/internal/config"
	"github.com/rgould/projdex/internal/domain/catalog"
	"github.com/rgould/projdex/internal/scanner"
	"github.com/rgould/projdex/internal/scansync"
	"github.com/rgould/projdex/internal/search"
	"github.com/rgould/projdex/internal/sqlite"
)

// newTestHandler wires a handler over an in-memory store and one temp drive
// root containing two project folders.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	svc := catalog.NewService(
		sqlite.NewCatalogRepository(db),
		sqlite.NewMetadataRepository(db),
		sqlite.NewScanStateRepository(db),
		nil,
	)

	root := t.TempDir()
	for _, folder := range []string{"2024638.001 Palm Beach Club", "2024639.001 Miami Hospital"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "_24", folder), 0o755))
	}

	runner := scansync.NewRunner(scanner.New(nil), svc, []config.RootConfig{
		{Path: root, Location: "A", Enabled: true},
	}, nil)

	return NewHandler(Services{
		Catalog: svc,
		Engine:  search.NewEngine(),
		Sync:    runner,
	})
}

func TestTools_ScanThenSearch(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	_, scanRes, err := h.ScanProjects(ctx, nil, ScanProjectsParams{})
	require.NoError(t, err)
	require.Len(t, scanRes.Summaries, 1)
	require.Equal(t, 2, scanRes.Summaries[0].Upserted)

	_, searchRes, err := h.SearchProjects(ctx, nil, SearchProjectsParams{Query: "palm"})
	require.NoError(t, err)
	require.Len(t, searchRes.Results, 1)
	require.Equal(t, "2024638.001", searchRes.Results[0].Project.FullNumber)
}

func TestTools_ListAndGet(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	_, _, err := h.ScanProjects(ctx, nil, ScanProjectsParams{})
	require.NoError(t, err)

	_, listRes, err := h.ListProjects(ctx, nil, ListProjectsParams{})
	require.NoError(t, err)
	require.Len(t, listRes.Projects, 2)

	_, rec, err := h.GetProject(ctx, nil, GetProjectParams{ID: catalog.ProjectID("2024639.001")})
	require.NoError(t, err)
	require.Equal(t, "Miami Hospital", rec.Name)

	_, _, err = h.GetProject(ctx, nil, GetProjectParams{ID: "unknown"})
	require.ErrorIs(t, err, catalog.ErrProjectNotFound)
}

func TestTools_SetMetadataAndStatus(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	_, status, err := h.GetCatalogStatus(ctx, nil, GetCatalogStatusParams{})
	require.NoError(t, err)
	require.Zero(t, status.ProjectCount)
	require.Nil(t, status.LastScanTime)

	_, _, err = h.ScanProjects(ctx, nil, ScanProjectsParams{})
	require.NoError(t, err)

	id := catalog.ProjectID("2024638.001")
	_, meta, err := h.SetProjectMetadata(ctx, nil, SetProjectMetadataParams{
		ProjectID:  id,
		Location:   "Palm Beach",
		Tags:       []string{"medical"},
		IsFavorite: true,
	})
	require.NoError(t, err)
	require.Equal(t, id, meta.ProjectID)

	// Favorites filter now matches through the joined metadata.
	_, searchRes, err := h.SearchProjects(ctx, nil, SearchProjectsParams{Query: "fav"})
	require.NoError(t, err)
	require.Len(t, searchRes.Results, 1)
	require.Equal(t, "2024638.001", searchRes.Results[0].Project.FullNumber)

	_, status, err = h.GetCatalogStatus(ctx, nil, GetCatalogStatusParams{})
	require.NoError(t, err)
	require.Equal(t, 2, status.ProjectCount)
	require.NotNil(t, status.LastScanTime)

	_, _, err = h.SetProjectMetadata(ctx, nil, SetProjectMetadataParams{})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)
}

func TestTools_SearchHonorsMaxResults(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	_, _, err := h.ScanProjects(ctx, nil, ScanProjectsParams{})
	require.NoError(t, err)

	_, searchRes, err := h.SearchProjects(ctx, nil, SearchProjectsParams{Query: "", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, searchRes.Results, 1)
}

func TestTools_SearchUsesConfiguredCap(t *testing.T) {
	h := newTestHandler(t)
	h.services.MaxResults = 1
	ctx := context.Background()

	_, _, err := h.ScanProjects(ctx, nil, ScanProjectsParams{})
	require.NoError(t, err)

	// The configured cap applies when the call doesn't name one.
	_, searchRes, err := h.SearchProjects(ctx, nil, SearchProjectsParams{Query: ""})
	require.NoError(t, err)
	require.Len(t, searchRes.Results, 1)

	// An explicit per-call cap still wins.
	_, searchRes, err = h.SearchProjects(ctx, nil, SearchProjectsParams{Query: "", MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, searchRes.Results, 2)
}

package mcp

import (
	"context"
	"errors"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rgould/projdex/internal/domain/catalog"
	"github.com/rgould/projdex/internal/search"
)

// Handler implements the MCP tools over the domain services. It is separate
// from the transport so tests can call tool methods directly.
type Handler struct {
	services Services
}

// NewHandler creates a new tool handler.
func NewHandler(services Services) *Handler {
	return &Handler{services: services}
}

func registerTools(server *sdkmcp.Server, services Services) {
	h := NewHandler(services)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_projects",
		Description: "Search the project catalog with fuzzy matching and prefix filters (loc:, status:, year:, tag:, team:, fav)",
	}, h.SearchProjects)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List every project in the catalog with metadata",
	}, h.ListProjects)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a single project by id",
	}, h.GetProject)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "scan_projects",
		Description: "Rescan every enabled drive root and reconcile the catalog",
	}, h.ScanProjects)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_project_metadata",
		Description: "Create or replace the user annotations (location, status, team, tags, favorite) for a project",
	}, h.SetProjectMetadata)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_catalog_status",
		Description: "Report catalog size and when the last scan completed",
	}, h.GetCatalogStatus)
}

// SearchProjectsParams defines search inputs.
type SearchProjectsParams struct {
	Query      string `json:"query" jsonschema:"Raw query string. Split on ';' into free text and prefix filters."`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Result cap (default 50)."`
}

// SearchProjectsResult carries ranked matches.
type SearchProjectsResult struct {
	Results []search.SearchResult `json:"results"`
}

// SearchProjects parses the query, loads the catalog snapshot and ranks it.
func (h *Handler) SearchProjects(ctx context.Context, req *sdkmcp.CallToolRequest, params SearchProjectsParams) (*sdkmcp.CallToolResult, SearchProjectsResult, error) {
	records, err := h.services.Catalog.GetAll(ctx)
	if err != nil {
		return nil, SearchProjectsResult{}, err
	}

	filter := search.ParseQuery(params.Query)
	switch {
	case params.MaxResults > 0:
		filter.MaxResults = params.MaxResults
	case h.services.MaxResults > 0:
		filter.MaxResults = h.services.MaxResults
	}

	results, err := h.services.Engine.Search(ctx, records, filter)
	if err != nil {
		return nil, SearchProjectsResult{}, err
	}
	return nil, SearchProjectsResult{Results: results}, nil
}

// ListProjectsParams defines list inputs (none).
type ListProjectsParams struct{}

// ListProjectsResult carries the full catalog.
type ListProjectsResult struct {
	Projects []catalog.ProjectRecord `json:"projects"`
}

// ListProjects returns the full catalog with metadata joined in.
func (h *Handler) ListProjects(ctx context.Context, req *sdkmcp.CallToolRequest, params ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
	records, err := h.services.Catalog.GetAll(ctx)
	if err != nil {
		return nil, ListProjectsResult{}, err
	}
	return nil, ListProjectsResult{Projects: records}, nil
}

// GetProjectParams defines get inputs.
type GetProjectParams struct {
	ID string `json:"id" jsonschema:"Project id."`
}

// GetProject fetches a single project.
func (h *Handler) GetProject(ctx context.Context, req *sdkmcp.CallToolRequest, params GetProjectParams) (*sdkmcp.CallToolResult, *catalog.ProjectRecord, error) {
	rec, err := h.services.Catalog.Get(ctx, params.ID)
	if err != nil {
		return nil, nil, err
	}
	return nil, rec, nil
}

// ScanProjectsParams defines scan inputs (none).
type ScanProjectsParams struct{}

// ScanProjectsResult reports per-root sync outcomes.
type ScanProjectsResult struct {
	Summaries []catalog.SyncSummary `json:"summaries"`
}

// ScanProjects rescans every enabled root and reconciles the catalog.
func (h *Handler) ScanProjects(ctx context.Context, req *sdkmcp.CallToolRequest, params ScanProjectsParams) (*sdkmcp.CallToolResult, ScanProjectsResult, error) {
	if h.services.Sync == nil {
		return nil, ScanProjectsResult{}, errors.New("scanning is not configured (no roots)")
	}
	summaries, err := h.services.Sync.SyncAll(ctx)
	if err != nil {
		return nil, ScanProjectsResult{}, err
	}
	return nil, ScanProjectsResult{Summaries: summaries}, nil
}

// SetProjectMetadataParams defines metadata inputs. Omitted fields clear;
// this tool replaces the whole annotation set for the project.
type SetProjectMetadataParams struct {
	ProjectID  string   `json:"project_id" jsonschema:"Project id the annotations attach to."`
	Location   string   `json:"location,omitempty"`
	Status     string   `json:"status,omitempty"`
	Team       string   `json:"team,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsFavorite bool     `json:"is_favorite,omitempty"`
}

// SetProjectMetadata creates or replaces the annotations for a project.
func (h *Handler) SetProjectMetadata(ctx context.Context, req *sdkmcp.CallToolRequest, params SetProjectMetadataParams) (*sdkmcp.CallToolResult, *catalog.ProjectMetadata, error) {
	meta := &catalog.ProjectMetadata{
		ProjectID:  params.ProjectID,
		Location:   params.Location,
		Status:     params.Status,
		Team:       params.Team,
		Tags:       params.Tags,
		IsFavorite: params.IsFavorite,
	}
	if err := h.services.Catalog.SetMetadata(ctx, meta); err != nil {
		return nil, nil, err
	}
	return nil, meta, nil
}

// GetCatalogStatusParams defines status inputs (none).
type GetCatalogStatusParams struct{}

// CatalogStatus reports catalog size and scan freshness.
type CatalogStatus struct {
	ProjectCount int        `json:"project_count"`
	LastScanTime *time.Time `json:"last_scan_time,omitempty"`
}

// GetCatalogStatus reports catalog size and when the last scan completed.
func (h *Handler) GetCatalogStatus(ctx context.Context, req *sdkmcp.CallToolRequest, params GetCatalogStatusParams) (*sdkmcp.CallToolResult, CatalogStatus, error) {
	records, err := h.services.Catalog.GetAll(ctx)
	if err != nil {
		return nil, CatalogStatus{}, err
	}
	lastScan, err := h.services.Catalog.LastScanTime(ctx)
	if err != nil {
		return nil, CatalogStatus{}, err
	}
	return nil, CatalogStatus{ProjectCount: len(records), LastScanTime: lastScan}, nil
}

// Package mcp exposes the catalog engine to MCP clients over stdio. It is a
// thin frontend: parsing, scanning, storage and ranking all live below it.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rgould/projdex/internal/domain/catalog"
	"github.com/rgould/projdex/internal/scansync"
	"github.com/rgould/projdex/internal/search"
)

const serverInstructions = `Projdex indexes project folders discovered under configured drive roots and
answers ranked fuzzy searches over them.

Queries are split on ";". Segments of the form "loc:", "status:", "year:",
"tag:" or "team:" filter on project metadata; the bare word "fav" restricts
to favorites; everything else is fuzzy-matched against project numbers and
names. Example: "palm beach; loc:Miami; status:Active".

Run scan_projects to refresh the catalog from disk before searching if the
catalog may be stale (see get_catalog_status).`

// Services contains everything the MCP tools need. MaxResults is the
// configured default result cap; zero falls back to the engine default.
type Services struct {
	Catalog    *catalog.Service
	Engine     *search.Engine
	Sync       *scansync.Runner
	MaxResults int
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "projdex",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}

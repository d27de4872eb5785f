package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rgould/projdex/internal/config"
	"github.com/rgould/projdex/internal/domain/catalog"
	"github.com/rgould/projdex/internal/mcp"
	"github.com/rgould/projdex/internal/scanner"
	"github.com/rgould/projdex/internal/scansync"
	"github.com/rgould/projdex/internal/search"
	"github.com/rgould/projdex/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries JSON-RPC, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	catalogRepo := sqlite.NewCatalogRepository(db)
	metadataRepo := sqlite.NewMetadataRepository(db)
	scanStateRepo := sqlite.NewScanStateRepository(db)

	catalogSvc := catalog.NewService(catalogRepo, metadataRepo, scanStateRepo, logger)
	engine := search.NewEngine()
	runner := scansync.NewRunner(scanner.New(logger), catalogSvc, cfg.EnabledRoots(), logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Catalog:    catalogSvc,
			Engine:     engine,
			Sync:       runner,
			MaxResults: cfg.Search.MaxResults,
		},
		Logger: logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	if cfg.Scan.Interval > 0 && len(cfg.EnabledRoots()) > 0 {
		go runScanLoop(ctx, catalogSvc, runner, cfg.Scan.Interval, logger)
	}

	logger.Info("starting stdio transport", "roots", len(cfg.EnabledRoots()))
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

// runScanLoop is the background scan scheduler: it wakes on the configured
// interval and triggers a full sync when the last scan is older than the
// interval. The engine itself exposes no timer; this policy lives here.
func runScanLoop(ctx context.Context, svc *catalog.Service, runner *scansync.Runner, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runDue := func() {
		last, err := svc.LastScanTime(ctx)
		if err != nil {
			logger.Error("failed to read last scan time", "error", err)
			return
		}
		if last != nil && time.Since(*last) < interval {
			return
		}
		if _, err := runner.SyncAll(ctx); err != nil && ctx.Err() == nil {
			logger.Error("background scan failed", "error", err)
		}
	}

	runDue()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runDue()
		}
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

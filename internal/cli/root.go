// Package cli implements the projdex command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgould/projdex/internal/config"
	"github.com/rgould/projdex/internal/domain/catalog"
	"github.com/rgould/projdex/internal/scanner"
	"github.com/rgould/projdex/internal/scansync"
	"github.com/rgould/projdex/internal/search"
	"github.com/rgould/projdex/internal/sqlite"
)

var (
	configPath string
	dbPathFlag string
)

var rootCmd = &cobra.Command{
	Use:   "projdex",
	Short: "Projdex - project folder catalog and fuzzy search",
	Long: `Projdex discovers project folders under configured drive roots, keeps a
local catalog of them, and answers ranked fuzzy searches.

Queries are split on ";". Prefix segments (loc:, status:, year:, tag:, team:)
filter on project metadata, the bare word "fav" restricts to favorites, and
everything else is fuzzy-matched against project numbers and names:

  projdex search "palm beach; loc:Miami; status:Active"`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default $PROJDEX_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "path to catalog database (overrides config)")
}

// app bundles the wired-up engine for one command invocation.
type app struct {
	cfg     config.Config
	db      *sqlite.DB
	catalog *catalog.Service
	engine  *search.Engine
	runner  *scansync.Runner
	logger  *slog.Logger
}

func openApp() (*app, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if dbPathFlag != "" {
		cfg.DB.Path = dbPathFlag
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	svc := catalog.NewService(
		sqlite.NewCatalogRepository(db),
		sqlite.NewMetadataRepository(db),
		sqlite.NewScanStateRepository(db),
		logger,
	)

	return &app{
		cfg:     cfg,
		db:      db,
		catalog: svc,
		engine:  search.NewEngine(),
		runner:  scansync.NewRunner(scanner.New(logger), svc, cfg.EnabledRoots(), logger),
		logger:  logger,
	}, nil
}

func (a *app) close() {
	a.db.Close()
}

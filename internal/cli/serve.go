package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/chartline/internal/chart"
	"github.com/aevon-lab/chartline/internal/core/chartdef"
	corecfg "github.com/aevon-lab/chartline/internal/core/config"
	"github.com/aevon-lab/chartline/internal/core/storage/postgres"
	"github.com/aevon-lab/chartline/internal/ingestion"
	"github.com/aevon-lab/chartline/internal/migrations"
	"github.com/aevon-lab/chartline/internal/retention"
	"github.com/aevon-lab/chartline/internal/server"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the records and charts HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "chartline.yaml", "Path to configuration file")

	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	// 1. Load Configuration
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("Loaded config",
		"config_dir", cfg.ChartLoading.ConfigDir,
		"charts", len(cfg.ChartLoading.Definitions),
		"timezone", cfg.ChartLoading.Location.String(),
	)

	// 2. Open PostgreSQL and migrate before the adapter checks the schema
	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	store, err := postgres.New(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("initialize record store: %w", err)
	}
	defer store.Close()

	// 3. Services
	ingestionSvc := ingestion.NewService(store, cfg.ChartLoading.Location, cfg.Server.MaxBodySizeMB)
	chartSvc := chart.NewService(store, chartdef.NewStaticRepository(cfg.ChartLoading.Definitions), chart.Options{
		Location:      cfg.ChartLoading.Location,
		Palette:       cfg.Charts.Palette,
		DefaultRange:  cfg.Charts.DefaultRange,
		MaxRange:      cfg.Charts.MaxRange,
		DefaultHeight: cfg.Charts.DefaultHeight,
		MaxRecords:    cfg.Charts.MaxRecords,
	})

	// 4. Retention
	if cfg.Retention.Enabled {
		pruner := retention.NewPruner(store, cfg.Retention.IntervalDuration(), cfg.Retention.Days)
		go func() {
			if err := pruner.Start(ctx); err != nil {
				slog.Error("Pruner stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Retention pruner disabled by config")
	}

	// 5. HTTP server blocks until ctx is cancelled.
	srv := server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), store, cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	chartSvc.RegisterRoutes(srv.Engine)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}

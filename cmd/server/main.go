package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/OrderSheet/internal/admin"
	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/config"
	"github.com/JonMunkholm/OrderSheet/internal/core"
	"github.com/JonMunkholm/OrderSheet/internal/logging"
	"github.com/JonMunkholm/OrderSheet/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store", cfg.Store.Driver,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	cat := catalog.Default()
	if cfg.Sheet.CatalogFile != "" {
		cat, err = catalog.LoadFile(cfg.Sheet.CatalogFile)
		if err != nil {
			slog.Error("failed to load catalog", "path", cfg.Sheet.CatalogFile, "error", err)
			os.Exit(1)
		}
	}

	store, closeStore, err := admin.OpenStore(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open state store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	service := core.NewService(core.Options{
		Catalog:       cat,
		Store:         store,
		Limiter:       core.NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime),
		Title:         cfg.Sheet.Title,
		MaxBytes:      cfg.Import.MaxFileSize,
		ImportTimeout: cfg.Import.Timeout,
	})
	slog.Info("catalog ready", "items", cat.Len(), "stock_inputs", len(cat.StockInputItems()))

	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(ctx)

	go service.StartRetentionScheduler(jobCtx, core.RetentionConfig{
		RetentionDays: cfg.Retention.Days,
		CheckInterval: cfg.Retention.CheckInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for running imports so their state is saved
		if status := service.Limiter().Status(); status.Active > 0 {
			slog.Info("waiting for imports to complete", "active", status.Active)
			if err := service.Limiter().WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("imports did not complete in time", "error", err)
			} else {
				slog.Info("all imports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

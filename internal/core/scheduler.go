package core

// scheduler.go runs background maintenance.
//
// The only job drops wizard snapshots nobody has saved for RetentionDays.
// It runs once on start and then every CheckInterval until the context is
// cancelled. Failures are logged and retried on the next tick.

import (
	"context"
	"log/slog"
	"time"

	"github.com/JonMunkholm/OrderSheet/internal/state"
)

// RetentionConfig configures the snapshot purge.
type RetentionConfig struct {
	RetentionDays int           // default: 30
	CheckInterval time.Duration // default: 24h
}

func (c RetentionConfig) withDefaults() RetentionConfig {
	if c.RetentionDays <= 0 {
		c.RetentionDays = 30
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 24 * time.Hour
	}
	return c
}

// StartRetentionScheduler blocks until ctx is cancelled, purging stale
// snapshots periodically. It returns at once when the store cannot purge.
func (s *Service) StartRetentionScheduler(ctx context.Context, cfg RetentionConfig) {
	purger, ok := s.store.(state.Purger)
	if !ok {
		slog.Info("retention scheduler disabled: store cannot purge")
		return
	}
	cfg = cfg.withDefaults()

	slog.Info("retention scheduler started",
		"retention_days", cfg.RetentionDays,
		"interval", cfg.CheckInterval.String(),
	)

	s.runRetentionJob(ctx, purger, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention scheduler stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(ctx, purger, cfg)
		}
	}
}

func (s *Service) runRetentionJob(ctx context.Context, purger state.Purger, cfg RetentionConfig) {
	start := time.Now()
	cutoff := s.now().AddDate(0, 0, -cfg.RetentionDays)

	purged, err := purger.PurgeBefore(ctx, cutoff)
	if err != nil {
		slog.Error("state purge failed", "error", err)
		return
	}
	slog.Info("purged stale wizard state",
		"purged", purged,
		"cutoff", cutoff.UTC().Format(time.RFC3339),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

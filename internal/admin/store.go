package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/OrderSheet/internal/config"
	"github.com/JonMunkholm/OrderSheet/internal/state"
)

// OpenStore opens the state backend cfg selects. The returned close func
// releases its connections and is never nil.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (state.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return state.NewMemoryStore(), func() {}, nil

	case config.DriverSQLite:
		st, err := state.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("opened sqlite store", "path", cfg.SQLitePath)
		return st, func() { st.Close() }, nil

	case config.DriverPostgres:
		return openPostgres(ctx, cfg)

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.StoreConfig) (state.Store, func(), error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	st, err := state.NewPostgresStore(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return st, pool.Close, nil
}

package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/lumen/internal/db"
	"github.com/garrettladley/lumen/internal/migrations/postgres"
	"github.com/garrettladley/lumen/internal/paths"
	xredis "github.com/garrettladley/lumen/internal/redis"
	"github.com/garrettladley/lumen/internal/xslog"
)

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
)

type Config struct {
	Driver Driver `env:"DRIVER" envDefault:"sqlite"`
	// URL is a file path for sqlite (defaults to ~/.config/lumen/lumen.db)
	// and a connection URL for redis and postgres.
	URL string `env:"URL"`
}

// Open connects the configured backend, applying migrations where the
// backend has a schema.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (KV, error) {
	logger.InfoContext(ctx, "opening store", xslog.Driver(string(cfg.Driver)))

	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryKV(), nil

	case DriverSQLite, "":
		path := cfg.URL
		if path == "" {
			if _, err := paths.EnsureDir(); err != nil {
				return nil, err
			}
			p, err := paths.DB()
			if err != nil {
				return nil, err
			}
			path = p
		}
		sqlDB, err := db.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		return NewSQLiteKV(sqlDB), nil

	case DriverRedis:
		client, err := xredis.New(ctx, xredis.Config{URL: cfg.URL})
		if err != nil {
			return nil, err
		}
		return NewRedisKV(RedisConfig{Client: client}), nil

	case DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := postgres.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to apply postgres migrations: %w", err)
		}
		return NewPostgresKV(pool), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

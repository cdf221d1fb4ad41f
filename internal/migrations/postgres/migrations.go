package postgres

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/lumen/internal/migrations"
)

//go:embed sql/*.sql
var postgresFS embed.FS

// Apply runs pending postgres migrations, each in its own transaction.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	all, err := migrations.Read(postgresFS, migrations.Dir)
	if err != nil {
		return err
	}
	if err := createHistoryTable(ctx, pool); err != nil {
		return err
	}
	applied, err := appliedAt(ctx, pool)
	if err != nil {
		return err
	}

	for _, m := range migrations.Pending(all, applied) {
		err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			for _, stmt := range m.Statements {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.Exec(ctx, "INSERT INTO migrations_history (name) VALUES ($1)", m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func createHistoryTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations_history (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations history table: %w", err)
	}
	return nil
}

func appliedAt(ctx context.Context, pool *pgxpool.Pool) (map[string]time.Time, error) {
	rows, err := pool.Query(ctx, "SELECT name, applied_at FROM migrations_history")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations history: %w", err)
	}

	applied := make(map[string]time.Time)
	var (
		name string
		at   time.Time
	)
	_, err = pgx.ForEachRow(rows, []any{&name, &at}, func() error {
		applied[name] = at
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan migrations history: %w", err)
	}
	return applied, nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/lumen/internal/db"
	"github.com/garrettladley/lumen/internal/migrations"
	"github.com/garrettladley/lumen/internal/paths"
)

func migrateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending sqlite migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sqlDB, err := openSQLite(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied successfully")
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "sqlite file (defaults to ~/.config/lumen/lumen.db)")
	return cmd
}

func statusCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List sqlite migrations and when they were applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sqlDB, err := openSQLite(ctx, path)
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			statuses, err := migrations.Check(ctx, sqlDB)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, s := range statuses {
				applied := "pending"
				if s.Applied() {
					applied = s.AppliedAt.Local().Format(time.DateTime)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", s.Name, applied)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "sqlite file (defaults to ~/.config/lumen/lumen.db)")
	return cmd
}

// openSQLite opens (and thereby migrates) the sqlite store.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
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
	return db.Open(ctx, path)
}

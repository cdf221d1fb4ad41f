package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garrettladley/lumen/internal/config"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/storage"
	"github.com/garrettladley/lumen/internal/xslog"
)

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the persisted rotation state",
		Long:  "Deletes the rotation keys from the configured store. The next client replays the rotation from the anchor.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			kv, err := storage.Open(ctx, cfg.Store, xslog.NewLoggerFromEnv(os.Stderr))
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer func() { _ = kv.Close() }()

			if err := kv.Delete(ctx, rotation.Keys...); err != nil {
				return fmt.Errorf("failed to delete rotation state: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rotation state cleared from %s store\n", cfg.Store.Driver)
			return nil
		},
	}
}

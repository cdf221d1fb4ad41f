package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/lumen/internal/audio"
	"github.com/garrettladley/lumen/internal/config"
	"github.com/garrettladley/lumen/internal/messages"
	"github.com/garrettladley/lumen/internal/paths"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/session"
	"github.com/garrettladley/lumen/internal/share"
	"github.com/garrettladley/lumen/internal/storage"
	"github.com/garrettladley/lumen/internal/tui"
	"github.com/garrettladley/lumen/internal/xslog"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// the TUI owns the terminal, so logs go to a file
	if _, err := paths.EnsureDir(); err != nil {
		return err
	}
	logPath, err := paths.Log()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := xslog.NewLoggerFromEnv(logFile).With(xslog.Version(), xslog.SessionID(session.NewID()))

	kv, err := storage.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = kv.Close() }()

	engine, err := rotation.NewEngine(cfg.Rotation.Config, kv, logger)
	if err != nil {
		return fmt.Errorf("failed to create rotation engine: %w", err)
	}

	model := tui.New(tui.Deps{
		Ctx:      ctx,
		Logger:   logger,
		Config:   cfg,
		Messages: messageSource(cfg.Messages),
		Rotation: engine,
		Share:    share.NewDefaultChain(cfg.Share, os.Stderr, logger),
		Audio:    audio.NewPlayer(cfg.Audio, logger),
	})

	p := tea.NewProgram(&model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return nil
}

func messageSource(cfg config.Messages) messages.Source {
	if cfg.File != "" {
		return messages.NewFileSource(cfg.File)
	}
	return messages.NewHTTPSource(cfg.URL)
}

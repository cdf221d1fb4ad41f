package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/lumen/internal/config"
	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/messages"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/solar"
	"github.com/garrettladley/lumen/internal/storage"
	"github.com/garrettladley/lumen/internal/xslog"
)

type stateReport struct {
	Stored       bool       `json:"stored"`
	Corrupt      string     `json:"corrupt,omitempty"`
	Index        int        `json:"index"`
	Count        int        `json:"count"`
	Counter      string     `json:"counter,omitempty"`
	Message      string     `json:"message,omitempty"`
	LastChangeAt *time.Time `json:"last_change_at,omitempty"`
	NextChangeAt *time.Time `json:"next_change_at,omitempty"`
	Elapsed      string     `json:"elapsed,omitempty"`
	Phase        string     `json:"phase"`
	Top          string     `json:"top"`
	Bottom       string     `json:"bottom"`
	Sunrise      string     `json:"sunrise"`
	Sunset       string     `json:"sunset"`
}

func stateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the stored rotation state and the current gradient",
		Long:  "Reads the rotation state from the configured store without modifying it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			logger := xslog.NewLoggerFromEnv(os.Stderr)

			kv, err := storage.Open(ctx, cfg.Store, logger)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer func() { _ = kv.Close() }()

			engine, err := rotation.NewEngine(cfg.Rotation.Config, kv, logger)
			if err != nil {
				return fmt.Errorf("failed to create rotation engine: %w", err)
			}

			list := messages.Load(ctx, messageSource(cfg.Messages), logger)
			now := time.Now()

			report := stateReport{Count: len(list)}

			s, err := engine.Load(ctx, len(list))
			switch {
			case err == nil:
				report.Stored = true
				report.Index = s.Index
				report.Counter = messages.Counter(s.Index, len(list))
				report.Message = messages.At(list, s.Index)
				report.LastChangeAt = &s.LastChangeAt
				report.NextChangeAt = &s.NextChangeAt
				report.Elapsed = rotation.FormatElapsed(s.Elapsed(now))
			case errors.Is(err, rotation.ErrAbsent):
			case errors.Is(err, rotation.ErrCorruptState):
				report.Corrupt = err.Error()
			default:
				return fmt.Errorf("failed to load rotation state: %w", err)
			}

			sample := gradient.Compute(now, cfg.Latitude)
			report.Phase = sample.Phase.String()
			report.Top = sample.Top.CSS()
			report.Bottom = sample.Bottom.CSS()
			report.Sunrise = solar.FormatHour(sample.Times.Sunrise)
			report.Sunset = solar.FormatHour(sample.Times.Sunset)

			if asJSON {
				enc := go_json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(cmd *cobra.Command, r stateReport) {
	out := cmd.OutOrStdout()

	switch {
	case r.Corrupt != "":
		_, _ = fmt.Fprintf(out, "rotation: stored state is corrupt (%s); the next run replays from the anchor\n", r.Corrupt)
	case !r.Stored:
		_, _ = fmt.Fprintln(out, "rotation: nothing stored yet; the next run replays from the anchor")
	default:
		_, _ = fmt.Fprintf(out, "rotation: %s %q\n", r.Counter, r.Message)
		_, _ = fmt.Fprintf(out, "  last change  %s (%s ago)\n", r.LastChangeAt.Local().Format(time.RFC3339), r.Elapsed)
		_, _ = fmt.Fprintf(out, "  next change  %s\n", r.NextChangeAt.Local().Format(time.RFC3339))
	}

	_, _ = fmt.Fprintf(out, "gradient: %s, %s → %s\n", r.Phase, r.Top, r.Bottom)
	_, _ = fmt.Fprintf(out, "  sunrise %s  sunset %s\n", r.Sunrise, r.Sunset)
}

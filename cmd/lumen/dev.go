//go:build !release

package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/solar"
)

func addDevCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(gradientCmd())
}

func gradientCmd() *cobra.Command {
	var (
		date     string
		latitude float64
		step     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "gradient",
		Short: "Preview the gradient over a whole day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if date != "" {
				d, err := time.ParseInLocation(time.DateOnly, date, time.Local)
				if err != nil {
					return fmt.Errorf("failed to parse date: %w", err)
				}
				day = d
			}
			if step <= 0 {
				return fmt.Errorf("step must be positive, got %s", step)
			}

			times := solar.Compute(day, latitude)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s at %.2f°: sunrise %s, sunset %s\n\n",
				day.Format(time.DateOnly), latitude,
				solar.FormatHour(times.Sunrise), solar.FormatHour(times.Sunset))

			for offset := time.Duration(0); offset < 24*time.Hour; offset += step {
				hour := offset.Hours()
				s := gradient.At(hour, times)

				swatch := lipgloss.NewStyle().Background(s.Top).Render("    ") +
					lipgloss.NewStyle().Background(s.Bottom).Render("    ")
				_, _ = fmt.Fprintf(out, "%s %s %-9s %3.0f%%  %s → %s\n",
					solar.FormatHour(hour), swatch, s.Phase, s.Factor*100, s.Top.Hex(), s.Bottom.Hex())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to preview as YYYY-MM-DD (defaults to today)")
	cmd.Flags().Float64Var(&latitude, "lat", solar.DefaultLatitude, "latitude in degrees")
	cmd.Flags().DurationVar(&step, "step", 30*time.Minute, "interval between samples")
	return cmd
}

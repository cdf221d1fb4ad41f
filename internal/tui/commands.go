package tui

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/messages"
)

func loadMessagesCmd(ctx context.Context, src messages.Source, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		return MessagesLoadedMsg{List: messages.Load(ctx, src, logger)}
	}
}

func rotationCmd(ctx context.Context, r Rotator, count int) tea.Cmd {
	return func() tea.Msg {
		s, err := r.Tick(ctx, count)
		return RotationMsg{State: s, Err: err}
	}
}

func scheduleRotationCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RotationDueMsg{}
	})
}

func gradientCmd(now time.Time, latitude float64) tea.Cmd {
	return func() tea.Msg {
		return GradientMsg{Sample: gradient.Compute(now, latitude)}
	}
}

func scheduleGradientCmd(d time.Duration, latitude float64) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return GradientMsg{Sample: gradient.Compute(t, latitude)}
	})
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

func shareCmd(ctx context.Context, s Sharer, text string) tea.Cmd {
	return func() tea.Msg {
		strategy, err := s.Share(ctx, text)
		return ShareMsg{Text: text, Strategy: strategy, Err: err}
	}
}

func playCmd(ctx context.Context, p Player) tea.Cmd {
	return func() tea.Msg {
		p.Play(ctx)
		return nil
	}
}

func expireCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ExpiredMsg{}
	})
}

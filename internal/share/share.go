package share

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/garrettladley/lumen/internal/xslog"
)

// ErrUnshared means every strategy was unavailable or failed.
var ErrUnshared = errors.New("no share strategy succeeded")

type Strategy interface {
	Name() string
	// Available reports whether the strategy can run here at all.
	Available() bool
	Share(ctx context.Context, text string) error
}

type Config struct {
	// Command receives the share text on stdin, e.g. "wl-copy" or a
	// messaging CLI. Split on whitespace.
	Command string `env:"COMMAND"`
}

// Chain tries strategies in order until one succeeds.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewChain(logger *slog.Logger, strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies, logger: logger}
}

// NewDefaultChain is command, then system clipboard, then the terminal
// clipboard escape written to tty.
func NewDefaultChain(cfg Config, tty io.Writer, logger *slog.Logger) *Chain {
	return NewChain(logger,
		NewCommandStrategy(strings.Fields(cfg.Command)),
		NewClipboardStrategy(),
		NewOSC52Strategy(tty),
	)
}

// Share returns the name of the strategy that delivered text. Blank text is
// ignored and returns "", nil.
func (c *Chain) Share(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	for _, s := range c.strategies {
		if !s.Available() {
			c.logger.DebugContext(ctx, "share strategy unavailable", xslog.Strategy(s.Name()))
			continue
		}
		if err := s.Share(ctx, text); err != nil {
			c.logger.WarnContext(ctx, "share strategy failed",
				xslog.Strategy(s.Name()),
				xslog.Error(err),
			)
			continue
		}
		c.logger.InfoContext(ctx, "message shared", xslog.Strategy(s.Name()))
		return s.Name(), nil
	}

	return "", ErrUnshared
}

// Format is the text handed to share targets that post it somewhere.
func Format(text string) string {
	return `Bisogno del giorno: "` + text + `"`
}

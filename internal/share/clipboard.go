package share

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

var (
	_ Strategy = (*ClipboardStrategy)(nil)
	_ Strategy = (*OSC52Strategy)(nil)
)

// ClipboardStrategy writes to the system clipboard (pbcopy, xclip, wl-copy,
// or the Windows API, whichever the platform offers).
type ClipboardStrategy struct {
	write       func(string) error
	unsupported bool
}

func NewClipboardStrategy() *ClipboardStrategy {
	return &ClipboardStrategy{write: clipboard.WriteAll, unsupported: clipboard.Unsupported}
}

func (s *ClipboardStrategy) Name() string { return "clipboard" }

func (s *ClipboardStrategy) Available() bool { return !s.unsupported }

func (s *ClipboardStrategy) Share(_ context.Context, text string) error {
	if err := s.write(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// OSC52Strategy asks the terminal itself to set the clipboard. It works over
// ssh but the terminal may silently ignore it.
type OSC52Strategy struct {
	w    io.Writer
	tmux bool
}

func NewOSC52Strategy(w io.Writer) *OSC52Strategy {
	return &OSC52Strategy{w: w, tmux: os.Getenv("TMUX") != ""}
}

func (s *OSC52Strategy) Name() string { return "osc52" }

func (s *OSC52Strategy) Available() bool { return s.w != nil }

func (s *OSC52Strategy) Share(_ context.Context, text string) error {
	seq := osc52.New(text)
	if s.tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(s.w); err != nil {
		return fmt.Errorf("failed to write osc52 sequence: %w", err)
	}
	return nil
}

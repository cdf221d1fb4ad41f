package share

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var _ Strategy = (*CommandStrategy)(nil)

// CommandStrategy pipes the formatted text into an external command.
type CommandStrategy struct {
	argv     []string
	lookPath func(string) (string, error)
}

func NewCommandStrategy(argv []string) *CommandStrategy {
	return &CommandStrategy{argv: argv, lookPath: exec.LookPath}
}

func (s *CommandStrategy) Name() string { return "command" }

func (s *CommandStrategy) Available() bool {
	if len(s.argv) == 0 {
		return false
	}
	_, err := s.lookPath(s.argv[0])
	return err == nil
}

func (s *CommandStrategy) Share(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Stdin = strings.NewReader(Format(text))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("failed to run %s: %w: %s", s.argv[0], err, msg)
		}
		return fmt.Errorf("failed to run %s: %w", s.argv[0], err)
	}
	return nil
}

package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Runner runs a player to completion.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Command hands each clip to an external player, for hosts where the
// in-process device cannot be opened.
type Command struct {
	argv []string
	run  Runner
}

func NewCommand(argv []string, opts ...CommandOption) *Command {
	c := &Command{argv: argv, run: execRunner}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CommandOption func(*Command)

func WithRunner(r Runner) CommandOption {
	return func(c *Command) { c.run = r }
}

func (c *Command) Play(ctx context.Context, path string) error {
	if len(c.argv) == 0 {
		return errors.New("no player command")
	}
	args := append(c.argv[1:len(c.argv):len(c.argv)], path)
	if err := c.run(ctx, c.argv[0], args...); err != nil {
		return fmt.Errorf("%s: %w", c.argv[0], err)
	}
	return nil
}

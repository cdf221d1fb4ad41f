package audio

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (r *recorder) run(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.err
}

type fakeBackend struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeBackend) Play(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNewPlayer_Backend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		player      string
		wantCommand bool
	}{
		{name: "in-process by default"},
		{name: "blank player stays in-process", player: "   "},
		{name: "command override", player: "ffplay -nodisp -autoexit", wantCommand: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPlayer(Config{Player: tt.player}, discardLogger())
			switch b := p.backend.(type) {
			case *Speaker:
				if tt.wantCommand {
					t.Error("backend = *Speaker, want *Command")
				}
			case *Command:
				if !tt.wantCommand {
					t.Errorf("backend = *Command %v, want *Speaker", b.argv)
				}
			default:
				t.Errorf("backend = %T", b)
			}
		})
	}
}

func TestPlayer_Play(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	p := NewPlayer(Config{Dir: "stop", Files: []string{"only.mp3"}}, discardLogger(), WithBackend(backend))

	p.Play(t.Context())
	p.Play(t.Context())

	want := []string{filepath.Join("stop", "only.mp3"), filepath.Join("stop", "only.mp3")}
	if diff := cmp.Diff(want, backend.paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestPlayer_DefaultsToShippedFiles(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	p := NewPlayer(Config{Dir: "stop"}, discardLogger(),
		WithBackend(backend),
		WithRand(rand.New(rand.NewPCG(9, 9))),
	)

	for range 50 {
		p.Play(t.Context())
	}

	if len(backend.paths) != 50 {
		t.Fatalf("plays = %d, want 50", len(backend.paths))
	}
	for _, path := range backend.paths {
		if name := filepath.Base(path); !slices.Contains(DefaultFiles, name) {
			t.Fatalf("played %q, not a shipped file", name)
		}
	}
}

func TestPlayer_Muted(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	NewPlayer(Config{Files: []string{"a.mp3"}, Mute: true}, discardLogger(), WithBackend(backend)).Play(t.Context())

	if len(backend.paths) != 0 {
		t.Errorf("backend called %d times, want 0", len(backend.paths))
	}
}

func TestPlayer_FailureIsSwallowed(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{err: errors.New("no output device")}
	p := NewPlayer(Config{Files: []string{"a.mp3"}}, discardLogger(), WithBackend(backend))

	p.Play(t.Context())

	if len(backend.paths) != 1 {
		t.Errorf("plays = %d, want 1", len(backend.paths))
	}
}

func TestCommand_Play(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	c := NewCommand([]string{"ffplay", "-nodisp", "-autoexit"}, WithRunner(rec.run))

	for _, path := range []string{"a.mp3", "b.mp3"} {
		if err := c.Play(t.Context(), path); err != nil {
			t.Fatalf("Play(%s): %v", path, err)
		}
	}

	want := [][]string{
		{"ffplay", "-nodisp", "-autoexit", "a.mp3"},
		{"ffplay", "-nodisp", "-autoexit", "b.mp3"},
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ffplay", "-nodisp", "-autoexit"}, c.argv); diff != "" {
		t.Errorf("argv mutated (-want +got):\n%s", diff)
	}
}

func TestCommand_PlayError(t *testing.T) {
	t.Parallel()

	cause := errors.New("exec: ffplay: not found")
	rec := &recorder{err: cause}

	err := NewCommand([]string{"ffplay"}, WithRunner(rec.run)).Play(t.Context(), "a.mp3")
	if !errors.Is(err, cause) {
		t.Errorf("Play error = %v, want wrapping %v", err, cause)
	}

	if err := NewCommand(nil).Play(t.Context(), "a.mp3"); err == nil {
		t.Error("Play with empty argv succeeded, want error")
	}
}

func TestSpeaker_PlayRejectsUnreadableClips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.mp3")
	if err := os.WriteFile(garbage, []byte("not an mp3"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing", path: filepath.Join(dir, "missing.mp3")},
		{name: "not mp3", path: garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := NewSpeaker().Play(t.Context(), tt.path); err == nil {
				t.Error("Play succeeded, want error")
			}
		})
	}
}

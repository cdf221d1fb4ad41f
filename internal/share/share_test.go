package share

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeStrategy struct {
	name      string
	available bool
	err       error
	got       []string
}

func (f *fakeStrategy) Name() string    { return f.name }
func (f *fakeStrategy) Available() bool { return f.available }

func (f *fakeStrategy) Share(_ context.Context, text string) error {
	f.got = append(f.got, text)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestChain_Share(t *testing.T) {
	t.Parallel()

	failed := errors.New("denied")

	tests := []struct {
		name       string
		strategies []*fakeStrategy
		text       string
		want       string
		wantErr    error
		wantCalls  []int
	}{
		{
			name: "first available wins",
			strategies: []*fakeStrategy{
				{name: "command", available: true},
				{name: "clipboard", available: true},
			},
			text:      "ciao",
			want:      "command",
			wantCalls: []int{1, 0},
		},
		{
			name: "unavailable skipped",
			strategies: []*fakeStrategy{
				{name: "command"},
				{name: "clipboard", available: true},
			},
			text:      "ciao",
			want:      "clipboard",
			wantCalls: []int{0, 1},
		},
		{
			name: "failure falls through",
			strategies: []*fakeStrategy{
				{name: "command", available: true, err: failed},
				{name: "clipboard", available: true, err: failed},
				{name: "osc52", available: true},
			},
			text:      "ciao",
			want:      "osc52",
			wantCalls: []int{1, 1, 1},
		},
		{
			name: "all fail",
			strategies: []*fakeStrategy{
				{name: "command", available: true, err: failed},
				{name: "clipboard"},
			},
			text:      "ciao",
			wantErr:   ErrUnshared,
			wantCalls: []int{1, 0},
		},
		{
			name: "blank text is a no-op",
			strategies: []*fakeStrategy{
				{name: "command", available: true},
			},
			text:      "  \n",
			wantCalls: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			strategies := make([]Strategy, len(tt.strategies))
			for i, s := range tt.strategies {
				strategies[i] = s
			}

			got, err := NewChain(discardLogger(), strategies...).Share(t.Context(), tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Share error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Share = %q, want %q", got, tt.want)
			}

			calls := make([]int, len(tt.strategies))
			for i, s := range tt.strategies {
				calls[i] = len(s.got)
			}
			if diff := cmp.Diff(tt.wantCalls, calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got, want := Format("Respira"), `Bisogno del giorno: "Respira"`; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestCommandStrategy(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out := filepath.Join(t.TempDir(), "shared.txt")
	s := NewCommandStrategy([]string{"sh", "-c", "cat > " + out})

	if !s.Available() {
		t.Fatal("sh strategy unavailable")
	}
	if err := s.Share(t.Context(), "Respira"); err != nil {
		t.Fatalf("Share: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := Format("Respira"); string(got) != want {
		t.Errorf("stdin = %q, want %q", got, want)
	}
}

func TestCommandStrategy_Availability(t *testing.T) {
	t.Parallel()

	if NewCommandStrategy(nil).Available() {
		t.Error("empty command reported available")
	}

	s := NewCommandStrategy([]string{"lumen-share-helper"})
	s.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	if s.Available() {
		t.Error("missing binary reported available")
	}
}

func TestCommandStrategy_FailureIncludesStderr(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	s := NewCommandStrategy([]string{"sh", "-c", "echo nope >&2; exit 3"})
	err := s.Share(t.Context(), "x")
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("Share error = %v, want stderr in message", err)
	}
}

func TestClipboardStrategy(t *testing.T) {
	t.Parallel()

	var got string
	s := &ClipboardStrategy{write: func(text string) error { got = text; return nil }}

	if err := s.Share(t.Context(), "Respira"); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if got != "Respira" {
		t.Errorf("clipboard = %q, want raw text", got)
	}

	if (&ClipboardStrategy{unsupported: true}).Available() {
		t.Error("unsupported clipboard reported available")
	}
}

func TestOSC52Strategy(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := &OSC52Strategy{w: &buf}

	if !s.Available() {
		t.Fatal("writer-backed strategy unavailable")
	}
	if err := s.Share(t.Context(), "Respira"); err != nil {
		t.Fatalf("Share: %v", err)
	}

	encoded := base64.StdEncoding.EncodeToString([]byte("Respira"))
	if !strings.Contains(buf.String(), "]52;c;"+encoded) {
		t.Errorf("sequence = %q, want clipboard payload %q", buf.String(), encoded)
	}

	if NewOSC52Strategy(nil).Available() {
		t.Error("nil writer reported available")
	}
}

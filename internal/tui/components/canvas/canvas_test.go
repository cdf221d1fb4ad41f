package canvas

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/lumen/internal/palette"
)

var white = palette.RGB{R: 255, G: 255, B: 255}

func plain(c *Canvas) []string {
	return strings.Split(ansi.Strip(c.Render()), "\n")
}

func TestCanvas_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		x     int
		text  string
		want  string
		cells int
	}{
		{name: "ascii", width: 8, x: 1, text: "ciao", want: " ciao   ", cells: 4},
		{name: "clipped right", width: 5, x: 3, text: "ciao", want: "   ci", cells: 2},
		{name: "clipped left", width: 5, x: -2, text: "ciao", want: "ao   ", cells: 4},
		{name: "wide rune", width: 6, x: 0, text: "日本", want: "日本  ", cells: 4},
		{name: "wide rune does not straddle edge", width: 3, x: 0, text: "日本", want: "日 ", cells: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New(tt.width, 1)
			if got := c.Text(tt.x, 0, tt.text, white, false); got != tt.cells {
				t.Errorf("Text() = %d cells, want %d", got, tt.cells)
			}
			if diff := cmp.Diff([]string{tt.want}, plain(c)); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCanvas_OverwriteWideRune(t *testing.T) {
	t.Parallel()

	c := New(4, 1)
	c.Text(0, 0, "日", white, false)
	c.Text(1, 0, "x", white, false)

	if diff := cmp.Diff([]string{" x  "}, plain(c)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestCanvas_Center(t *testing.T) {
	t.Parallel()

	c := New(10, 2)
	x, w := c.Center(1, "1/3", white, true)
	if x != 3 || w != 3 {
		t.Errorf("Center() = (%d, %d), want (3, 3)", x, w)
	}
	if diff := cmp.Diff([]string{"          ", "   1/3    "}, plain(c)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestCanvas_FillAndTint(t *testing.T) {
	t.Parallel()

	c := New(3, 2)
	c.Fill(func(x, y int) palette.RGB { return palette.RGB{R: uint8(x), G: uint8(y)} })
	c.Tint(1, 1, func(palette.RGB) palette.RGB { return white })
	c.Tint(9, 9, func(palette.RGB) palette.RGB { return white })

	if got := c.At(2, 1).Bg; got != (palette.RGB{R: 2, G: 1}) {
		t.Errorf("At(2, 1).Bg = %v", got)
	}
	if got := c.At(1, 1).Bg; got != white {
		t.Errorf("tinted cell = %v, want white", got)
	}
	if got := c.At(9, 9); got != (Cell{}) {
		t.Errorf("out of range At = %+v, want zero", got)
	}
}

func TestCanvas_RenderMergesRuns(t *testing.T) {
	t.Parallel()

	uniform := New(40, 1)
	uniform.Fill(func(int, int) palette.RGB { return palette.RGB{R: 10} })

	striped := New(40, 1)
	striped.Fill(func(x, _ int) palette.RGB { return palette.RGB{R: uint8(x)} })

	if a, b := len(uniform.Render()), len(striped.Render()); a >= b {
		t.Errorf("uniform row (%d bytes) should render shorter than striped row (%d bytes)", a, b)
	}
}

func TestNew_NegativeSize(t *testing.T) {
	t.Parallel()

	c := New(-1, -1)
	if c.Width() != 0 || c.Height() != 0 || c.Render() != "" {
		t.Errorf("New(-1, -1) = %dx%d %q", c.Width(), c.Height(), c.Render())
	}
}

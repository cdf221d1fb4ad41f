package canvas

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/garrettladley/lumen/internal/palette"
)

// Cell is one terminal cell. A wide rune occupies its own cell plus a
// continuation cell to its right.
type Cell struct {
	Rune rune
	Fg   palette.RGB
	Bg   palette.RGB
	Bold bool

	cont bool
}

// Canvas is a fixed grid of cells rendered row by row.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

func New(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i].Rune = ' '
	}
	return &Canvas{width: width, height: height, cells: cells}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *Canvas) At(x, y int) Cell {
	if !c.in(x, y) {
		return Cell{}
	}
	return c.cells[y*c.width+x]
}

// Fill paints every cell background with bg(x, y).
func (c *Canvas) Fill(bg func(x, y int) palette.RGB) {
	for y := range c.height {
		for x := range c.width {
			c.cells[y*c.width+x].Bg = bg(x, y)
		}
	}
}

// Tint replaces the background of one cell.
func (c *Canvas) Tint(x, y int, fn func(palette.RGB) palette.RGB) {
	if !c.in(x, y) {
		return
	}
	cell := &c.cells[y*c.width+x]
	cell.Bg = fn(cell.Bg)
}

// Set writes a single-width rune, keeping the cell background.
func (c *Canvas) Set(x, y int, r rune, fg palette.RGB, bold bool) {
	c.Text(x, y, string(r), fg, bold)
}

// Text writes s starting at (x, y) on the existing background and returns the
// number of cells it occupies. Runes that would cross the right edge are
// dropped.
func (c *Canvas) Text(x, y int, s string, fg palette.RGB, bold bool) int {
	if y < 0 || y >= c.height {
		return 0
	}

	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.width {
			break
		}
		if col >= 0 {
			c.put(col, y, r, fg, bold, w)
		}
		col += w
	}
	return col - x
}

func (c *Canvas) put(x, y int, r rune, fg palette.RGB, bold bool, w int) {
	c.clearWide(x, y)
	idx := y*c.width + x
	c.cells[idx] = Cell{Rune: r, Fg: fg, Bg: c.cells[idx].Bg, Bold: bold}
	if w == 2 {
		c.clearWide(x+1, y)
		next := &c.cells[idx+1]
		*next = Cell{Rune: ' ', Bg: next.Bg, cont: true}
	}
}

// clearWide blanks the other half of a wide rune overlapping (x, y).
func (c *Canvas) clearWide(x, y int) {
	idx := y*c.width + x
	cell := c.cells[idx]
	switch {
	case cell.cont && x > 0:
		c.cells[idx-1].Rune = ' '
	case !cell.cont && runewidth.RuneWidth(cell.Rune) == 2 && x+1 < c.width:
		c.cells[idx+1].cont = false
		c.cells[idx+1].Rune = ' '
	}
	c.cells[idx].cont = false
}

// Center writes s centered on row y.
func (c *Canvas) Center(y int, s string, fg palette.RGB, bold bool) (x, w int) {
	w = runewidth.StringWidth(s)
	x = max((c.width-w)/2, 0)
	return x, c.Text(x, y, s, fg, bold)
}

// Render emits one line per row, merging adjacent cells that share a style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y := range c.height {
		if y > 0 {
			b.WriteByte('\n')
		}
		c.renderRow(&b, y)
	}
	return b.String()
}

func (c *Canvas) renderRow(b *strings.Builder, y int) {
	row := c.cells[y*c.width : (y+1)*c.width]

	var (
		run   strings.Builder
		style lipgloss.Style
		prev  Cell
		open  bool
	)
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
	}

	for _, cell := range row {
		if cell.cont {
			continue
		}
		if !open || !sameStyle(prev, cell) {
			flush()
			style = lipgloss.NewStyle().
				Background(cell.Bg).
				Foreground(cell.Fg).
				Bold(cell.Bold)
			prev = cell
			open = true
		}
		run.WriteRune(cell.Rune)
	}
	flush()
}

// sameStyle ignores the foreground of blank cells so gradient runs stay long.
func sameStyle(a, b Cell) bool {
	if a.Bg != b.Bg {
		return false
	}
	if a.Rune == ' ' && b.Rune == ' ' {
		return true
	}
	return a.Fg == b.Fg && a.Bold == b.Bold
}

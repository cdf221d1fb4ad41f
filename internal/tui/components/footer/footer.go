package footer

import (
	"github.com/mattn/go-runewidth"

	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/tui/components/canvas"
	"github.com/garrettladley/lumen/internal/tui/theme"
)

const Hints = "s condividi · i info · q esci"

var hintColor = palette.FromColor(theme.ColorWhite)

type Footer struct {
	rightContent string
	padding      int
}

func New(rightContent string) Footer {
	return Footer{
		rightContent: rightContent,
		padding:      2,
	}
}

// Paint writes the footer on row y of c. The right side is dropped when
// both sides do not fit.
func (f Footer) Paint(c *canvas.Canvas, y int) {
	left := f.leftContent()
	leftWidth := runewidth.StringWidth(left)
	rightWidth := runewidth.StringWidth(f.rightContent)

	c.Text(f.padding, y, left, leftColor, false)

	x := c.Width() - f.padding - rightWidth
	if x < f.padding+leftWidth+1 {
		return
	}
	c.Text(x, y, f.rightContent, hintColor, false)
}

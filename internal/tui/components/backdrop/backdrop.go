package backdrop

import (
	"math"

	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/tui/components/canvas"
)

// CellAspect is the height of a terminal cell in units of its width.
const CellAspect = 2.0

// At returns the color of cell (x, y) in a width x height grid for a linear
// gradient at angle degrees. Angles follow CSS linear-gradient: 0 runs from
// the bottom edge (Top color) to the top edge (Bottom color), and positive
// angles turn clockwise.
func At(colors palette.Colors, angle float64, x, y, width, height int) palette.RGB {
	return colors.At(Offset(angle, x, y, width, height))
}

// Offset returns the position of cell (x, y) along the gradient line, in [0,1].
func Offset(angle float64, x, y, width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}

	var (
		rad    = angle * math.Pi / 180
		dx     = math.Sin(rad)
		dy     = -math.Cos(rad)
		w      = float64(width)
		h      = float64(height) * CellAspect
		px     = float64(x) + 0.5 - w/2
		py     = (float64(y)+0.5)*CellAspect - h/2
		length = math.Abs(w*dx) + math.Abs(h*dy)
	)
	if length == 0 {
		return 0
	}

	t := (px*dx+py*dy)/length + 0.5
	return math.Min(math.Max(t, 0), 1)
}

// Paint fills every cell of c with the gradient.
func Paint(c *canvas.Canvas, colors palette.Colors, angle float64) {
	w, h := c.Width(), c.Height()
	c.Fill(func(x, y int) palette.RGB {
		return At(colors, angle, x, y, w, h)
	})
}

package sunarc

import (
	"math"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/solar"
	"github.com/garrettladley/lumen/internal/tui/components/canvas"
	"github.com/garrettladley/lumen/internal/tui/theme"
)

const (
	// arc dimensions in braille dots (2 dots per char width, 4 dots per char height)
	arcDotsWidth  = 32 // 16 chars wide
	arcDotsHeight = 16 // 4 chars tall
)

const sunGlyph = '●'

var (
	trackColor = palette.FromColor(theme.ColorTrack)
	sunColor   = palette.FromColor(theme.ColorSun)
	labelColor = palette.FromColor(theme.ColorWhite)
)

// Arc plots the sun's progress between sunrise and sunset on a half circle.
type Arc struct {
	Times solar.Times
	Hour  float64
}

func New(times solar.Times, hour float64) Arc {
	return Arc{Times: times, Hour: hour}
}

// Size returns the arc footprint in cells, including the label row.
func Size() (cols, rows int) {
	return arcDotsWidth / 2, arcDotsHeight/4 + 1
}

// Up reports whether the sun is above the horizon.
func (a Arc) Up() bool {
	return a.Hour >= a.Times.Sunrise && a.Hour < a.Times.Sunset
}

// Progress is the fraction of daylight elapsed, clamped to [0,1].
func (a Arc) Progress() float64 {
	daylight := a.Times.Daylight()
	if daylight <= 0 {
		return 0
	}
	p := (a.Hour - a.Times.Sunrise) / daylight
	return math.Min(math.Max(p, 0), 1)
}

func geometry() (centerX, centerY, radius float64) {
	return float64(arcDotsWidth) / 2, float64(arcDotsHeight) - 1, float64(arcDotsWidth)/2 - 1
}

// Layers returns the full track and the lit portion as braille rows.
func (a Arc) Layers() (track, lit []string) {
	dots := drawille.NewCanvas()
	cx, cy, r := geometry()

	drawTrack(&dots, cx, cy, r)
	track = getCanvasRows(&dots, arcDotsWidth, arcDotsHeight)

	dots.Clear()
	if a.Up() {
		drawLit(&dots, cx, cy, r, a.Progress())
	}
	lit = getCanvasRows(&dots, arcDotsWidth, arcDotsHeight)

	return track, lit
}

// Sun returns the cell holding the sun marker, relative to the arc origin.
func (a Arc) Sun() (col, row int) {
	cx, cy, r := geometry()
	angle := (arcStartAngle + a.Progress()*arcSweep) * math.Pi / 180

	x := math.Round(cx + r*math.Cos(angle))
	y := math.Round(cy + r*math.Sin(angle))

	cols, rows := Size()
	col = min(max(int(x)/2, 0), cols-1)
	row = min(max(int(y)/4, 0), rows-2)
	return col, row
}

// Paint draws the arc with its top-left cell at (x, y), leaving blank cells
// to the backdrop.
func (a Arc) Paint(c *canvas.Canvas, x, y int) {
	track, lit := a.Layers()

	for i := range track {
		trackRunes := []rune(track[i])
		litRunes := []rune(lit[i])

		for j, tr := range trackRunes {
			lr := litRunes[j]
			litHasDots := isBraille(lr) && lr != emptyBraille

			switch {
			case litHasDots && isBraille(tr):
				c.Set(x+j, y+i, combineBraille(tr, lr), sunColor, false)
			case litHasDots:
				c.Set(x+j, y+i, lr, sunColor, false)
			case isBraille(tr) && tr != emptyBraille:
				c.Set(x+j, y+i, tr, trackColor, false)
			}
		}
	}

	if a.Up() {
		col, row := a.Sun()
		c.Set(x+col, y+row, sunGlyph, sunColor, true)
	}

	cols, rows := Size()
	rise := solar.FormatHour(a.Times.Sunrise)
	set := solar.FormatHour(a.Times.Sunset)
	c.Text(x, y+rows-1, rise, labelColor, false)
	c.Text(x+cols-len(set), y+rows-1, set, labelColor, false)
}

// getCanvasRows extracts the canvas as rows with consistent dimensions.
func getCanvasRows(dots *drawille.Canvas, width, height int) []string {
	// each braille char is 2 dots wide, 4 dots tall
	charWidth := width / 2
	charHeight := height / 4

	rows := dots.Rows(0, 0, width, height)

	lines := make([]string, 0, charHeight)
	for i := range charHeight {
		if i >= len(rows) {
			lines = append(lines, strings.Repeat(" ", charWidth))
			continue
		}
		line := rows[i]
		runeCount := len([]rune(line))
		if runeCount < charWidth {
			line += strings.Repeat(" ", charWidth-runeCount)
		} else if runeCount > charWidth {
			line = string([]rune(line)[:charWidth])
		}
		lines = append(lines, line)
	}

	return lines
}

const emptyBraille rune = '\u2800'

// isBraille returns true if the rune is a braille character (U+2800 to U+28FF)
func isBraille(r rune) bool {
	return r >= 0x2800 && r <= 0x28FF
}

// combineBraille ORs the dots of two braille characters together
func combineBraille(a, b rune) rune {
	patternA := a - emptyBraille
	patternB := b - emptyBraille
	return emptyBraille + (patternA | patternB)
}

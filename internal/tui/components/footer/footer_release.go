//go:build release

package footer

import (
	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/tui/theme"
)

var leftColor = palette.FromColor(theme.ColorWhite)

func (f Footer) leftContent() string {
	return "lumen"
}

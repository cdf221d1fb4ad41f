//go:build !release

package footer

import (
	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/tui/theme"
	"github.com/garrettladley/lumen/internal/version"
)

var leftColor = palette.FromColor(theme.ColorDim)

func (f Footer) leftContent() string {
	return version.Get()
}

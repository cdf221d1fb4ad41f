package palette

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var _ color.Color = RGB{}

// RGB is an opaque 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

var Black = RGB{}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// CSS renders the color as rgb(r, g, b).
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex renders the color as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return c.Hex()
}

var rgbFunc = regexp.MustCompile(`(?i)^rgb\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)

// Parse reads "#RRGGBB" or "rgb(r, g, b)". Anything it does not recognize
// yields Black.
func Parse(s string) RGB {
	s = strings.TrimSpace(s)
	if s == "" {
		return Black
	}

	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return Black
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return Black
		}
		return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
	}

	m := rgbFunc.FindStringSubmatch(s)
	if m == nil {
		return Black
	}
	return RGB{R: channel(m[1]), G: channel(m[2]), B: channel(m[3])}
}

func channel(s string) uint8 {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return uint8(min(max(v, 0), 255))
}

// Interpolate blends a toward b by factor f, rounding each channel to the
// nearest integer. f=0 returns a and f=1 returns b exactly.
func Interpolate(a, b RGB, f float64) RGB {
	return RGB{
		R: lerpChannel(a.R, b.R, f),
		G: lerpChannel(a.G, b.G, f),
		B: lerpChannel(a.B, b.B, f),
	}
}

func lerpChannel(a, b uint8, f float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*f)
	return uint8(math.Max(0, math.Min(255, v)))
}

// FromColor flattens any color.Color onto black.
func FromColor(c color.Color) RGB {
	if c == nil {
		return Black
	}
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

package info

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const (
	Glyph  = "ⓘ"
	PopFor = 600 * time.Millisecond

	padding = 1
)

// Bubble is the speech bubble opened from the info glyph.
type Bubble struct {
	open     bool
	openedAt time.Time
}

func (b Bubble) Open() bool { return b.open }

func (b Bubble) Toggle(now time.Time) Bubble {
	if b.open {
		return Bubble{}
	}
	return Bubble{open: true, openedAt: now}
}

func (b Bubble) Close() Bubble { return Bubble{} }

// Popping reports whether the opening emphasis is still playing.
func (b Bubble) Popping(now time.Time) bool {
	return b.open && now.Sub(b.openedAt) < PopFor
}

// Lines lays text out in a rounded box no wider than maxWidth cells.
func Lines(text string, maxWidth int) []string {
	inner := maxWidth - 2 - 2*padding
	if inner < 1 {
		return nil
	}

	body := Wrap(text, inner)
	width := 0
	for _, l := range body {
		width = max(width, runewidth.StringWidth(l))
	}

	pad := strings.Repeat(" ", padding)
	lines := make([]string, 0, len(body)+2)
	lines = append(lines, "╭"+strings.Repeat("─", width+2*padding)+"╮")
	for _, l := range body {
		lines = append(lines, "│"+pad+runewidth.FillRight(l, width)+pad+"│")
	}
	lines = append(lines, "╰"+strings.Repeat("─", width+2*padding)+"╯")
	return lines
}

// Wrap breaks text into lines of at most width cells, on spaces where it can.
// Explicit newlines start a new paragraph.
func Wrap(text string, width int) []string {
	if width < 1 {
		return nil
	}

	var lines []string
	for para := range strings.SplitSeq(text, "\n") {
		var line strings.Builder
		lineWidth := 0

		for _, word := range strings.Fields(para) {
			for _, part := range strings.Split(runewidth.Wrap(word, width), "\n") {
				w := runewidth.StringWidth(part)
				if lineWidth > 0 && lineWidth+1+w > width {
					lines = append(lines, line.String())
					line.Reset()
					lineWidth = 0
				}
				if lineWidth > 0 {
					line.WriteByte(' ')
					lineWidth++
				}
				line.WriteString(part)
				lineWidth += w
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

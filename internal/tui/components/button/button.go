package button

import (
	"time"

	"github.com/mattn/go-runewidth"
)

const (
	Label       = "Condividi"
	CopiedLabel = "Copiato!"

	CopiedFor = 1400 * time.Millisecond
)

// Share is the share button. It shows CopiedLabel for CopiedFor after a
// successful share.
type Share struct {
	copiedAt time.Time
}

func (s Share) Copied(now time.Time) Share {
	return Share{copiedAt: now}
}

func (s Share) Showing(now time.Time) bool {
	return !s.copiedAt.IsZero() && now.Sub(s.copiedAt) < CopiedFor
}

func (s Share) Label(now time.Time) string {
	if s.Showing(now) {
		return CopiedLabel
	}
	return Label
}

// Text renders the button face, padded so both labels have the same width.
func (s Share) Text(now time.Time) string {
	return "[ " + runewidth.FillRight(s.Label(now), labelWidth()) + " ]"
}

// Width is the number of cells Text occupies.
func Width() int {
	return labelWidth() + 4
}

func labelWidth() int {
	return max(runewidth.StringWidth(Label), runewidth.StringWidth(CopiedLabel))
}

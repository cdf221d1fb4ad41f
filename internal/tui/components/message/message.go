package message

import (
	"time"

	"github.com/garrettladley/lumen/internal/gradient"
)

const (
	FadeOut = 520 * time.Millisecond
	PopIn   = 700 * time.Millisecond
)

// Message is the displayed text and the change it is animating through.
// Replacing the text fades the old one out, then pops the new one in.
type Message struct {
	Text      string
	Prev      string
	ChangedAt time.Time
}

// Set returns m showing text, starting a change animation when it differs.
func (m Message) Set(text string, now time.Time) Message {
	if text == m.Text {
		return m
	}
	return Message{Text: text, Prev: m.Text, ChangedAt: now}
}

// Frame is what to draw at one instant.
type Frame struct {
	Text    string
	Opacity float64 // 0 invisible, 1 fully drawn
	Pop     float64 // remaining emphasis of the pop-in, 1 at its start
}

func (m Message) Frame(now time.Time) Frame {
	if m.ChangedAt.IsZero() {
		return Frame{Text: m.Text, Opacity: 1}
	}

	elapsed := now.Sub(m.ChangedAt)
	switch {
	case elapsed < 0:
		return Frame{Text: m.Prev, Opacity: 1}
	case elapsed < FadeOut:
		return Frame{
			Text:    m.Prev,
			Opacity: 1 - gradient.Ease(float64(elapsed)/float64(FadeOut)),
		}
	case elapsed < FadeOut+PopIn:
		t := float64(elapsed-FadeOut) / float64(PopIn)
		return Frame{
			Text:    m.Text,
			Opacity: 1,
			Pop:     1 - gradient.Ease(t),
		}
	default:
		return Frame{Text: m.Text, Opacity: 1}
	}
}

// Animating reports whether a change is still playing at now.
func (m Message) Animating(now time.Time) bool {
	return !m.ChangedAt.IsZero() && now.Sub(m.ChangedAt) < FadeOut+PopIn
}

package tui

import (
	"time"

	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/rotation"
)

type MessagesLoadedMsg struct {
	List []string
}

// RotationDueMsg asks for the next rotation round-trip.
type RotationDueMsg struct{}

type RotationMsg struct {
	State rotation.State
	Err   error
}

type GradientMsg struct {
	Sample gradient.Sample
}

type FrameMsg struct {
	Time time.Time
}

type ShareMsg struct {
	Text     string
	Strategy string
	Err      error
}

// ExpiredMsg redraws once a timed affordance (pulse, copied label, bubble
// pop) has lapsed while no frames are running.
type ExpiredMsg struct{}

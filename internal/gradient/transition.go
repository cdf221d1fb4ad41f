package gradient

import (
	"math"
	"time"

	"github.com/garrettladley/lumen/internal/palette"
)

// DefaultTransitionDuration is how long a retarget takes to settle.
const DefaultTransitionDuration = 1800 * time.Millisecond

// Ease is a cubic ease-in-out over t clamped to [0,1].
func Ease(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Transition eases from one gradient to another over a fixed duration.
type Transition struct {
	From     palette.Colors
	To       palette.Colors
	Start    time.Time
	Duration time.Duration
}

// Progress is the elapsed fraction of the duration, clamped to [0,1].
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	return math.Max(0, math.Min(1, p))
}

func (t Transition) At(now time.Time) palette.Colors {
	return t.From.Blend(t.To, Ease(t.Progress(now)))
}

func (t Transition) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// Animator owns the displayed gradient and at most one in-flight transition.
// It is not safe for concurrent use; the TUI model is its only writer.
type Animator struct {
	current palette.Colors
	set     bool
	active  *Transition
}

// Current returns the displayed gradient and whether one has been set yet.
func (a *Animator) Current() (palette.Colors, bool) {
	return a.current, a.set
}

// Animating reports whether a transition is in flight.
func (a *Animator) Animating() bool {
	return a.active != nil
}

// Target returns the destination of the in-flight transition, if any.
func (a *Animator) Target() (palette.Colors, bool) {
	if a.active == nil {
		return palette.Colors{}, false
	}
	return a.active.To, true
}

// Retarget starts a transition from the displayed gradient toward to,
// abandoning any transition already in flight. The very first target is
// applied immediately.
func (a *Animator) Retarget(to palette.Colors, now time.Time, d time.Duration) {
	if !a.set {
		a.current = to
		a.set = true
		a.active = nil
		return
	}

	a.active = &Transition{
		From:     a.current,
		To:       to,
		Start:    now,
		Duration: d,
	}
}

// Step advances the in-flight transition to now and returns the displayed
// gradient. It reports true while the transition is still running.
func (a *Animator) Step(now time.Time) (palette.Colors, bool) {
	if a.active == nil {
		return a.current, false
	}

	a.current = a.active.At(now)
	if a.active.Done(now) {
		a.active = nil
		return a.current, false
	}
	return a.current, true
}

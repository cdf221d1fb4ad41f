package gradient

import (
	"math"
	"time"
)

const (
	DefaultAmplitude = 18.0 // degrees
	DefaultPeriod    = 8 * time.Second
)

// Oscillator swings the gradient angle as amplitude * sin(2πt/period).
// Pausing stops frame requests but keeps the phase origin, so resuming picks
// up where wall-clock time says the swing should be.
type Oscillator struct {
	Amplitude float64
	Period    time.Duration

	origin  time.Time
	running bool
}

func NewOscillator(amplitude float64, period time.Duration, origin time.Time) *Oscillator {
	return &Oscillator{
		Amplitude: amplitude,
		Period:    period,
		origin:    origin,
		running:   true,
	}
}

// Angle returns the angle in degrees at now.
func (o *Oscillator) Angle(now time.Time) float64 {
	if o.Period <= 0 {
		return 0
	}
	t := float64(now.Sub(o.origin)) / float64(o.Period)
	return o.Amplitude * math.Sin(t*2*math.Pi)
}

func (o *Oscillator) Running() bool { return o.running }

// Pause returns false when already paused.
func (o *Oscillator) Pause() bool {
	if !o.running {
		return false
	}
	o.running = false
	return true
}

// Resume returns false when already running.
func (o *Oscillator) Resume() bool {
	if o.running {
		return false
	}
	o.running = true
	return true
}

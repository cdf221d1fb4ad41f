package gradient

import (
	"math"
	"time"

	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/solar"
)

const hoursPerDay = 24.0

// Sample is the gradient for one instant together with where it sits in the cycle.
type Sample struct {
	palette.Colors
	Phase  Phase
	Factor float64 // progress through Phase, in [0,1)
	Hour   float64
	Times  solar.Times
}

// Compute returns the target gradient for now at the given latitude.
func Compute(now time.Time, latitude float64) Sample {
	return At(solar.DecimalHour(now), solar.Compute(now, latitude))
}

// At returns the gradient for a decimal hour given the day's solar times.
//
// The day is a 24h ring cut at sunrise-1, sunrise, sunrise+1, sunset-1, sunset,
// sunset+1 and sunset+2; the night window closes the ring back to sunrise-1.
// Every hour falls in exactly one window.
func At(hour float64, times solar.Times) Sample {
	bounds := boundaries(times)

	h := bounds[0] + mod(hour-bounds[0], hoursPerDay)

	for i := range phaseCount {
		start, end := bounds[i], bounds[i+1]
		if h < start || h >= end {
			continue
		}

		cp := Phases[i]
		factor := (h - start) / (end - start)
		colors := cp.From
		if !cp.Flat() {
			colors = cp.From.Blend(cp.To, factor)
		}

		return Sample{
			Colors: colors,
			Phase:  cp.Phase,
			Factor: factor,
			Hour:   hour,
			Times:  times,
		}
	}

	// unreachable: bounds[0] <= h < bounds[7]
	return Sample{Colors: palette.Night, Phase: PhaseNight, Hour: hour, Times: times}
}

// boundaries returns the eight window edges, the last being the first plus 24h.
// Edges are forced monotone so degenerate (polar) days collapse windows
// instead of overlapping them.
func boundaries(t solar.Times) [phaseCount + 1]float64 {
	b := [phaseCount + 1]float64{
		t.Sunrise - 1,
		t.Sunrise,
		t.Sunrise + 1,
		t.Sunset - 1,
		t.Sunset,
		t.Sunset + 1,
		t.Sunset + 2,
		t.Sunrise - 1 + hoursPerDay,
	}
	for i := 1; i < len(b)-1; i++ {
		b[i] = math.Min(math.Max(b[i], b[i-1]), b[len(b)-1])
	}
	return b
}

func mod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}

package gradient

import "github.com/garrettladley/lumen/internal/palette"

// Phase is one of the seven windows of the day/night cycle.
type Phase uint8

const (
	PhasePreDawn Phase = iota
	PhaseDawn
	PhaseDay
	PhasePreDusk
	PhaseDusk
	PhaseTwilight
	PhaseNight
)

const phaseCount = 7

func (p Phase) String() string {
	switch p {
	case PhasePreDawn:
		return "pre-dawn"
	case PhaseDawn:
		return "dawn"
	case PhaseDay:
		return "day"
	case PhasePreDusk:
		return "pre-dusk"
	case PhaseDusk:
		return "dusk"
	case PhaseTwilight:
		return "twilight"
	case PhaseNight:
		return "night"
	default:
		return "unknown"
	}
}

// ColorPhase pairs a phase with the colors it starts from and blends toward.
// Flat phases have From == To.
type ColorPhase struct {
	Phase Phase
	From  palette.Colors
	To    palette.Colors
}

// Flat reports whether the phase holds a single color for its whole window.
func (c ColorPhase) Flat() bool {
	return c.From == c.To
}

// Phases is indexed by Phase, in ring order starting one hour before sunrise.
var Phases = [phaseCount]ColorPhase{
	{Phase: PhasePreDawn, From: palette.Night, To: palette.Sunrise},
	{Phase: PhaseDawn, From: palette.Sunrise, To: palette.Day},
	{Phase: PhaseDay, From: palette.Day, To: palette.Day},
	{Phase: PhasePreDusk, From: palette.Day, To: palette.Sunset},
	{Phase: PhaseDusk, From: palette.Sunset, To: palette.Dusk},
	{Phase: PhaseTwilight, From: palette.Dusk, To: palette.Night},
	{Phase: PhaseNight, From: palette.Night, To: palette.Night},
}

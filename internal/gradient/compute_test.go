package gradient

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/solar"
)

func TestAt_Phases(t *testing.T) {
	t.Parallel()

	times := solar.Times{Sunrise: 6, Sunset: 18}

	tests := []struct {
		name   string
		hour   float64
		phase  Phase
		colors palette.Colors
	}{
		{name: "midnight", hour: 0, phase: PhaseNight, colors: palette.Night},
		{name: "start of pre-dawn", hour: 5, phase: PhasePreDawn, colors: palette.Night},
		{name: "sunrise", hour: 6, phase: PhaseDawn, colors: palette.Sunrise},
		{name: "start of day", hour: 7, phase: PhaseDay, colors: palette.Day},
		{name: "noon", hour: 12, phase: PhaseDay, colors: palette.Day},
		{name: "start of pre-dusk", hour: 17, phase: PhasePreDusk, colors: palette.Day},
		{name: "sunset", hour: 18, phase: PhaseDusk, colors: palette.Sunset},
		{name: "start of twilight", hour: 19, phase: PhaseTwilight, colors: palette.Dusk},
		{name: "start of night", hour: 20, phase: PhaseNight, colors: palette.Night},
		{name: "late night", hour: 23.9, phase: PhaseNight, colors: palette.Night},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := At(tt.hour, times)
			if got.Phase != tt.phase {
				t.Errorf("At(%v).Phase = %v, want %v", tt.hour, got.Phase, tt.phase)
			}
			if diff := cmp.Diff(tt.colors, got.Colors); diff != "" {
				t.Errorf("At(%v) colors mismatch (-want +got):\n%s", tt.hour, diff)
			}
		})
	}
}

func TestAt_Midpoint(t *testing.T) {
	t.Parallel()

	times := solar.Times{Sunrise: 6, Sunset: 18}

	got := At(5.5, times)
	want := palette.Night.Blend(palette.Sunrise, 0.5)

	if got.Phase != PhasePreDawn {
		t.Fatalf("phase = %v, want %v", got.Phase, PhasePreDawn)
	}
	if got.Factor != 0.5 {
		t.Errorf("factor = %v, want 0.5", got.Factor)
	}
	if diff := cmp.Diff(want, got.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestAt_ContinuousAtBoundaries(t *testing.T) {
	t.Parallel()

	const eps = 1e-7

	for _, times := range []solar.Times{
		{Sunrise: 6, Sunset: 18},
		solar.Compute(time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC), solar.DefaultLatitude),
		solar.Compute(time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC), solar.DefaultLatitude),
	} {
		for i, b := range boundaries(times) {
			before := At(b-eps, times)
			at := At(b, times)
			if diff := cmp.Diff(before.Colors, at.Colors); diff != "" {
				t.Errorf("times %+v boundary %d (%.4f) discontinuous (-before +at):\n%s", times, i, b, diff)
			}
		}
	}
}

func TestAt_Total(t *testing.T) {
	t.Parallel()

	latitudes := []float64{-80, -42, 0, 42, 66, 80}
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, lat := range latitudes {
		for day := 0; day < 366; day += 7 {
			times := solar.Compute(start.AddDate(0, 0, day), lat)
			for m := 0; m < 24*60; m += 5 {
				hour := float64(m) / 60
				got := At(hour, times)
				if got.Phase > PhaseNight {
					t.Fatalf("lat %v day %d hour %v: phase %v out of range", lat, day, hour, got.Phase)
				}
				if got.Factor < 0 || got.Factor > 1 {
					t.Fatalf("lat %v day %d hour %v: factor %v out of range", lat, day, hour, got.Factor)
				}
			}
		}
	}
}

func TestAt_WrapsHour(t *testing.T) {
	t.Parallel()

	times := solar.Times{Sunrise: 6, Sunset: 18}

	if diff := cmp.Diff(At(12, times).Colors, At(36, times).Colors); diff != "" {
		t.Errorf("hour 36 differs from 12 (-12 +36):\n%s", diff)
	}
	if diff := cmp.Diff(At(23, times).Colors, At(-1, times).Colors); diff != "" {
		t.Errorf("hour -1 differs from 23 (-23 +-1):\n%s", diff)
	}
}

func TestCompute_NoonIsDay(t *testing.T) {
	t.Parallel()

	noon := time.Date(2025, time.March, 22, 12, 0, 0, 0, time.UTC)
	got := Compute(noon, solar.DefaultLatitude)

	if got.Phase != PhaseDay {
		t.Errorf("phase = %v, want %v", got.Phase, PhaseDay)
	}
	if diff := cmp.Diff(palette.Day, got.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	for i, cp := range Phases {
		if Phase(i) != cp.Phase {
			t.Errorf("Phases[%d].Phase = %v", i, cp.Phase)
		}
		if cp.Phase.String() == "unknown" {
			t.Errorf("Phases[%d] has no name", i)
		}
	}
	if got := Phase(99).String(); got != "unknown" {
		t.Errorf("Phase(99).String() = %q, want unknown", got)
	}
}

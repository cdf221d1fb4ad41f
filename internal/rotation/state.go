package rotation

import (
	"fmt"
	"time"
)

// State is the persisted rotation position. Timestamps carry millisecond
// precision so they survive a round-trip through the store unchanged.
type State struct {
	Index        int
	LastChangeAt time.Time
	NextChangeAt time.Time
}

// Last reports whether the state sits on the final message, after which it
// never advances again.
func (s State) Last(count int) bool {
	return s.Index >= count-1
}

// Due reports whether the scheduled change has been reached at now.
func (s State) Due(now time.Time) bool {
	return !now.Before(s.NextChangeAt)
}

// Elapsed is the time since the last change, never negative.
func (s State) Elapsed(now time.Time) time.Duration {
	if d := now.Sub(s.LastChangeAt); d > 0 {
		return d
	}
	return 0
}

// FormatElapsed renders d as "{h}h {m}m {s}s", flooring each unit. Hours
// are not folded into days.
func FormatElapsed(d time.Duration) string {
	d = max(d, 0)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	sec := (d % time.Minute) / time.Second
	return fmt.Sprintf("%dh %dm %ds", h, m, sec)
}

// DelayFunc draws the wait before the next change.
type DelayFunc func() time.Duration

// CatchUp replays the schedule from anchor up to now, advancing once for every
// change that would have fired had the rotation been running since anchor.
func CatchUp(anchor, now time.Time, count int, delay DelayFunc) State {
	anchor = truncate(anchor)
	s := State{
		Index:        0,
		LastChangeAt: anchor,
		NextChangeAt: truncate(anchor.Add(delay())),
	}

	for s.Due(now) && !s.Last(count) {
		s.Index++
		s.LastChangeAt = s.NextChangeAt
		s.NextChangeAt = truncate(s.LastChangeAt.Add(delay()))
	}

	return s
}

// Advance moves at most one step: when the change is due and the last message
// has not been reached, the index increments and a fresh delay is drawn from
// now. It reports whether it advanced.
func Advance(s State, now time.Time, count int, delay DelayFunc) (State, bool) {
	if !s.Due(now) || s.Last(count) {
		return s, false
	}

	now = truncate(now)
	return State{
		Index:        s.Index + 1,
		LastChangeAt: now,
		NextChangeAt: truncate(now.Add(delay())),
	}, true
}

func truncate(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli())
}

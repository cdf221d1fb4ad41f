package rotation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Store keys. The names are shared with every other client of the same store.
const (
	KeyIndex      = "scrittaIndice"
	KeyLastChange = "ultimoCambio"
	KeyNextChange = "prossimoCambio"
)

// Keys lists every key the rotation state occupies.
var Keys = []string{KeyIndex, KeyLastChange, KeyNextChange}

var (
	// ErrAbsent means no rotation state has been persisted yet.
	ErrAbsent = errors.New("rotation state absent")

	// ErrCorruptState means persisted fields are unreadable or inconsistent.
	ErrCorruptState = errors.New("rotation state corrupt")
)

func Encode(s State) map[string]string {
	return map[string]string{
		KeyIndex:      strconv.Itoa(s.Index),
		KeyLastChange: strconv.FormatInt(s.LastChangeAt.UnixMilli(), 10),
		KeyNextChange: strconv.FormatInt(s.NextChangeAt.UnixMilli(), 10),
	}
}

// Decode validates persisted fields. An index past the last message is clamped
// to count-1.
func Decode(fields map[string]string, count int) (State, error) {
	rawIndex, ok := fields[KeyIndex]
	if !ok {
		return State{}, ErrAbsent
	}

	index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
	if err != nil {
		return State{}, fmt.Errorf("%w: index %q", ErrCorruptState, rawIndex)
	}
	if index < 0 {
		return State{}, fmt.Errorf("%w: negative index %d", ErrCorruptState, index)
	}
	if count > 0 && index > count-1 {
		index = count - 1
	}

	last, err := decodeMillis(fields, KeyLastChange)
	if err != nil {
		return State{}, err
	}
	next, err := decodeMillis(fields, KeyNextChange)
	if err != nil {
		return State{}, err
	}
	if !next.After(last) {
		return State{}, fmt.Errorf("%w: next change %d not after last change %d", ErrCorruptState, next.UnixMilli(), last.UnixMilli())
	}

	return State{
		Index:        index,
		LastChangeAt: last,
		NextChangeAt: next,
	}, nil
}

// decodeMillis accepts fractional values, which older writers produced, and
// truncates them to whole milliseconds.
func decodeMillis(fields map[string]string, key string) (time.Time, error) {
	raw, ok := fields[key]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: missing %s", ErrCorruptState, key)
	}

	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f > maxMillis || f < -maxMillis {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrCorruptState, key, raw)
	}
	return time.UnixMilli(int64(f)), nil
}

// maxMillis keeps float conversions inside int64 range.
const maxMillis = 1 << 53

// Package session names a single run of the widget so interleaved runs can
// be told apart in the shared log file.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const stampLayout = "20060102-150405"

// NewID returns a sortable id such as 20251219-180000-a1b2c3.
func NewID() string {
	return newID(time.Now(), rand.Read)
}

func newID(now time.Time, read func([]byte) (int, error)) string {
	stamp := now.UTC().Format(stampLayout)

	suffix := make([]byte, 3)
	if _, err := read(suffix); err != nil {
		return fmt.Sprintf("%s-%06d", stamp, now.Nanosecond()/int(time.Microsecond))
	}
	return stamp + "-" + hex.EncodeToString(suffix)
}

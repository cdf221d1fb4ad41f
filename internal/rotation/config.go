package rotation

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultMinDelay = 12 * time.Hour
	DefaultMaxDelay = 24 * time.Hour
)

// DefaultAnchor is the instant the first message went up.
var DefaultAnchor = time.Date(2025, time.December, 19, 18, 0, 0, 0, time.FixedZone("CET", 60*60))

type Config struct {
	Anchor   time.Time     `env:"ANCHOR" envDefault:"2025-12-19T18:00:00+01:00"`
	MinDelay time.Duration `env:"MIN_DELAY" envDefault:"12h"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"24h"`
}

func DefaultConfig() Config {
	return Config{
		Anchor:   DefaultAnchor,
		MinDelay: DefaultMinDelay,
		MaxDelay: DefaultMaxDelay,
	}
}

var (
	errNoAnchor   = errors.New("anchor must be set")
	errMinDelay   = errors.New("min delay must be positive")
	errDelayRange = errors.New("max delay must not be less than min delay")
)

func (c Config) Validate() error {
	if c.Anchor.IsZero() {
		return errNoAnchor
	}
	if c.MinDelay <= 0 {
		return fmt.Errorf("%w: got %s", errMinDelay, c.MinDelay)
	}
	if c.MaxDelay < c.MinDelay {
		return fmt.Errorf("%w: min %s, max %s", errDelayRange, c.MinDelay, c.MaxDelay)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/garrettladley/lumen/internal/audio"
	appenv "github.com/garrettladley/lumen/internal/env"
	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/share"
	"github.com/garrettladley/lumen/internal/solar"
	"github.com/garrettladley/lumen/internal/storage"
)

const DefaultInfoText = "Ogni giorno un bisogno nuovo. Clicca ovunque per sentire una voce, premi s per condividere."

type Config struct {
	Env             appenv.Environment `env:"ENV" envDefault:"development"`
	Latitude        float64            `env:"LATITUDE" envDefault:"42"`
	GradientRefresh time.Duration      `env:"GRADIENT_REFRESH" envDefault:"60s"`
	InfoText        string             `env:"INFO_TEXT" envDefault:"Ogni giorno un bisogno nuovo. Clicca ovunque per sentire una voce, premi s per condividere."`
	Messages        Messages           `envPrefix:"MESSAGES_"`
	Store           storage.Config     `envPrefix:"STORE_"`
	Rotation        Rotation           `envPrefix:"ROTATION_"`
	Animation       Animation          `envPrefix:"ANIMATION_"`
	Audio           audio.Config       `envPrefix:"AUDIO_"`
	Share           share.Config       `envPrefix:"SHARE_"`
}

type Messages struct {
	URL string `env:"URL" envDefault:"http://localhost:8080/scritte.json"`
	// File takes precedence over URL when set.
	File string `env:"FILE"`
}

type Rotation struct {
	rotation.Config
	Tick time.Duration `env:"TICK" envDefault:"1s"`
}

type Animation struct {
	Amplitude     float64       `env:"AMPLITUDE" envDefault:"18"`
	Period        time.Duration `env:"PERIOD" envDefault:"8s"`
	Transition    time.Duration `env:"TRANSITION" envDefault:"1800ms"`
	FrameInterval time.Duration `env:"FRAME_INTERVAL" envDefault:"33ms"`
}

// Default mirrors the envDefault tags for callers that skip the environment.
func Default() Config {
	return Config{
		Env:             appenv.Development,
		Latitude:        solar.DefaultLatitude,
		GradientRefresh: time.Minute,
		InfoText:        DefaultInfoText,
		Messages:        Messages{URL: "http://localhost:8080/scritte.json"},
		Store:           storage.Config{Driver: storage.DriverSQLite},
		Rotation: Rotation{
			Config: rotation.DefaultConfig(),
			Tick:   time.Second,
		},
		Animation: Animation{
			Amplitude:     gradient.DefaultAmplitude,
			Period:        gradient.DefaultPeriod,
			Transition:    gradient.DefaultTransitionDuration,
			FrameInterval: 33 * time.Millisecond,
		},
		Audio: audio.Config{
			Dir: "stop",
		},
	}
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Latitude < -90 || c.Latitude > 90 {
		errs = append(errs, fmt.Errorf("LATITUDE must be within [-90, 90], got %v", c.Latitude))
	}
	if err := c.Rotation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ROTATION: %w", err))
	}
	if c.Rotation.Tick <= 0 {
		errs = append(errs, errors.New("ROTATION_TICK must be positive"))
	}
	if c.GradientRefresh <= 0 {
		errs = append(errs, errors.New("GRADIENT_REFRESH must be positive"))
	}
	if c.Animation.Period <= 0 {
		errs = append(errs, errors.New("ANIMATION_PERIOD must be positive"))
	}
	if c.Animation.FrameInterval <= 0 {
		errs = append(errs, errors.New("ANIMATION_FRAME_INTERVAL must be positive"))
	}
	if c.Animation.Transition < 0 {
		errs = append(errs, errors.New("ANIMATION_TRANSITION must not be negative"))
	}
	return errors.Join(errs...)
}

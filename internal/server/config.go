package server

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/lumen/internal/env"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/storage"
)

type Config struct {
	Port         string             `env:"PORT" envDefault:"8080"`
	Env          appenv.Environment `env:"ENV" envDefault:"development"`
	MessagesFile string             `env:"MESSAGES_FILE"`
	Latitude     float64            `env:"LATITUDE" envDefault:"42"`
	Store        storage.Config     `envPrefix:"STORE_"`
	Rotation     rotation.Config    `envPrefix:"ROTATION_"`
	RateLimit    RateLimit          `envPrefix:"RATE_"`
}

type RateLimit struct {
	Limit float64 `env:"LIMIT" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
}

func ReadConfig() (Config, error) {
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
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must be set"))
	}
	if !validLatitude(c.Latitude) {
		errs = append(errs, fmt.Errorf("LATITUDE must be within [-90, 90], got %v", c.Latitude))
	}
	if err := c.Rotation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ROTATION: %w", err))
	}
	if c.RateLimit.Limit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT must be positive"))
	}
	if c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("RATE_BURST must be at least 1"))
	}
	return errors.Join(errs...)
}

func validLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

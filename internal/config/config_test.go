package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/lumen/internal/storage"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	got, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{}})
	if err != nil {
		t.Fatalf("ParseAs: %v", err)
	}

	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("defaults drifted from tags (-Default +parsed):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Parallel()

	got, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{
		"LATITUDE":           "45.5",
		"STORE_DRIVER":       "redis",
		"STORE_URL":          "redis://localhost:6379/0",
		"ROTATION_ANCHOR":    "2026-01-01T00:00:00Z",
		"ROTATION_MIN_DELAY": "1h",
		"ROTATION_MAX_DELAY": "2h",
		"AUDIO_FILES":        "a.mp3,b.mp3",
		"AUDIO_PLAYER":       "afplay",
		"MESSAGES_FILE":      "/etc/lumen/scritte.json",
	}})
	if err != nil {
		t.Fatalf("ParseAs: %v", err)
	}

	if got.Latitude != 45.5 {
		t.Errorf("Latitude = %v, want 45.5", got.Latitude)
	}
	if got.Store.Driver != storage.DriverRedis || got.Store.URL != "redis://localhost:6379/0" {
		t.Errorf("Store = %+v", got.Store)
	}
	if want := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC); !got.Rotation.Anchor.Equal(want) {
		t.Errorf("Anchor = %v, want %v", got.Rotation.Anchor, want)
	}
	if got.Rotation.MinDelay != time.Hour || got.Rotation.MaxDelay != 2*time.Hour {
		t.Errorf("delays = %v..%v, want 1h..2h", got.Rotation.MinDelay, got.Rotation.MaxDelay)
	}
	if diff := cmp.Diff([]string{"a.mp3", "b.mp3"}, got.Audio.Files); diff != "" {
		t.Errorf("Audio.Files mismatch (-want +got):\n%s", diff)
	}
	if got.Audio.Player != "afplay" {
		t.Errorf("Audio.Player = %q, want afplay", got.Audio.Player)
	}
	if got.Messages.File != "/etc/lumen/scritte.json" {
		t.Errorf("Messages.File = %q", got.Messages.File)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "latitude out of range", mutate: func(c *Config) { c.Latitude = 91 }},
		{name: "max delay below min", mutate: func(c *Config) { c.Rotation.MaxDelay = time.Minute }},
		{name: "zero tick", mutate: func(c *Config) { c.Rotation.Tick = 0 }},
		{name: "zero period", mutate: func(c *Config) { c.Animation.Period = 0 }},
		{name: "zero frame interval", mutate: func(c *Config) { c.Animation.FrameInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate succeeded, want error")
			}
		})
	}
}

package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/garrettladley/lumen/internal/audio"
	"github.com/garrettladley/lumen/internal/config"
	"github.com/garrettladley/lumen/internal/messages"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/share"
)

type Rotator interface {
	Tick(ctx context.Context, count int) (rotation.State, error)
}

type Sharer interface {
	Share(ctx context.Context, text string) (string, error)
}

type Player interface {
	Play(ctx context.Context)
}

var (
	_ Rotator = (*rotation.Engine)(nil)
	_ Sharer  = (*share.Chain)(nil)
	_ Player  = (*audio.Player)(nil)
)

type Deps struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Config   config.Config
	Messages messages.Source
	Rotation Rotator
	Share    Sharer
	Audio    Player
	// Now defaults to time.Now.
	Now func() time.Time
}

package audio

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"

	"github.com/garrettladley/lumen/internal/xslog"
)

// DefaultFiles are the voice notes shipped alongside the widget.
var DefaultFiles = []string{
	"WhatsApp Ptt 2025-12-19 at 15.49.04.mp3",
	"WhatsApp Ptt 2025-12-19 at 15.49.13.mp3",
	"WhatsApp Ptt 2025-12-19 at 15.49.28.mp3",
	"WhatsApp Ptt 2025-12-19 at 15.52.44.mp3",
	"WhatsApp Ptt 2025-12-19 at 15.52.48.mp3",
	"WhatsApp Ptt 2025-12-19 at 15.52.54.mp3",
	"WhatsApp Ptt 2025-12-19 at 15.52.58.mp3",
	"WhatsApp Ptt 2025-12-19 at 15.53.01.mp3",
	"WhatsApp Ptt 2025-12-19 at 16.00.25.mp3",
	"WhatsApp Ptt 2025-12-19 at 18.08.59.mp3",
	"WhatsApp Ptt 2025-12-19 at 18.09.02.mp3",
	"WhatsApp Ptt 2025-12-19 at 18.09.10.mp3",
	"WhatsApp Ptt 2025-12-19 at 18.09.14.mp3",
	"WhatsApp Ptt 2025-12-19 at 18.09.17.mp3",
	"WhatsApp Ptt 2025-12-19 at 18.09.32.mp3",
	"WhatsApp Ptt 2025-12-19 at 18.10.23.mp3",
	"WhatsApp Ptt 2025-12-19 at 18.10.32.mp3",
}

type Config struct {
	Dir string `env:"DIR" envDefault:"stop"`
	// Files overrides DefaultFiles when set.
	Files []string `env:"FILES" envSeparator:","`
	// Player, when set, is an external command run with the clip path
	// appended. Clips are decoded and played in-process otherwise.
	Player string `env:"PLAYER"`
	Mute   bool   `env:"MUTE"`
}

// Backend plays one clip to completion or until ctx is done.
type Backend interface {
	Play(ctx context.Context, path string) error
}

type Option func(*Player)

// WithBackend replaces the playback backend chosen from Config.
func WithBackend(b Backend) Option {
	return func(p *Player) { p.backend = b }
}

func WithRand(r *rand.Rand) Option {
	return func(p *Player) { p.rng = r }
}

// Player plays a random clip per call. Playback is best-effort: every failure
// is logged and swallowed.
type Player struct {
	dir     string
	files   []string
	mute    bool
	backend Backend
	logger  *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewPlayer(cfg Config, logger *slog.Logger, opts ...Option) *Player {
	files := cfg.Files
	if len(files) == 0 {
		files = DefaultFiles
	}

	var backend Backend = NewSpeaker()
	if argv := strings.Fields(cfg.Player); len(argv) > 0 {
		backend = NewCommand(argv)
	}

	p := &Player{
		dir:     cfg.Dir,
		files:   files,
		mute:    cfg.Mute,
		backend: backend,
		logger:  logger,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play blocks until the clip finishes; call it off the UI goroutine.
func (p *Player) Play(ctx context.Context) {
	if p.mute {
		p.logger.DebugContext(ctx, "audio muted")
		return
	}
	if len(p.files) == 0 {
		p.logger.WarnContext(ctx, "no audio files configured")
		return
	}

	path := filepath.Join(p.dir, p.pick())
	if err := p.backend.Play(ctx, path); err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.WarnContext(ctx, "audio playback failed",
			xslog.File(path),
			xslog.Error(err),
		)
	}
}

func (p *Player) pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.files[p.rng.IntN(len(p.files))]
}

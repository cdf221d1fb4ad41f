package rotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/garrettladley/lumen/internal/xslog"
)

var ErrNoMessages = errors.New("message count must be positive")

// Store is the slice of storage.KV the engine needs. GetMany leaves missing
// keys out of its result.
type Store interface {
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, fields map[string]string) error
}

type Option func(*Engine)

// WithRand replaces the delay source, e.g. with a seeded one in tests.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine loads, advances and persists the rotation state. A store that cannot
// be read is never overwritten: the engine keeps serving the last state it
// handed out, or returns the error if it has none yet. Failed writes are
// logged and retried on the next advance.
type Engine struct {
	cfg    Config
	store  Store
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	rng  *rand.Rand
	last *State
}

func NewEngine(cfg Config, store Store, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rotation config: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		cfg:    cfg,
		store:  store,
		logger: logger,
		now:    time.Now,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

// Initialize returns the persisted state, or when nothing or only garbage is
// stored replays the schedule from the anchor and persists the result. Any
// other read failure leaves the store untouched.
func (e *Engine) Initialize(ctx context.Context, count int) (State, error) {
	if count < 1 {
		return State{}, ErrNoMessages
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.load(ctx, count)
	switch {
	case err == nil:
		e.remember(s)
		return s, nil
	case errors.Is(err, ErrAbsent):
		e.logger.DebugContext(ctx, "no rotation state, replaying from anchor", xslog.Anchor(e.cfg.Anchor))
	case errors.Is(err, ErrCorruptState):
		e.logger.WarnContext(ctx, "discarding corrupt rotation state", xslog.Error(err))
	default:
		if e.last == nil {
			return State{}, fmt.Errorf("failed to load rotation state: %w", err)
		}
		e.logger.WarnContext(ctx, "rotation store unavailable, keeping last state", xslog.Error(err))
		s = *e.last
		s.Index = min(s.Index, count-1)
		return s, nil
	}

	s = CatchUp(e.cfg.Anchor, e.now(), count, e.delay)
	e.save(ctx, s)
	e.remember(s)

	e.logger.InfoContext(ctx, "rotation state initialized",
		xslog.Index(s.Index),
		xslog.Count(count),
		xslog.NextChange(s.NextChangeAt),
	)
	return s, nil
}

// Check advances s by at most one step and persists it when it moves. Far
// overdue states still move only once per call; only Initialize catches up.
func (e *Engine) Check(ctx context.Context, s State, count int) (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, advanced := Advance(s, e.now(), count, e.delay)
	if !advanced {
		return s, false
	}

	e.save(ctx, next)
	e.remember(next)
	e.logger.InfoContext(ctx, "rotation advanced",
		xslog.Index(next.Index),
		xslog.Count(count),
		xslog.NextChange(next.NextChangeAt),
	)
	return next, true
}

// Tick reloads the shared state and runs a single check, so writes from other
// clients of the same store are picked up.
func (e *Engine) Tick(ctx context.Context, count int) (State, error) {
	s, err := e.Initialize(ctx, count)
	if err != nil {
		return State{}, err
	}
	s, _ = e.Check(ctx, s, count)
	return s, nil
}

// Load reads the persisted state without replaying or writing anything.
// It returns ErrAbsent when nothing is stored and ErrCorruptState when the
// stored triple is unusable.
func (e *Engine) Load(ctx context.Context, count int) (State, error) {
	if count < 1 {
		return State{}, ErrNoMessages
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.load(ctx, count)
}

func (e *Engine) load(ctx context.Context, count int) (State, error) {
	fields, err := e.store.GetMany(ctx, Keys...)
	if err != nil {
		return State{}, fmt.Errorf("failed to get rotation keys: %w", err)
	}
	return Decode(fields, count)
}

// remember records s as the state to fall back on while the store is
// unreadable. Callers hold mu.
func (e *Engine) remember(s State) {
	e.last = &s
}

func (e *Engine) save(ctx context.Context, s State) {
	if err := e.store.SetMany(ctx, Encode(s)); err != nil {
		e.logger.ErrorContext(ctx, "failed to persist rotation state", xslog.Error(err))
	}
}

// delay draws uniformly from [MinDelay, MaxDelay], at least one millisecond.
// Callers hold mu.
func (e *Engine) delay() time.Duration {
	d := e.cfg.MinDelay
	if span := e.cfg.MaxDelay - e.cfg.MinDelay; span > 0 {
		d += time.Duration(e.rng.Int64N(int64(span) + 1))
	}
	return max(d, time.Millisecond)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/messages"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/solar"
	"github.com/garrettladley/lumen/internal/version"
	"github.com/garrettladley/lumen/internal/xerrors"
	"github.com/garrettladley/lumen/internal/xhttp"
	"github.com/garrettladley/lumen/internal/xslog"
)

const (
	paramLatitude = "lat"
	healthTimeout = 2 * time.Second
)

// MessageList serves the live message list.
type MessageList interface {
	Current() []string
}

// Rotator advances the shared rotation by at most one step.
type Rotator interface {
	Tick(ctx context.Context, count int) (rotation.State, error)
}

// Pinger reports whether the shared store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ MessageList = (*messages.Watcher)(nil)
	_ Rotator     = (*rotation.Engine)(nil)
)

type Handler struct {
	messages MessageList
	rotation Rotator
	store    Pinger
	latitude float64
	now      func() time.Time
}

type HandlerOption func(*Handler)

func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

func NewHandler(list MessageList, rotator Rotator, store Pinger, latitude float64, opts ...HandlerOption) *Handler {
	h := &Handler{
		messages: list,
		rotation: rotator,
		store:    store,
		latitude: latitude,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) HandleMessages(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, messages.Document{Scritte: h.messages.Current()})
}

type RotationResponse struct {
	Index        int       `json:"index"`
	Count        int       `json:"count"`
	Counter      string    `json:"counter"`
	Message      string    `json:"message"`
	LastChangeAt time.Time `json:"last_change_at"`
	NextChangeAt time.Time `json:"next_change_at"`
	Elapsed      string    `json:"elapsed"`
	ElapsedMS    int64     `json:"elapsed_ms"`
}

func (h *Handler) HandleRotation(w http.ResponseWriter, r *http.Request) {
	list := h.messages.Current()

	s, err := h.rotation.Tick(r.Context(), len(list))
	if err != nil {
		xerrors.WriteError(r.Context(), w, xerrors.ServiceUnavailable(
			xerrors.WithMessage("rotation unavailable"),
			xerrors.WithCause(err),
		))
		return
	}

	elapsed := s.Elapsed(h.now())
	xhttp.WriteFresh(w, RotationResponse{
		Index:        s.Index,
		Count:        len(list),
		Counter:      messages.Counter(s.Index, len(list)),
		Message:      messages.At(list, s.Index),
		LastChangeAt: s.LastChangeAt,
		NextChangeAt: s.NextChangeAt,
		Elapsed:      rotation.FormatElapsed(elapsed),
		ElapsedMS:    elapsed.Milliseconds(),
	})
}

type GradientResponse struct {
	Top      string  `json:"top"`
	Bottom   string  `json:"bottom"`
	Phase    string  `json:"phase"`
	Factor   float64 `json:"factor"`
	Hour     float64 `json:"hour"`
	Sunrise  string  `json:"sunrise"`
	Sunset   string  `json:"sunset"`
	Latitude float64 `json:"latitude"`
}

func (h *Handler) HandleGradient(w http.ResponseWriter, r *http.Request) {
	lat := h.latitude
	if raw := r.URL.Query().Get(paramLatitude); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !validLatitude(v) {
			xerrors.WriteError(r.Context(), w, xerrors.Validation(map[string]string{
				paramLatitude: "must be a number within [-90, 90]",
			}))
			return
		}
		lat = v
	}

	s := gradient.Compute(h.now(), lat)
	xslog.FromContext(r.Context()).DebugContext(r.Context(), "gradient computed",
		xslog.Phase(s.Phase.String()),
		xslog.Latitude(lat),
	)

	xhttp.WriteFresh(w, GradientResponse{
		Top:      s.Top.CSS(),
		Bottom:   s.Bottom.CSS(),
		Phase:    s.Phase.String(),
		Factor:   s.Factor,
		Hour:     s.Hour,
		Sunrise:  solar.FormatHour(s.Times.Sunrise),
		Sunset:   solar.FormatHour(s.Times.Sunset),
		Latitude: lat,
	})
}

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Messages int    `json:"messages"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = errors.New("store ping timed out")
		}
		xerrors.WriteError(r.Context(), w, xerrors.ServiceUnavailable(
			xerrors.WithMessage("store unreachable"),
			xerrors.WithCause(err),
		))
		return
	}

	xhttp.WriteFresh(w, HealthResponse{
		Status:   "ok",
		Version:  version.Get(),
		Messages: len(h.messages.Current()),
	})
}

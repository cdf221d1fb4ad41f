package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/messages"
	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/storage"
)

type fakeList []string

func (f fakeList) Current() []string { return f }

type fakeRotator struct {
	state rotation.State
	err   error
	count int
}

func (f *fakeRotator) Tick(_ context.Context, count int) (rotation.State, error) {
	f.count = count
	return f.state, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

var noon = time.Date(2025, time.June, 21, 12, 0, 0, 0, time.UTC)

func newTestHandler(rot Rotator, store Pinger) *Handler {
	return NewHandler(fakeList{"uno", "due", "tre"}, rot, store, 42, WithClock(func() time.Time { return noon }))
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	if err := go_json.NewDecoder(body).Decode(&v); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return v
}

func TestHandleMessages(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeRotator{}, fakePinger{})
	rec := httptest.NewRecorder()
	h.HandleMessages(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, PathMessages, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	got := decode[messages.Document](t, rec.Body)
	if diff := cmp.Diff(messages.Document{Scritte: []string{"uno", "due", "tre"}}, got); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleRotation(t *testing.T) {
	t.Parallel()

	rot := &fakeRotator{state: rotation.State{
		Index:        1,
		LastChangeAt: noon.Add(-90 * time.Minute),
		NextChangeAt: noon.Add(2 * time.Hour),
	}}
	h := newTestHandler(rot, fakePinger{})

	rec := httptest.NewRecorder()
	h.HandleRotation(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, PathRotation, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
	if rot.count != 3 {
		t.Errorf("Tick count = %d, want 3", rot.count)
	}

	want := RotationResponse{
		Index:        1,
		Count:        3,
		Counter:      "2/3",
		Message:      "due",
		LastChangeAt: noon.Add(-90 * time.Minute),
		NextChangeAt: noon.Add(2 * time.Hour),
		Elapsed:      "1h 30m 0s",
		ElapsedMS:    (90 * time.Minute).Milliseconds(),
	}
	got := decode[RotationResponse](t, rec.Body)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleRotation_Error(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeRotator{err: rotation.ErrNoMessages}, fakePinger{})
	rec := httptest.NewRecorder()
	h.HandleRotation(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, PathRotation, nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestHandleGradient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLat    float64
	}{
		{name: "default latitude", query: "", wantStatus: http.StatusOK, wantLat: 42},
		{name: "override", query: "?lat=-33.5", wantStatus: http.StatusOK, wantLat: -33.5},
		{name: "not a number", query: "?lat=north", wantStatus: http.StatusUnprocessableEntity},
		{name: "out of range", query: "?lat=91", wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newTestHandler(&fakeRotator{}, fakePinger{})
			rec := httptest.NewRecorder()
			h.HandleGradient(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, PathGradient+tt.query, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			got := decode[GradientResponse](t, rec.Body)
			want := gradient.Compute(noon, tt.wantLat)
			if got.Latitude != tt.wantLat {
				t.Errorf("latitude = %v, want %v", got.Latitude, tt.wantLat)
			}
			if got.Phase != want.Phase.String() {
				t.Errorf("phase = %q, want %q", got.Phase, want.Phase.String())
			}
			if got.Top != want.Top.CSS() || got.Bottom != want.Bottom.CSS() {
				t.Errorf("colors = %s / %s, want %s / %s", got.Top, got.Bottom, want.Top.CSS(), want.Bottom.CSS())
			}
		})
	}
}

func TestHandleGradient_NoonIsDay(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeRotator{}, fakePinger{})
	rec := httptest.NewRecorder()
	h.HandleGradient(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, PathGradient, nil))

	got := decode[GradientResponse](t, rec.Body)
	if got.Phase != gradient.PhaseDay.String() {
		t.Errorf("phase = %q, want %q", got.Phase, gradient.PhaseDay.String())
	}
	if got.Top != palette.Day.Top.CSS() {
		t.Errorf("top = %q, want %q", got.Top, palette.Day.Top.CSS())
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{name: "reachable", wantStatus: http.StatusOK},
		{name: "unreachable", pingErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newTestHandler(&fakeRotator{}, fakePinger{err: tt.pingErr})
			rec := httptest.NewRecorder()
			h.HandleHealth(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, PathHealth, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRoutes_RateLimitsAPI(t *testing.T) {
	t.Parallel()

	limiter := storage.NewMemoryRateLimiter(0.001, 1)
	t.Cleanup(func() { _ = limiter.Close() })

	h := newTestHandler(&fakeRotator{}, fakePinger{})
	srv := httptest.NewServer(Routes(h, limiter, slog.New(slog.DiscardHandler)))
	t.Cleanup(srv.Close)

	get := func(path string) *http.Response {
		t.Helper()
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+path, nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		_ = resp.Body.Close()
		return resp
	}

	if resp := get(PathMessages); resp.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp := get(PathGradient)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", resp.StatusCode, http.StatusTooManyRequests)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
	if got := resp.Header.Get("X-RateLimit-Reason"); got != "ip_rate_limit" {
		t.Errorf("reason = %q, want ip_rate_limit", got)
	}

	// health is never limited
	for range 3 {
		if resp := get(PathHealth); resp.StatusCode != http.StatusOK {
			t.Errorf("health status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	t.Parallel()

	limiter := storage.NewMemoryRateLimiter(100, 100)
	t.Cleanup(func() { _ = limiter.Close() })

	h := newTestHandler(&fakeRotator{}, fakePinger{})
	rec := httptest.NewRecorder()
	Routes(h, limiter, slog.New(slog.DiscardHandler)).ServeHTTP(rec,
		httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

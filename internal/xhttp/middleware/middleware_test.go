package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/lumen/internal/version"
	"github.com/garrettladley/lumen/internal/xcontext"
	"github.com/garrettladley/lumen/internal/xhttp"
)

func TestChain_FirstIsOutermost(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mws := []func(http.Handler) http.Handler{mark("a"), mark("b"), mark("c")}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mws...)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil))

	if diff := cmp.Diff([]string{"a", "b", "c", "handler"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	// Chain must not reorder the caller's slice
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil))
	if diff := cmp.Diff([]string{"a", "b", "c", "handler", "a", "b", "c", "handler"}, order); diff != "" {
		t.Errorf("second pass mismatch (-want +got):\n%s", diff)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var fromCtx string
	h := RequestID(WithIDFunc(func(*http.Request) string { return "req-1" }))(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			fromCtx, _ = xcontext.GetRequestID(r.Context())
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil))

	if fromCtx != "req-1" {
		t.Errorf("context request id = %q, want req-1", fromCtx)
	}
	if got := rec.Header().Get(xhttp.XRequestID); got != "req-1" {
		t.Errorf("%s = %q, want req-1", xhttp.XRequestID, got)
	}
}

func TestRequestID_DefaultIsUUID(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil))

	if got := rec.Header().Get(xhttp.XRequestID); len(got) != 36 {
		t.Errorf("%s = %q, want a uuid", xhttp.XRequestID, got)
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/api/rotation", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(rec.Body.String(), "internal error") {
		t.Errorf("body = %q, want internal error message", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	h := SecurityHeaders(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil))

	want := map[string]string{
		xhttp.XContentTypeOpts: "nosniff",
		xhttp.XFrameOpts:       "DENY",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestVersionCheck_StampsServerVersion(t *testing.T) {
	t.Parallel()

	h := VersionCheck(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/scritte.json", nil)
	req.Header.Set(version.Header, "v99.0.0")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get(version.ServerHeader); got != version.Get() {
		t.Errorf("%s = %q, want %q", version.ServerHeader, got, version.Get())
	}
}

func TestLogging_CapturesImplicitStatus(t *testing.T) {
	t.Parallel()

	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)

	if rw.status != http.StatusTeapot {
		t.Errorf("status = %d, want first written %d", rw.status, http.StatusTeapot)
	}
}

func TestGzip_MinSize(t *testing.T) {
	t.Parallel()

	h := Gzip(WithGzipMinSize(8))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"scritte":["a","b"]}`))
	}))

	req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/scritte.json", nil)
	req.Header.Set(xhttp.AcceptEncoding, "gzip")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(xhttp.ContentEncoding); got != gzipEncoding {
		t.Errorf("Content-Encoding = %q, want %q", got, gzipEncoding)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

package middleware

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/garrettladley/lumen/internal/xhttp"
)

const (
	defaultGzipMinSize = 1024
	gzipEncoding       = "gzip"
)

type gzipConfig struct {
	minSize  int
	excluded map[string]struct{}
}

type GzipOption func(*gzipConfig)

// WithGzipMinSize sets how many bytes must be buffered before compressing.
func WithGzipMinSize(n int) GzipOption {
	return func(c *gzipConfig) { c.minSize = n }
}

// WithGzipExcludedPaths serves the given paths uncompressed.
func WithGzipExcludedPaths(paths ...string) GzipOption {
	return func(c *gzipConfig) {
		for _, p := range paths {
			c.excluded[p] = struct{}{}
		}
	}
}

var gzipWriters = sync.Pool{
	New: func() any { return gzip.NewWriter(io.Discard) },
}

type gzipMode uint8

const (
	modeBuffering gzipMode = iota
	modePlain
	modeCompressed
)

// gzipResponseWriter buffers the body until it knows whether compression
// pays off, then commits the status line exactly once.
type gzipResponseWriter struct {
	http.ResponseWriter
	minSize int
	status  int
	mode    gzipMode
	pending bytes.Buffer
	zw      *gzip.Writer
}

var (
	_ http.ResponseWriter = (*gzipResponseWriter)(nil)
	_ http.Flusher        = (*gzipResponseWriter)(nil)
	_ io.Closer           = (*gzipResponseWriter)(nil)
)

func (g *gzipResponseWriter) WriteHeader(code int) {
	if g.mode == modeBuffering {
		g.status = code
	}
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	switch g.mode {
	case modeCompressed:
		n, err := g.zw.Write(b)
		if err != nil {
			return n, fmt.Errorf("failed to write gzip: %w", err)
		}
		return n, nil
	case modePlain:
		n, err := g.ResponseWriter.Write(b)
		if err != nil {
			return n, fmt.Errorf("failed to write response: %w", err)
		}
		return n, nil
	}

	g.pending.Write(b)
	if g.pending.Len() < g.minSize {
		return len(b), nil
	}
	if err := g.commit(g.ResponseWriter.Header().Get(xhttp.ContentEncoding) == ""); err != nil {
		return 0, err
	}
	return len(b), nil
}

// commit picks the mode and drains whatever has been buffered.
func (g *gzipResponseWriter) commit(compress bool) error {
	h := g.ResponseWriter.Header()
	if compress {
		g.mode = modeCompressed
		h.Set(xhttp.ContentEncoding, gzipEncoding)
		h.Del(xhttp.ContentLength)
		g.ResponseWriter.WriteHeader(g.status)

		g.zw = gzipWriters.Get().(*gzip.Writer)
		g.zw.Reset(g.ResponseWriter)
		if _, err := g.zw.Write(g.pending.Bytes()); err != nil {
			return fmt.Errorf("failed to write to gzip writer: %w", err)
		}
	} else {
		g.mode = modePlain
		g.ResponseWriter.WriteHeader(g.status)
		if _, err := g.ResponseWriter.Write(g.pending.Bytes()); err != nil {
			return fmt.Errorf("failed to write buffered response: %w", err)
		}
	}
	g.pending.Reset()
	return nil
}

func (g *gzipResponseWriter) Close() error {
	if g.mode == modeBuffering {
		return g.commit(false)
	}
	if g.mode != modeCompressed {
		return nil
	}

	err := g.zw.Close()
	gzipWriters.Put(g.zw)
	g.zw = nil
	if err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

func (g *gzipResponseWriter) Flush() {
	switch g.mode {
	case modeBuffering:
		_ = g.commit(false)
	case modeCompressed:
		_ = g.zw.Flush()
	}
	if f, ok := g.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (g *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return g.ResponseWriter
}

// Gzip compresses responses of at least the configured size for clients that
// accept it. Smaller bodies pass through untouched.
func Gzip(opts ...GzipOption) func(http.Handler) http.Handler {
	cfg := gzipConfig{
		minSize:  defaultGzipMinSize,
		excluded: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := cfg.excluded[r.URL.Path]; skip || !acceptsGzip(r) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add(xhttp.Vary, xhttp.AcceptEncoding)

			gw := &gzipResponseWriter{
				ResponseWriter: w,
				minSize:        cfg.minSize,
				status:         http.StatusOK,
			}
			defer func() { _ = gw.Close() }()

			next.ServeHTTP(gw, r)
		})
	}
}

func acceptsGzip(r *http.Request) bool {
	for part := range strings.SplitSeq(r.Header.Get(xhttp.AcceptEncoding), ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), gzipEncoding) {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

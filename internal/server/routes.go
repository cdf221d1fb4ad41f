package server

import (
	"log/slog"
	"net/http"

	servermw "github.com/garrettladley/lumen/internal/server/middleware"
	"github.com/garrettladley/lumen/internal/storage"
	"github.com/garrettladley/lumen/internal/xhttp/middleware"
)

const (
	PathMessages = "/scritte.json"
	PathRotation = "/api/rotation"
	PathGradient = "/api/gradient"
	PathHealth   = "/health"
)

// Routes mounts the handler behind the shared middleware chain. Everything
// except the health probe is rate limited per client IP.
func Routes(h *Handler, limiter storage.RateLimiter, logger *slog.Logger) http.Handler {
	limited := http.NewServeMux()
	limited.HandleFunc("GET "+PathMessages, h.HandleMessages)
	limited.HandleFunc("GET "+PathRotation, h.HandleRotation)
	limited.HandleFunc("GET "+PathGradient, h.HandleGradient)
	limitedWrapped := middleware.Chain(limited,
		servermw.RateLimit(limiter),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathHealth, h.HandleHealth)
	mux.Handle(PathMessages, limitedWrapped)
	mux.Handle("/api/", limitedWrapped)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Logging,
		middleware.Recovery,
		middleware.SecurityHeaders,
		middleware.VersionCheck(logger),
		middleware.Gzip(middleware.WithGzipExcludedPaths(PathHealth)),
	)
}

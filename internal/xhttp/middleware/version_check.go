package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/lumen/internal/version"
	"github.com/garrettladley/lumen/internal/xslog"
)

// VersionCheck stamps the server version on every response and logs clients
// whose major version differs, so stale widgets can be told to upgrade.
func VersionCheck(logger *slog.Logger) func(http.Handler) http.Handler {
	server := version.Get()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(version.ServerHeader, server)

			client := r.Header.Get(version.Header)
			if client != "" && !version.Compatible(client, server) {
				logger.WarnContext(r.Context(), "client major version differs",
					xslog.ClientVersion(client),
					xslog.ServerVersion(server),
					xslog.RequestPath(r),
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}

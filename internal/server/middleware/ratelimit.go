package middleware

import (
	"net/http"

	"github.com/garrettladley/lumen/internal/storage"
	"github.com/garrettladley/lumen/internal/xerrors"
	"github.com/garrettladley/lumen/internal/xhttp"
	"github.com/garrettladley/lumen/internal/xslog"
)

const reasonIPRateLimit = "ip_rate_limit"

// RateLimit rejects clients whose IP exceeds the limiter's budget. A limiter
// failure fails closed.
func RateLimit(limiter storage.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := xhttp.GetRequestIP(r)

			result, err := limiter.Allow(ctx, ip)
			if err != nil {
				xslog.FromContext(ctx).ErrorContext(ctx, "rate limit check failed",
					xslog.ErrorGroup(err),
					xslog.IP(ip),
				)
				xerrors.WriteError(ctx, w, xerrors.ServiceUnavailable(xerrors.WithMessage("rate limit check failed")))
				return
			}

			if !result.Allowed {
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests(
					xerrors.WithRetryAfter(result.RetryAfter),
					xerrors.WithReason(reasonIPRateLimit),
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

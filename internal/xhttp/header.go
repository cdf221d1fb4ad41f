package xhttp

import (
	"net/http"
	"strconv"
	"time"
)

const (
	XForwardedFor         = "X-Forwarded-For"
	XContentTypeOpts      = "X-Content-Type-Options"
	XFrameOpts            = "X-Frame-Options"
	ContentSecurityPolicy = "Content-Security-Policy"
	ReferrerPolicy        = "Referrer-Policy"
	XRateLimitReason      = "X-RateLimit-Reason"
	XRequestID            = "X-Request-ID"
)

const (
	ContentType     = "Content-Type"
	ContentEncoding = "Content-Encoding"
	ContentLength   = "Content-Length"
	CacheControl    = "Cache-Control"
	AcceptEncoding  = "Accept-Encoding"
	Vary            = "Vary"
)

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	const applicationJSON = "application/json"
	w.Header().Set(ContentType, applicationJSON)
}

func SetHeaderCacheControlNoStore(w http.ResponseWriter) {
	const noStore = "no-store"
	w.Header().Set(CacheControl, noStore)
}

func SetHeaderRetryAfter(w http.ResponseWriter, retryAfter time.Duration) {
	const retryAfterHeader = "Retry-After"
	seconds := int(retryAfter.Seconds())
	if retryAfter > 0 && seconds == 0 {
		seconds = 1
	}
	w.Header().Set(retryAfterHeader, strconv.Itoa(seconds))
}

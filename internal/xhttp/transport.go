package xhttp

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/lumen/internal/version"
)

const userAgentPrefix = "lumen/"

type lumenTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*lumenTransport)(nil)

func (t *lumenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", UserAgent())
	req.Header.Set(version.Header, version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

func UserAgent() string {
	return userAgentPrefix + version.Get()
}

// NewTransport wraps base (http.DefaultTransport when nil) so every request
// carries the lumen user agent and version headers.
func NewTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &lumenTransport{base: base}
}

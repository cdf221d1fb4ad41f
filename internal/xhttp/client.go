package xhttp

import (
	"net/http"
	"time"
)

type ClientOption func(*http.Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client) { c.Timeout = d }
}

// WithBaseTransport swaps the transport beneath the lumen headers, e.g. for
// an httptest server's client transport.
func WithBaseTransport(rt http.RoundTripper) ClientOption {
	return func(c *http.Client) { c.Transport = NewTransport(rt) }
}

func NewHTTPClient(opts ...ClientOption) *http.Client {
	c := &http.Client{Transport: NewTransport(nil)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

package messages

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/garrettladley/lumen/internal/xhttp"
)

const (
	DefaultURL     = "http://localhost:8080/scritte.json"
	defaultTimeout = 10 * time.Second
)

var _ Source = (*HTTPSource)(nil)

type HTTPSource struct {
	url        string
	httpClient *http.Client
}

type HTTPOption func(*HTTPSource)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.httpClient = c }
}

func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:        url,
		httpClient: xhttp.NewHTTPClient(xhttp.WithTimeout(defaultTimeout)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return Decode(resp.Body)
}

func (s *HTTPSource) String() string { return s.url }

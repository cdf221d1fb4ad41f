package messages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/lumen/internal/xslog"
)

// ErrEmpty means the document parsed but listed no messages.
var ErrEmpty = errors.New("message list is empty")

// Fallback is shown whenever the configured list cannot be loaded.
var Fallback = []string{
	"Prima scritta",
	"Seconda scritta",
	"Terza scritta",
}

// Document is the wire form of the message list.
type Document struct {
	Scritte []string `json:"scritte"`
}

type Source interface {
	Fetch(ctx context.Context) ([]string, error)
	// String names the source in logs.
	String() string
}

// Load fetches the list from src, substituting Fallback on any failure.
// The returned slice is never empty.
func Load(ctx context.Context, src Source, logger *slog.Logger) []string {
	list, err := src.Fetch(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load messages, using fallback",
			xslog.Source(src.String()),
			xslog.Error(err),
		)
		return slices.Clone(Fallback)
	}

	logger.InfoContext(ctx, "messages loaded",
		xslog.Source(src.String()),
		xslog.Count(len(list)),
	)
	return list
}

// Decode reads a Document and returns its messages.
func Decode(r io.Reader) ([]string, error) {
	var doc Document
	if err := go_json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode message document: %w", err)
	}
	if len(doc.Scritte) == 0 {
		return nil, ErrEmpty
	}
	return doc.Scritte, nil
}

// Counter renders the 1-based position, e.g. "2/5".
func Counter(index, count int) string {
	return fmt.Sprintf("%d/%d", index+1, count)
}

// At returns the message at index, clamped into the list.
func At(list []string, index int) string {
	if len(list) == 0 {
		return ""
	}
	return list[max(0, min(index, len(list)-1))]
}

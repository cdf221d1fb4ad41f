package messages

import (
	"context"
	"fmt"
	"os"
)

var _ Source = (*FileSource)(nil)

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(_ context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

func (s *FileSource) String() string { return s.path }

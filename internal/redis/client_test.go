package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "missing url", cfg: Config{}, wantErr: ErrNoURL},
		{name: "bad scheme", cfg: Config{URL: "http://localhost:6379"}},
		{name: "unreachable", cfg: Config{URL: "redis://127.0.0.1:1/0", PingTimeout: 500 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := New(context.Background(), tt.cfg)
			if err == nil {
				_ = client.Close()
				t.Fatal("New succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

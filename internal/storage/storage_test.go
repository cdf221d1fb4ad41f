package storage

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/lumen/internal/db"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func openSQLite(t *testing.T) *SQLiteKV {
	t.Helper()

	sqlDB, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "lumen.db"))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	kv := NewSQLiteKV(sqlDB)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKV(t *testing.T) {
	t.Parallel()

	backends := []struct {
		name string
		open func(t *testing.T) KV
	}{
		{name: "memory", open: func(*testing.T) KV { return NewMemoryKV() }},
		{name: "sqlite", open: func(t *testing.T) KV { return openSQLite(t) }},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			kv := b.open(t)

			if err := kv.Ping(ctx); err != nil {
				t.Fatalf("Ping: %v", err)
			}

			if _, err := kv.Get(ctx, "scrittaIndice"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get on empty store error = %v, want %v", err, ErrNotFound)
			}

			if err := kv.SetMany(ctx, map[string]string{
				"scrittaIndice": "1",
				"ultimoCambio":  "1000",
			}); err != nil {
				t.Fatalf("SetMany: %v", err)
			}
			if err := kv.SetMany(ctx, map[string]string{"scrittaIndice": "2"}); err != nil {
				t.Fatalf("SetMany overwrite: %v", err)
			}

			got, err := kv.GetMany(ctx, "scrittaIndice", "ultimoCambio", "missing")
			if err != nil {
				t.Fatalf("GetMany: %v", err)
			}
			want := map[string]string{"scrittaIndice": "2", "ultimoCambio": "1000"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("GetMany mismatch (-want +got):\n%s", diff)
			}

			v, err := kv.Get(ctx, "ultimoCambio")
			if err != nil {
				t.Fatalf("Get(ultimoCambio): %v", err)
			}
			if v != "1000" {
				t.Errorf("Get(ultimoCambio) = %q, want %q", v, "1000")
			}

			empty, err := kv.GetMany(ctx)
			if err != nil {
				t.Fatalf("GetMany with no keys: %v", err)
			}
			if len(empty) != 0 {
				t.Errorf("GetMany with no keys = %v, want empty", empty)
			}

			if err := kv.Delete(ctx, "scrittaIndice", "ultimoCambio", "missing"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := kv.Get(ctx, "ultimoCambio"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete error = %v, want %v", err, ErrNotFound)
			}
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{Driver: "etcd"}, discardLogger()); err == nil {
		t.Error("Open succeeded for unknown driver")
	}
}

func TestOpen_SQLiteAtPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv, err := Open(ctx, Config{Driver: DriverSQLite, URL: filepath.Join(t.TempDir(), "x.db")}, discardLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = kv.Close() }()

	if _, ok := kv.(*SQLiteKV); !ok {
		t.Errorf("Open returned %T, want *SQLiteKV", kv)
	}
}

func TestMemoryRateLimiter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rl := NewMemoryRateLimiter(1, 2)
	defer func() { _ = rl.Close() }()

	for i := range 2 {
		res, err := rl.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d denied within burst", i)
		}
	}

	res, err := rl.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Error("request beyond burst allowed")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", res.RetryAfter)
	}

	res, err = rl.Allow(ctx, "10.0.0.2")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if !res.Allowed {
		t.Error("other key denied")
	}
}

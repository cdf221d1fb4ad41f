package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/lumen/internal/messages"
	xredis "github.com/garrettladley/lumen/internal/redis"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/server"
	"github.com/garrettladley/lumen/internal/storage"
	"github.com/garrettladley/lumen/internal/xslog"
)

const (
	keyRateLimit = "rate_limit"
	keyRateBurst = "rate_burst"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var (
		kv      storage.KV
		watcher *messages.Watcher
	)

	boot, bootCtx := errgroup.WithContext(ctx)
	boot.Go(func() error {
		var err error
		kv, err = storage.Open(bootCtx, cfg.Store, logger)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		return nil
	})
	boot.Go(func() error {
		watcher = messages.NewWatcher(bootCtx, cfg.MessagesFile, logger)
		return nil
	})
	if err := boot.Wait(); err != nil {
		if kv != nil {
			_ = kv.Close()
		}
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close store", xslog.Error(err))
		}
	}()

	engine, err := rotation.NewEngine(cfg.Rotation, kv, logger)
	if err != nil {
		return fmt.Errorf("failed to create rotation engine: %w", err)
	}

	limiter, closeLimiter, err := initRateLimiter(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize rate limiter: %w", err)
	}
	defer closeLimiter()

	handler := server.NewHandler(watcher, engine, kv, cfg.Latitude)
	httpServer := server.NewHTTPServer(":"+cfg.Port, server.Routes(handler, limiter, logger))

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", httpServer.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		return server.Serve(gctx, httpServer, ln, server.ShutdownTimeout, logger)
	})
	return g.Wait()
}

// initRateLimiter shares limits across replicas when they already share a
// redis store and keeps them per process otherwise.
func initRateLimiter(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.RateLimiter, func(), error) {
	logger.InfoContext(ctx, "initializing rate limiter",
		xslog.Driver(string(cfg.Store.Driver)),
		slog.Float64(keyRateLimit, cfg.RateLimit.Limit),
		slog.Int(keyRateBurst, cfg.RateLimit.Burst),
	)

	if cfg.Store.Driver == storage.DriverRedis {
		client, err := xredis.New(ctx, xredis.Config{URL: cfg.Store.URL})
		if err != nil {
			return nil, nil, err
		}
		limiter := storage.NewRedisRateLimiter(storage.RedisConfig{Client: client}, cfg.RateLimit.Burst)
		return limiter, func() { _ = client.Close() }, nil
	}

	limiter := storage.NewMemoryRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Burst)
	return limiter, func() { _ = limiter.Close() }, nil
}

package main

import (
	"context"
	"delivery-schedule-service/internal/adapters/cache"
	"delivery-schedule-service/internal/adapters/repositories"
	"delivery-schedule-service/internal/adapters/storage"
	"delivery-schedule-service/internal/api"
	"delivery-schedule-service/internal/config"
	"delivery-schedule-service/internal/platform/db"
	"delivery-schedule-service/internal/platform/obs"
	"delivery-schedule-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or JSON files, Redis or LRU) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.InitLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		Defaults:   cfg.Capacity,
		BatchLimit: cfg.BatchLimit,
	}

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		defer conn.Close()

		deps.Repo = repositories.NewPostgresDeliveryRepository(conn)
		deps.Store = storage.NewPostgresScheduleStore(conn)
		logger.Info("using postgres storage")
	} else {
		deps.Repo = repositories.NewJSONDeliveryRepository(cfg.SeedPath)
		deps.Store = storage.NewJSONScheduleStore(cfg.SchedulePath)
		logger.Info("using json storage",
			zap.String("seed_path", cfg.SeedPath),
			zap.String("schedule_path", cfg.SchedulePath),
		)
	}

	scheduleCache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		logger.Fatal("open schedule cache", zap.Error(err))
	}
	defer closeCache()
	deps.Cache = scheduleCache

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	logger.Info("server listening", zap.String("addr", ln.Addr().String()))
	if err := serve(ctx, srv, ln, 10*time.Second); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}

// serve runs srv on ln until ctx is done, then shuts it down and returns only
// after in-flight requests finished or grace ran out.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	drained := make(chan error, 1)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()

		drained <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	// Serve returns as soon as Shutdown starts.
	if err := <-drained; err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}

// openCache prefers Redis when REDIS_URL is set and falls back to an in-process LRU.
func openCache(ctx context.Context, cfg *config.Config) (ports.ScheduleCache, func(), error) {
	if cfg.RedisURL == "" {
		lru, err := cache.NewLRUScheduleCache(cfg.CacheSize)
		if err != nil {
			return nil, nil, err
		}
		return lru, func() {}, nil
	}

	rc, err := cache.NewRedisScheduleCache(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}

	return rc, func() { _ = rc.Close() }, nil
}

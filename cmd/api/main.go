package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/futscout/futscout/internal/config"
	"github.com/futscout/futscout/internal/dataset"
	"github.com/futscout/futscout/internal/handlers"
	"github.com/futscout/futscout/internal/logic"
)

func main() {
	cfg, err := config.LoadAPI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	sugar := logger.Sugar()

	store, err := dataset.Open()
	if err != nil {
		sugar.Fatalw("Failed to open dataset store", "error", err)
	}
	defer store.Close()

	ctx := context.Background()
	rows, err := store.LoadCSV(ctx, cfg.DataPath)
	if err != nil {
		sugar.Fatalw("Failed to load season dataset", "path", cfg.DataPath, "error", err)
	}
	sugar.Infow("Season dataset loaded", "path", cfg.DataPath, "rows", rows)

	// Compare cache is optional: without REDIS_URL every comparison is
	// computed from the pool
	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid REDIS_URL", "error", err)
		}
		cache = redis.NewClient(opts)
		defer cache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := cache.Ping(pingCtx).Err(); err != nil {
			sugar.Warnw("Redis unreachable, running without compare cache", "error", err)
			cache = nil
		}
		cancel()
	}

	compare := logic.NewCompareService(store, cache, cfg.CacheTTL, logger)
	handler := handlers.New(handlers.Config{
		Store:   store,
		Compare: compare,
		Logger:  logger,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(handler.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/meta/leagues", handler.GetLeagues)
	r.Get("/meta/positions", handler.GetPositions)
	r.Get("/players", handler.GetPlayers)
	r.Get("/compare", handler.GetCompare)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		sugar.Infow("Stats API listening", "addr", srv.Addr, "env", cfg.Env)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		sugar.Fatalw("Server error", "error", err)

	case sig := <-shutdown:
		sugar.Infow("Shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			sugar.Warnw("Graceful shutdown failed, forcing close", "error", err)
			if err := srv.Close(); err != nil {
				sugar.Errorw("Could not stop server", "error", err)
			}
		}
	}

	sugar.Info("Shutdown complete")
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		return zap.Must(zap.NewProduction())
	}
	return zap.Must(zap.NewDevelopment())
}

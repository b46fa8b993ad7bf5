package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/futscout/futscout/internal/client"
	"github.com/futscout/futscout/internal/config"
	"github.com/futscout/futscout/internal/dashboard"
)

func main() {
	cfg, err := config.LoadDashboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	sugar := logger.Sugar()

	api := client.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	ctrl := dashboard.NewController(api, api.BaseURL(), logger)

	// Bootstrap runs before the server accepts traffic. A dead backend
	// still yields a usable page with the connectivity banner.
	initCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	ctrl.Init(initCtx)
	cancel()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      dashboard.NewServer(ctrl, logger).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		sugar.Infow("Dashboard listening", "addr", srv.Addr, "api", cfg.APIBaseURL, "env", cfg.Env)
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

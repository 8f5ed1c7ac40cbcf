package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/quicksay/quicksay-web/cmd/mainconfig"
	"github.com/quicksay/quicksay-web/internal/app/bootstrap"
	appconfig "github.com/quicksay/quicksay-web/internal/config"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting quicksay intake API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	srv, err := newServer(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// In-flight submissions finish their sink chain before exit.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newServer(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*http.Server, error) {
	deps := bootstrap.Deps{}
	ses, err := mainconfig.NewSESClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if ses != nil {
		deps.SES = ses
	}

	app, err := bootstrap.Build(ctx, cfg, logger, deps)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SinkTimeout*3 + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

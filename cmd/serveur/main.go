package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/serveur-http/serveur/internal/accesslog"
	"github.com/serveur-http/serveur/internal/config"
	"github.com/serveur-http/serveur/internal/pipeline"
	"github.com/serveur-http/serveur/internal/server"
	"github.com/serveur-http/serveur/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdownTracer, err := telemetry.InitTracer("serveur", logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	var store *accesslog.Store
	if cfg.AccessLog.Path != "" {
		store, err = accesslog.Open(cfg.AccessLog.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("access log persistence enabled", slog.String("path", cfg.AccessLog.Path))
	}

	// Root and assets directory validation happens here; the process
	// must not begin listening with an unresolved root.
	p, startup, err := pipeline.New(cfg.Static, pipeline.Options{
		Logger: logger,
		Store:  store,
	})
	if err != nil {
		return err
	}
	logger.Info("static pipeline ready", slog.Any("static", startup))

	srv := server.New(cfg.Server, logger)
	srv.Router.Handle("/*", pipeline.NewHandler(p))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

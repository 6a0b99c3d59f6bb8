package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivalradar/rivalradar/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting rivalradar",
		"store_backend", cfg.Store.Backend,
		"http_addr", cfg.HTTP.Addr,
		"dev", cfg.IsDev)

	store, err := bootstrap.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close report store failed", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(ctx, &bootstrap.ServiceDeps{
		Config: &cfg,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics sink failed", "error", cerr)
		}
	}()

	server, err := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// Block until interrupted, then drain in-flight requests.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	return bootstrap.ShutdownHTTPServer(ctx, server, logger)
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/clim-settings-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/clim-settings-service/internal/adapter/kafka"
	"github.com/couchcryptid/clim-settings-service/internal/catalog"
	"github.com/couchcryptid/clim-settings-service/internal/clim"
	"github.com/couchcryptid/clim-settings-service/internal/config"
	"github.com/couchcryptid/clim-settings-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load(catalog.LoadOptions{OverridePath: cfg.CatalogOverridePath})
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	metrics.RecordCatalogSizes(cat.Sizes())
	logger.Info("catalog loaded", "override", cfg.CatalogOverridePath, "variables", len(cat.Variables()), "shapes", len(cat.ShapeAnnotation()))

	dispatcher := kafkaadapter.NewDispatcher(cfg, logger, metrics)
	settings := clim.New(cat, dispatcher, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, settings, dispatcher, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := dispatcher.Close(); err != nil {
		logger.Error("kafka dispatcher close error", "error", err)
	}

	logger.Info("shutdown complete")
}

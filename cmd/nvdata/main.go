package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/nvdata-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/nvdata-service/internal/adapter/kafka"
	"github.com/couchcryptid/nvdata-service/internal/adapter/upstream"
	"github.com/couchcryptid/nvdata-service/internal/config"
	"github.com/couchcryptid/nvdata-service/internal/normalize"
	"github.com/couchcryptid/nvdata-service/internal/observability"
	"github.com/couchcryptid/nvdata-service/internal/pipeline"
	"github.com/couchcryptid/nvdata-service/internal/regions"
	"github.com/couchcryptid/nvdata-service/internal/service"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()
	store := regions.NewStore(os.DirFS(cfg.RegionsDir), cfg.RegionsLang, clock, logger, metrics)
	if err := store.Load(); err != nil {
		// The API still answers with empty results; /readyz reports the failure.
		logger.Error("failed to load region data", "dir", cfg.RegionsDir, "error", err)
	}
	go store.Watch(ctx, cfg.RegionsReloadInterval)

	aineva := upstream.NewClient(upstream.SourceAineva, cfg.AinevaURL, cfg.UpstreamTimeout, logger, metrics)
	arpav := upstream.NewClient(upstream.SourceArpav, cfg.ArpavURL, cfg.UpstreamTimeout, logger, metrics)
	svc := service.New(aineva, arpav, store, normalize.Compact{}, logger, metrics)

	// Snapshot publisher (feature-flagged via PUBLISH_ENABLED). When enabled,
	// /readyz also waits for the first published snapshot.
	var readiness sharedobs.ReadinessChecker = store
	var writer *kafkaadapter.Writer
	var publisher *pipeline.Pipeline
	if cfg.PublishEnabled {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = pipeline.New(svc, writer, clock, logger, metrics, cfg.PublishInterval)
		readiness = observability.AllReady(store, publisher)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, readiness, logger, metrics)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start snapshot publisher.
	if publisher != nil {
		go func() {
			if err := publisher.Run(ctx); err != nil {
				logger.Error("snapshot publisher error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	observability.ShutdownTracing(shutdownCtx, shutdownTracing, logger)

	logger.Info("shutdown complete")
}

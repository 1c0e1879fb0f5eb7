package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/burakozcn01/turkiye-deprem-takip/config"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/api"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/database"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/dedup"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/logger"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/metrics"
	custommiddleware "github.com/burakozcn01/turkiye-deprem-takip/internal/middleware"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/notify"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/pipeline"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/source"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/store"
)

var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Starting earthquake tracker", "version", version)

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close(ctx)

	st := store.New(db)
	if err := st.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure schema", "error", err)
	}

	deduper := dedup.New(cfg.Ingest.SeenCapacity, cfg.Ingest.RecentCapacity)
	subs := notify.NewSubscriptions()
	notifier := notify.New(subs, cfg.Push)

	sources := []source.Source{
		source.NewEMSCSource(cfg.Ingest.EMSCURL, cfg.Ingest.FetchTimeout),
		source.NewKandilliSource(cfg.Ingest.KandilliURL, cfg.Ingest.FetchTimeout),
		source.NewAFADSource(cfg.Ingest.AFADURL, cfg.Ingest.FetchTimeout),
	}

	pipe := pipeline.New(sources, deduper, st, notifier, cfg.Ingest)
	go func() {
		if err := pipe.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Ingestion loop exited", "error", err)
		}
	}()

	handler := api.NewHandler(st, deduper, subs, cfg.Push, cfg.Server.StaticDir, version)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.Logging)
	r.Use(custommiddleware.Metrics)
	r.Use(custommiddleware.CORS)
	r.Use(custommiddleware.Security)
	r.Use(chimiddleware.Recoverer)

	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsSrv = startMetricsServer(cfg.Metrics)
	}

	go func() {
		logger.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutdown signal received", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", "error", err)
		}
	}

	logger.Info("Shutdown complete")
}

func startMetricsServer(cfg config.MetricsConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		logger.Info("Metrics server starting", "addr", srv.Addr, "path", cfg.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "error", err)
		}
	}()

	return srv
}

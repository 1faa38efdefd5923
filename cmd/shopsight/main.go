// Package main wires together the insights service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shopsight/shopsight/internal/api"
	"github.com/shopsight/shopsight/internal/clock/system"
	"github.com/shopsight/shopsight/internal/competitors"
	"github.com/shopsight/shopsight/internal/config"
	"github.com/shopsight/shopsight/internal/extract"
	collyfetcher "github.com/shopsight/shopsight/internal/fetcher/colly"
	"github.com/shopsight/shopsight/internal/id/uuid"
	"github.com/shopsight/shopsight/internal/insights"
	"github.com/shopsight/shopsight/internal/logging"
	"github.com/shopsight/shopsight/internal/metrics"
	"github.com/shopsight/shopsight/internal/scrape"
	"github.com/shopsight/shopsight/internal/storage/memory"
	"github.com/shopsight/shopsight/internal/storage/postgres"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store insights.Store
	if cfg.DB.DSN != "" {
		pgStore, err := postgres.NewInsightsStore(ctx, postgres.InsightsStoreConfig{
			DSN:      cfg.DB.DSN,
			Table:    cfg.DB.Table,
			MaxConns: cfg.DB.MaxConns,
			MinConns: cfg.DB.MinConns,
		})
		if err != nil {
			logger.Fatal("postgres store init failed", zap.Error(err))
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		logger.Info("no database DSN configured, using in-memory store")
		store = memory.NewInsightsStore()
	}

	clock := system.New()
	idGen := uuid.New()
	finder := competitors.NewStaticFinder()

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:      cfg.Scrape.UserAgent,
		Timeout:        cfg.RequestTimeout(),
		MaxRetries:     cfg.HTTP.MaxRetries,
		BackoffInitial: cfg.BackoffInitial(),
		BackoffMax:     cfg.BackoffMax(),
	}, logger.Named("fetcher"))

	limits := extract.Limits{
		HeroPerPage:   cfg.Scrape.HeroLimit,
		BrandMinChars: cfg.Scrape.BrandMinChars,
	}
	service := scrape.New(fetcher, clock, nil, limits, logger.Named("scrape"))

	apiServer := api.NewServer(service, store, finder, idGen, clock, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

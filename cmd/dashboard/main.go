// Package main wires together the dashboard gateway binary.
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

	"github.com/devseo/dashboard-gateway/internal/api"
	"github.com/devseo/dashboard-gateway/internal/clock/system"
	"github.com/devseo/dashboard-gateway/internal/config"
	"github.com/devseo/dashboard-gateway/internal/devseo"
	"github.com/devseo/dashboard-gateway/internal/logging"
	"github.com/devseo/dashboard-gateway/internal/metrics"
	"github.com/devseo/dashboard-gateway/internal/poll"
	"github.com/devseo/dashboard-gateway/internal/query"
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

	client, err := devseo.NewClient(devseo.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.BackendTimeout(),
		Logger:  logger.Named("devseo"),
	})
	if err != nil {
		logger.Fatal("backend client init failed", zap.Error(err))
	}

	clk := system.New()
	store := query.NewStore(clk, cfg.CacheTTL())
	queries := query.New(client, store, logger.Named("query"))
	tracker := poll.NewTracker(queries.RefreshScanReport, poll.Config{
		Interval:     cfg.PollInterval(),
		FetchTimeout: cfg.BackendTimeout(),
		Scheduler:    system.NewScheduler(),
		Logger:       logger.Named("poll"),
	})

	apiServer := api.NewServer(queries, tracker, cfg, logger.Named("api"))

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
	tracker.Close()
	logger.Info("shutdown complete")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zenchantlive/marketnews/app/api"
	"github.com/zenchantlive/marketnews/app/cache"
	"github.com/zenchantlive/marketnews/app/cfg"
	"github.com/zenchantlive/marketnews/app/database"
	"github.com/zenchantlive/marketnews/app/feed"
	"github.com/zenchantlive/marketnews/app/metrics"
	"github.com/zenchantlive/marketnews/app/news"
	"github.com/zenchantlive/marketnews/app/sources"
	"github.com/zenchantlive/marketnews/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// help was shown
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting Market News server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	catalog := sources.NewCatalog(appCfg.SourcesDir)
	if err := catalog.Run(); err != nil {
		slog.Error("Failed to load source configurations", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Source catalog loaded", "total", catalog.Count(), "enabled", catalog.EnabledCount())

	tracker := sources.NewFailureTracker()
	recorder := metrics.New()

	httpClient := &http.Client{
		Timeout: time.Duration(appCfg.FetchTimeout) * time.Second,
	}
	fetcher := feed.NewFetcher(httpClient, feed.NewParser(), tracker, appCfg.UserAgent)

	aggregator := news.NewAggregator(catalog, tracker, fetcher, recorder, appCfg.FetchBatchSize)

	resultCache := cache.New(
		time.Duration(appCfg.CacheFreshWindow)*time.Second,
		time.Duration(appCfg.CacheStaleWindow)*time.Second,
	)

	articleRepo := database.NewArticleRepository(db)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.RefreshInterval)
	scheduler := tasks.NewScheduler(aggregator, resultCache, articleRepo)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(catalog, tracker, aggregator, resultCache, articleRepo, recorder)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olucasmac/news.infinitoaocubo.com.br/app/aggregator"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/api"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/cache"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/cfg"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/database"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/sources"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// help was requested
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting news aggregation server", "version", appCfg.Version)

	sourceList, err := sources.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load sources", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded feed sources", "count", len(sourceList))

	var repo database.ItemRepository
	if appCfg.DBHost != "" {
		db, err := database.NewConnection(appCfg.DBHost, appCfg.DBPort,
			appCfg.DBUser, appCfg.DBPassword, appCfg.DBName)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database ready", "migration_version", version, "dirty", dirty)

		repo = database.NewItemRepository(db)
	} else {
		slog.Info("No database configured, running without a persistent store")
	}

	var itemCache cache.ItemCache
	if appCfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(appCfg.RedisAddr)
		if err != nil {
			slog.Error("Failed to connect to Redis", "addr", appCfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		itemCache = redisCache
		slog.Info("Connected to Redis", "addr", appCfg.RedisAddr)
	} else {
		itemCache = cache.NewMemoryCache()
		slog.Info("No Redis configured, using in-memory cache")
	}
	defer itemCache.Close()

	client := feed.NewClient(&http.Client{}, appCfg.UserAgent,
		time.Duration(appCfg.FetchTimeout)*time.Second)
	filterer := feed.NewFilterer(appCfg.ExcludedCategories)

	agg := aggregator.New(sourceList, client, filterer, itemCache, repo, aggregator.Options{
		SelfFeedURL:      appCfg.SelfFeedURL,
		RecencyWindow:    time.Duration(appCfg.RecencyWindowHours) * time.Hour,
		CacheTTL:         time.Duration(appCfg.CacheTTL) * time.Second,
		WorkerCount:      appCfg.WorkerCount,
		PlaceholderImage: appCfg.PlaceholderImage,
	})

	scheduler := aggregator.NewScheduler(agg, time.Duration(appCfg.CycleInterval)*time.Minute)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Scheduler started", "interval_minutes", appCfg.CycleInterval, "workers", appCfg.WorkerCount)

	handler := api.NewHandler(itemCache, agg, repo)
	server := api.NewServer(handler)

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
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// scheduler and cache close via defers, after the server stops
	// accepting requests
	slog.Info("Shutdown complete")
}

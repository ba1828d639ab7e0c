// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

// Package main is the entry point for the Garderobe server application.
//
// Garderobe is a self-hosted smart wardrobe backend. It ranks a user's
// wardrobe items against a recommendation context using vector
// similarity, filters out unavailable candidates (laundry, season,
// formality), composes outfit recommendations grouped by category, and
// attaches weather advisories from an external provider. Composed
// results and weather readings are held in TTL caches.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from config file and environment (Koanf v2)
//  2. Wardrobe store: Open the BadgerDB item store
//  3. Caches: Create the recommendation, weather, and forecast TTL caches
//  4. Clients: Embedding and weather provider clients with circuit breakers
//  5. Engine: Recommendation engine wired to the store, embedder, and cache
//  6. HTTP server: REST API under /api/v1 plus /metrics
//  7. Supervisor tree: HTTP server and cache sweeper under suture supervision
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): GARDEROBE_* environment variables, then the config
// file (config.yaml or GARDEROBE_CONFIG_PATH), then built-in defaults.
//
// Minimal production setup:
//
//	export GARDEROBE_WEATHER_CLIENT_API_KEY=your-openweathermap-key
//	export GARDEROBE_EMBEDDING_API_KEY=your-embedding-key
//	export GARDEROBE_WARDROBE_PATH=/data/garderobe
//	./garderobe
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests to drain
// (server.shutdown_timeout), and closes the wardrobe store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/garderobe-app/garderobe/internal/api"
	"github.com/garderobe-app/garderobe/internal/cache"
	"github.com/garderobe-app/garderobe/internal/config"
	"github.com/garderobe-app/garderobe/internal/embedding"
	"github.com/garderobe-app/garderobe/internal/logging"
	"github.com/garderobe-app/garderobe/internal/metrics"
	"github.com/garderobe-app/garderobe/internal/recommend"
	"github.com/garderobe-app/garderobe/internal/supervisor"
	"github.com/garderobe-app/garderobe/internal/supervisor/services"
	"github.com/garderobe-app/garderobe/internal/wardrobe"
	"github.com/garderobe-app/garderobe/internal/weather"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(cfg.Logging)

	logging.Info().
		Str("version", version).
		Str("wardrobe_path", cfg.Wardrobe.Path).
		Msg("Starting Garderobe")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	// Open the wardrobe item store
	store, closeStore, err := wardrobe.Open(cfg.Wardrobe.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Wardrobe.Path).Msg("Failed to open wardrobe store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logging.Error().Err(err).Msg("Error closing wardrobe store")
		}
	}()
	logging.Info().Msg("Wardrobe store opened")

	// TTL caches for composed results and weather readings
	caches := map[string]*cache.Cache{
		"recommendations": cache.New("recommendations", cfg.Recommend.CacheTTL),
		"weather":         cache.New("weather", cfg.Weather.CurrentTTL),
		"forecast":        cache.New("forecast", cfg.Weather.ForecastTTL),
	}

	// External provider clients, each behind its own circuit breaker
	embedder := embedding.NewClient(cfg.Embedding)
	weatherClient := weather.NewClient(cfg.Weather.Client)
	weatherSvc := weather.NewService(weatherClient, caches["weather"], caches["forecast"], logging.Logger())

	if cfg.Weather.Client.APIKey == "" {
		logging.Warn().Msg("Weather provider API key not configured - weather requests will fail")
	}
	if cfg.Embedding.APIKey == "" {
		logging.Warn().Msg("Embedding provider API key not configured - recommendations will fail")
	}

	engine, err := recommend.NewEngine(cfg.Recommend, logging.Logger(), store, embedder, store, caches["recommendations"])
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(engine, weatherSvc, store, caches, logging.Logger())
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Cache.SweepInterval > 0 {
		tree.AddMaintenanceService(services.NewSweeperService(caches, cfg.Cache.SweepInterval, logging.Logger()))
		logging.Info().Dur("interval", cfg.Cache.SweepInterval).Msg("Cache sweeper added to supervisor tree")
	} else {
		logging.Info().Msg("Cache sweeper disabled (cache.sweep_interval = 0), entries expire lazily")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

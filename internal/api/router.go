// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garderobe-app/garderobe/internal/middleware"
)

// RouterConfig holds router-level settings.
type RouterConfig struct {
	// CORSOrigins lists allowed origins. Empty allows none.
	CORSOrigins []string

	// RateLimitReqs is the per-IP request budget per window.
	RateLimitReqs int

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration
}

// NewRouter builds the HTTP handler tree with the full middleware stack.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Prometheus scrape endpoint outside the versioned prefix.
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Health endpoints get a permissive limit so monitoring stays cheap.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", handler.HealthReady)
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		r.Use(middleware.Metrics)

		r.Route("/owners/{ownerID}", func(r chi.Router) {
			r.Get("/recommendations", handler.Recommendations)
			r.Delete("/recommendations", handler.InvalidateRecommendations)

			r.Get("/items", handler.ListItems)
			r.Route("/items/{itemID}", func(r chi.Router) {
				r.Get("/", handler.GetItem)
				r.Put("/", handler.PutItem)
				r.Delete("/", handler.DeleteItem)
				r.Put("/cleanliness", handler.SetCleanliness)
				r.Post("/hamper", handler.AddToHamper)
				r.Delete("/hamper", handler.RemoveFromHamper)
			})
		})

		r.Route("/weather", func(r chi.Router) {
			r.Get("/current", handler.WeatherCurrent)
			r.Get("/forecast", handler.WeatherForecast)
		})

		r.Route("/cache", func(r chi.Router) {
			r.Get("/stats", handler.CacheStats)
			r.Get("/{name}/entries", handler.CacheEntries)
			r.Delete("/{name}", handler.CacheClear)
			r.Delete("/{name}/expired", handler.CacheSweep)
		})
	})

	return r
}

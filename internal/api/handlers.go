// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package api

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/garderobe-app/garderobe/internal/cache"
	"github.com/garderobe-app/garderobe/internal/recommend"
	"github.com/garderobe-app/garderobe/internal/wardrobe"
	"github.com/garderobe-app/garderobe/internal/weather"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	engine  *recommend.Engine
	weather *weather.Service
	store   *wardrobe.Store
	caches  map[string]*cache.Cache
	logger  zerolog.Logger
	started time.Time
}

// NewHandler creates the handler set. The caches map is keyed by instance
// name ("recommendations", "weather", "forecast") and drives the cache
// management endpoints.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(engine *recommend.Engine, weatherSvc *weather.Service, store *wardrobe.Store, caches map[string]*cache.Cache, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		weather: weatherSvc,
		store:   store,
		caches:  caches,
		logger:  logger.With().Str("component", "api").Logger(),
		started: time.Now(),
	}
}

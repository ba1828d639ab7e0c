// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/garderobe-app/garderobe/internal/logging"
)

// CacheStats handles GET /api/v1/cache/stats. Entry counts are computed
// lazily at call time, so expired-but-unswept entries are reported as
// expired rather than valid.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats := make(map[string]interface{}, len(h.caches)+1)
	for name, c := range h.caches {
		stats[name] = c.Stats()
	}
	stats["engine"] = h.engine.Snapshot()

	respondSuccess(w, stats, start, false)
}

// CacheEntries handles GET /api/v1/cache/{name}/entries, listing keys
// with their ages for operational inspection.
func (h *Handler) CacheEntries(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	c, ok := h.caches[chi.URLParam(r, "name")]
	if !ok {
		respondError(w, http.StatusNotFound, "CACHE_NOT_FOUND", "no such cache", nil)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"cache":   c.Name(),
		"ttl_ms":  c.TTL().Milliseconds(),
		"entries": c.ListEntries(),
	}, start, false)
}

// CacheClear handles DELETE /api/v1/cache/{name}, evicting every entry.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	c, ok := h.caches[chi.URLParam(r, "name")]
	if !ok {
		respondError(w, http.StatusNotFound, "CACHE_NOT_FOUND", "no such cache", nil)
		return
	}

	removed := c.Len()
	c.Clear()

	logging.Ctx(r.Context()).Info().
		Str("cache", c.Name()).
		Int("removed", removed).
		Msg("cache cleared")

	respondSuccess(w, map[string]interface{}{
		"cache":   c.Name(),
		"removed": removed,
	}, start, false)
}

// CacheSweep handles DELETE /api/v1/cache/{name}/expired, evicting only
// entries past their TTL.
func (h *Handler) CacheSweep(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	c, ok := h.caches[chi.URLParam(r, "name")]
	if !ok {
		respondError(w, http.StatusNotFound, "CACHE_NOT_FOUND", "no such cache", nil)
		return
	}

	swept := c.SweepExpired()

	respondSuccess(w, map[string]interface{}{
		"cache":     c.Name(),
		"swept":     swept,
		"remaining": c.Len(),
	}, start, false)
}

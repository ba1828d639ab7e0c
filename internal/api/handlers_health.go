// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package api

import (
	"net/http"
	"time"
)

// HealthLive handles GET /api/v1/health/live. It answers as long as the
// process is serving requests; no dependencies are checked.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, map[string]interface{}{
		"status":         "alive",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	}, start, false)
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires the
// wardrobe store to be open; the external weather and embedding providers
// are deliberately excluded so a degraded upstream does not take the
// service out of rotation.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE",
			"wardrobe store is not ready", err)
		return
	}

	caches := make(map[string]interface{}, len(h.caches))
	for name, c := range h.caches {
		caches[name] = c.Len()
	}

	respondSuccess(w, map[string]interface{}{
		"status":         "ready",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"cache_entries":  caches,
	}, start, false)
}

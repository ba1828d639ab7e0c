// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/garderobe-app/garderobe/internal/logging"
	"github.com/garderobe-app/garderobe/internal/metrics"
	"github.com/garderobe-app/garderobe/internal/recommend"
)

// recommendationRequest carries the validated query parameters.
type recommendationRequest struct {
	OwnerID   string `validate:"required"`
	Season    string `validate:"omitempty,wardrobe_season"`
	Formality string `validate:"omitempty,wardrobe_formality"`
}

// Recommendations handles GET /api/v1/owners/{ownerID}/recommendations.
//
// Query parameters (all optional): occasion, weather, season, formality,
// query. Identical parameters within the cache TTL return the identical
// cached composition.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")

	req := recommendationRequest{
		OwnerID:   ownerID,
		Season:    r.URL.Query().Get("season"),
		Formality: r.URL.Query().Get("formality"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	reqCtx := recommend.Context{
		Occasion:  r.URL.Query().Get("occasion"),
		Weather:   r.URL.Query().Get("weather"),
		Season:    req.Season,
		Formality: req.Formality,
		Query:     r.URL.Query().Get("query"),
	}

	result, err := h.engine.Recommend(r.Context(), ownerID, reqCtx)
	if err != nil {
		metrics.RecordRecommendation("error", time.Since(start))
		switch {
		case errors.Is(err, recommend.ErrOwnerRequired):
			respondError(w, http.StatusBadRequest, "OWNER_REQUIRED", "owner ID is required", nil)
		case errors.Is(err, recommend.ErrEmbeddingUnavailable):
			respondError(w, http.StatusBadGateway, "EMBEDDING_UNAVAILABLE",
				"the embedding provider is unavailable; try again later", err)
		default:
			respondError(w, http.StatusInternalServerError, "RECOMMENDATION_FAILED",
				"failed to compose recommendations", err)
		}
		return
	}

	// A result generated before this request started came from the cache.
	cached := result.GeneratedAt.Before(start)
	if cached {
		metrics.RecordRecommendation("cached", 0)
	} else {
		metrics.RecordRecommendation("composed", time.Since(start))
	}
	metrics.RecordCacheLookup("recommendations", cached)

	logging.Ctx(r.Context()).Debug().
		Str("owner_id", ownerID).
		Bool("cached", cached).
		Int("total_items", result.TotalItems).
		Msg("recommendations served")

	respondSuccess(w, result, start, cached)
}

// InvalidateRecommendations handles DELETE /api/v1/owners/{ownerID}/recommendations.
// It evicts every cached composition for the owner, forcing the next
// request to recompute against current wardrobe state.
func (h *Handler) InvalidateRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")
	if ownerID == "" {
		respondError(w, http.StatusBadRequest, "OWNER_REQUIRED", "owner ID is required", nil)
		return
	}

	evicted := h.engine.InvalidateOwner(ownerID)

	logging.Ctx(r.Context()).Info().
		Str("owner_id", ownerID).
		Int("evicted", evicted).
		Msg("recommendation cache invalidated")

	respondSuccess(w, map[string]interface{}{
		"owner_id": ownerID,
		"evicted":  evicted,
	}, start, false)
}

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
	"github.com/goccy/go-json"

	"github.com/garderobe-app/garderobe/internal/logging"
	"github.com/garderobe-app/garderobe/internal/models"
	"github.com/garderobe-app/garderobe/internal/wardrobe"
)

// ListItems handles GET /api/v1/owners/{ownerID}/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")

	items, err := h.store.ItemsByOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"failed to list wardrobe items", err)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"owner_id": ownerID,
		"items":    items,
		"count":    len(items),
	}, start, false)
}

// GetItem handles GET /api/v1/owners/{ownerID}/items/{itemID}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")
	itemID := chi.URLParam(r, "itemID")

	item, err := h.store.GetItem(r.Context(), ownerID, itemID)
	if err != nil {
		if errors.Is(err, wardrobe.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "wardrobe item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"failed to load wardrobe item", err)
		return
	}

	respondSuccess(w, item, start, false)
}

// PutItem handles PUT /api/v1/owners/{ownerID}/items/{itemID}. The body
// is a full item snapshot; IDs in the path are authoritative.
//
// Cached recommendations are NOT evicted here: a composed result stays
// valid for its full TTL even when the wardrobe changes underneath it.
// Clients that need the change reflected immediately invalidate
// explicitly via DELETE /owners/{ownerID}/recommendations.
func (h *Handler) PutItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")
	itemID := chi.URLParam(r, "itemID")

	var item models.WardrobeItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not a valid item", err)
		return
	}
	item.ID = itemID
	item.OwnerID = ownerID
	item.Category = models.ParseCategory(string(item.Category))
	item.Formality = models.ParseFormality(string(item.Formality))
	item.Season = models.ParseSeason(string(item.Season))
	item.Cleanliness = models.ParseCleanliness(string(item.Cleanliness))
	item.UpdatedAt = time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = item.UpdatedAt
	}

	if err := h.store.PutItem(r.Context(), &item); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"failed to store wardrobe item", err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("owner_id", ownerID).
		Str("item_id", itemID).
		Msg("wardrobe item stored")

	respondSuccess(w, &item, start, false)
}

// DeleteItem handles DELETE /api/v1/owners/{ownerID}/items/{itemID}.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")
	itemID := chi.URLParam(r, "itemID")

	if err := h.store.DeleteItem(r.Context(), ownerID, itemID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"failed to delete wardrobe item", err)
		return
	}

	respondSuccess(w, map[string]string{"deleted": itemID}, start, false)
}

// cleanlinessRequest is the body for cleanliness updates.
type cleanlinessRequest struct {
	State string `json:"state" validate:"required,oneof=fresh worn_wearable needs_wash in_laundry"`
}

// SetCleanliness handles PUT /api/v1/owners/{ownerID}/items/{itemID}/cleanliness.
func (h *Handler) SetCleanliness(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")
	itemID := chi.URLParam(r, "itemID")

	var req cleanlinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	state := models.ParseCleanliness(req.State)
	if err := h.store.SetCleanliness(r.Context(), ownerID, itemID, state); err != nil {
		if errors.Is(err, wardrobe.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "wardrobe item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"failed to update cleanliness", err)
		return
	}

	respondSuccess(w, map[string]string{"item_id": itemID, "state": req.State}, start, false)
}

// AddToHamper handles POST /api/v1/owners/{ownerID}/items/{itemID}/hamper.
// A hampered item is excluded from the next composition regardless of its
// cleanliness flag; already-cached compositions keep serving until their
// TTL or an explicit invalidation.
func (h *Handler) AddToHamper(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")
	itemID := chi.URLParam(r, "itemID")

	if err := h.store.AddToHamper(r.Context(), ownerID, itemID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"failed to add item to hamper", err)
		return
	}

	respondSuccess(w, map[string]string{"item_id": itemID, "hamper": "added"}, start, false)
}

// RemoveFromHamper handles DELETE /api/v1/owners/{ownerID}/items/{itemID}/hamper.
func (h *Handler) RemoveFromHamper(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ownerID := chi.URLParam(r, "ownerID")
	itemID := chi.URLParam(r, "itemID")

	if err := h.store.RemoveFromHamper(r.Context(), ownerID, itemID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"failed to remove item from hamper", err)
		return
	}

	respondSuccess(w, map[string]string{"item_id": itemID, "hamper": "removed"}, start, false)
}

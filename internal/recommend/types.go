// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package recommend

import (
	"time"

	"github.com/garderobe-app/garderobe/internal/models"
)

// Context carries the request context that drives a recommendation.
// All fields are optional; an empty context falls back to a generic query.
type Context struct {
	// Occasion is the event the outfit is for (e.g. "work", "date night").
	Occasion string `json:"occasion,omitempty"`

	// Weather is a short weather description (e.g. "rainy", "hot").
	Weather string `json:"weather,omitempty"`

	// Season filters candidates to a season when set.
	Season string `json:"season,omitempty"`

	// Formality filters candidates to a formality level when set.
	Formality string `json:"formality,omitempty"`

	// Query is free-text styling notes from the user.
	Query string `json:"query,omitempty"`
}

// IsZero reports whether no context fields are set.
func (c Context) IsZero() bool {
	return c.Occasion == "" && c.Weather == "" && c.Season == "" && c.Formality == "" && c.Query == ""
}

// FilterSpec narrows an owner's item set before ranking. All populated
// criteria are conjunctive. It is transient, constructed per request.
type FilterSpec struct {
	// OwnerID is required; only this owner's items are eligible.
	OwnerID string

	// Category restricts to a garment type when set.
	Category models.Category

	// Color is matched case-insensitively as a substring of the
	// primary color when set.
	Color string

	// Formality restricts to a formality level when set.
	Formality models.Formality

	// Season restricts to a season when set.
	Season models.Season

	// ExcludeIDs removes specific items regardless of their cleanliness
	// flag. This is the authoritative exclusion source: laundry hamper
	// records may be more current than the item's own state.
	ExcludeIDs map[string]struct{}

	// RequireEmbedding excludes items without an embedding vector.
	// Set for similarity-ranked flows, since such items cannot be scored.
	RequireEmbedding bool
}

// ScoredItem is a candidate item with its similarity to the query
// embedding. Produced by ranking, consumed by composition.
type ScoredItem struct {
	Item models.WardrobeItem `json:"item"`

	// Similarity is the raw cosine similarity against the query
	// embedding. Degenerate inputs score exactly 0; negative values are
	// not clamped, so anti-correlated items sort lowest.
	Similarity float64 `json:"similarity"`
}

// Result is the composed recommendation payload. It is cached whole under
// the canonical (owner, context) key; a repeat request inside the TTL
// window returns it unchanged.
type Result struct {
	// QueryText is the natural-language query the embedding was built from.
	QueryText string `json:"query_text"`

	// TotalItems is the number of ranked candidates in the result after
	// the candidate-pool cap.
	TotalItems int `json:"total_items"`

	// ItemsByCategory groups the capped ranked candidates by garment
	// category, each list ordered by descending similarity.
	ItemsByCategory map[models.Category][]ScoredItem `json:"items_by_category"`

	// TopItems is the global top selection across categories, ordered by
	// descending similarity.
	TopItems []ScoredItem `json:"top_items"`

	// ExcludedCount is the size of the exclusion set supplied with the
	// request. Informational only; it is not re-derived from the
	// exclusions actually applied.
	ExcludedCount int `json:"excluded_count"`

	// GeneratedAt is when the result was computed (not served).
	GeneratedAt time.Time `json:"generated_at"`
}

// contextKeyParams is the canonical serialization of a recommendation
// context for cache keying. The fixed field order makes the JSON
// deterministic: two semantically identical contexts always produce the
// same key. Every field that influences the query text appears here.
type contextKeyParams struct {
	Occasion  string `json:"occasion"`
	Weather   string `json:"weather"`
	Season    string `json:"season"`
	Formality string `json:"formality"`
	Query     string `json:"query"`
}

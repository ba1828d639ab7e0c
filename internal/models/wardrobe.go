// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package models

import (
	"strings"
	"time"
)

// Category classifies a wardrobe item by its garment type.
type Category string

// Wardrobe item categories.
const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
	CategoryUnknown     Category = "unknown"
)

// ParseCategory normalizes a raw category string from the document store.
// Unknown values map to CategoryUnknown rather than propagating untyped data.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryTops, CategoryBottoms, CategoryDresses, CategoryOuterwear, CategoryShoes, CategoryAccessories:
		return Category(strings.ToLower(strings.TrimSpace(s)))
	default:
		return CategoryUnknown
	}
}

// Formality classifies how dressy an item is.
type Formality string

// Formality levels, from most relaxed to most formal.
const (
	FormalityCasual      Formality = "casual"
	FormalitySmartCasual Formality = "smart_casual"
	FormalityBusiness    Formality = "business"
	FormalityFormal      Formality = "formal"
	FormalityUnknown     Formality = "unknown"
)

// ParseFormality normalizes a raw formality string.
func ParseFormality(s string) Formality {
	switch Formality(strings.ToLower(strings.TrimSpace(s))) {
	case FormalityCasual, FormalitySmartCasual, FormalityBusiness, FormalityFormal:
		return Formality(strings.ToLower(strings.TrimSpace(s)))
	default:
		return FormalityUnknown
	}
}

// Season indicates which season an item is suited for.
type Season string

// Seasons. SeasonAll marks items wearable year-round.
const (
	SeasonSpring  Season = "spring"
	SeasonSummer  Season = "summer"
	SeasonFall    Season = "fall"
	SeasonWinter  Season = "winter"
	SeasonAll     Season = "all_season"
	SeasonUnknown Season = "unknown"
)

// ParseSeason normalizes a raw season string.
func ParseSeason(s string) Season {
	switch Season(strings.ToLower(strings.TrimSpace(s))) {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAll:
		return Season(strings.ToLower(strings.TrimSpace(s)))
	default:
		return SeasonUnknown
	}
}

// Cleanliness is the enumerated laundry state of a wardrobe item.
// It directly gates recommendation eligibility: only wearable states
// (fresh, worn_wearable) may appear in recommendation results.
type Cleanliness string

// Laundry states.
const (
	CleanlinessFresh        Cleanliness = "fresh"
	CleanlinessWornWearable Cleanliness = "worn_wearable"
	CleanlinessNeedsWash    Cleanliness = "needs_wash"
	CleanlinessInLaundry    Cleanliness = "in_laundry"
)

// ParseCleanliness normalizes a raw cleanliness string.
// Unknown values default to needs_wash so that malformed documents are
// excluded from recommendations rather than surfaced.
func ParseCleanliness(s string) Cleanliness {
	switch Cleanliness(strings.ToLower(strings.TrimSpace(s))) {
	case CleanlinessFresh, CleanlinessWornWearable, CleanlinessNeedsWash, CleanlinessInLaundry:
		return Cleanliness(strings.ToLower(strings.TrimSpace(s)))
	default:
		return CleanlinessNeedsWash
	}
}

// Wearable reports whether an item in this laundry state is eligible
// for outfit recommendations.
func (c Cleanliness) Wearable() bool {
	return c == CleanlinessFresh || c == CleanlinessWornWearable
}

// Color holds the AI-detected colors of an item.
type Color struct {
	// Primary is the dominant color (e.g. "navy blue").
	Primary string `json:"primary"`

	// Secondary is an optional accent color.
	Secondary string `json:"secondary,omitempty"`
}

// WardrobeItem is a read-only snapshot of a clothing item as consumed by
// the filtering and ranking pipeline. The recommendation core never
// mutates items; writes happen through the wardrobe store.
type WardrobeItem struct {
	// ID uniquely identifies the item.
	ID string `json:"id"`

	// OwnerID identifies the user who owns the item.
	OwnerID string `json:"owner_id"`

	// Name is the display name generated from the item photo.
	Name string `json:"name,omitempty"`

	// Category is the garment type.
	Category Category `json:"category"`

	// Color holds the detected primary and secondary colors.
	Color Color `json:"color"`

	// Formality is the dressiness level.
	Formality Formality `json:"formality"`

	// Season is the suited season.
	Season Season `json:"season"`

	// Cleanliness is the current laundry state.
	Cleanliness Cleanliness `json:"cleanliness"`

	// FreshnessScore decays with wear count since the last wash (0-1).
	FreshnessScore float64 `json:"freshness_score"`

	// Archived marks items hidden from all recommendation flows.
	Archived bool `json:"archived"`

	// Embedding is the fixed-dimensionality vector produced by the
	// embedding model for the item description. Items without an
	// embedding cannot be ranked.
	Embedding []float64 `json:"embedding,omitempty"`

	// CreatedAt is when the item was first added.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the item metadata last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// HasEmbedding reports whether the item carries a usable embedding vector.
func (w *WardrobeItem) HasEmbedding() bool {
	return len(w.Embedding) > 0
}

// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package recommend

import (
	"strings"

	"github.com/garderobe-app/garderobe/internal/models"
)

// Filter selects the subset of items eligible for recommendation under the
// given spec. All rules are conjunctive:
//
//   - the item belongs to the requesting owner
//   - the item is not archived
//   - the laundry state is wearable (fresh or worn_wearable)
//   - the item is not in the exclusion set
//   - optional category/formality/season filters match exactly when set
//   - optional color filter matches the primary color as a
//     case-insensitive substring when set
//   - the item has an embedding when RequireEmbedding is set
//
// Input order is preserved, which keeps downstream tie-breaking stable.
func Filter(items []models.WardrobeItem, spec FilterSpec) []models.WardrobeItem {
	eligible := make([]models.WardrobeItem, 0, len(items))
	for _, item := range items {
		if eligibleItem(&item, &spec) {
			eligible = append(eligible, item)
		}
	}
	return eligible
}

// eligibleItem applies all conjunctive rules to a single item.
func eligibleItem(item *models.WardrobeItem, spec *FilterSpec) bool {
	if item.OwnerID != spec.OwnerID {
		return false
	}
	if item.Archived {
		return false
	}

	// The laundry-state model gates eligibility: needs_wash and in_laundry
	// items are excluded regardless of any other attribute.
	if !item.Cleanliness.Wearable() {
		return false
	}

	// ExcludeIDs is authoritative even when the cleanliness flag has not
	// caught up with the hamper record.
	if _, excluded := spec.ExcludeIDs[item.ID]; excluded {
		return false
	}

	if spec.Category != "" && item.Category != spec.Category {
		return false
	}
	if spec.Formality != "" && item.Formality != spec.Formality {
		return false
	}
	if spec.Season != "" && item.Season != spec.Season {
		return false
	}
	if spec.Color != "" && !strings.Contains(strings.ToLower(item.Color.Primary), strings.ToLower(spec.Color)) {
		return false
	}

	if spec.RequireEmbedding && !item.HasEmbedding() {
		return false
	}

	return true
}

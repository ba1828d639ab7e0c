// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package recommend

import "strings"

// defaultQueryText is used when no context fields are supplied.
const defaultQueryText = "stylish outfit"

// BuildQueryText composes the natural-language query string the embedding
// is generated from. Only fields present in the context contribute; field
// order is fixed so identical contexts always produce identical text.
//
// Free-text notes are appended last. They participate in the cache key for
// the same reason: everything that influences the embedding must influence
// the key, and nothing else.
func BuildQueryText(c Context) string {
	parts := make([]string, 0, 5)

	if c.Occasion != "" {
		parts = append(parts, "outfit for "+c.Occasion)
	}
	if c.Weather != "" {
		parts = append(parts, "suitable for "+c.Weather+" weather")
	}
	if c.Season != "" {
		parts = append(parts, "in "+c.Season)
	}
	if c.Formality != "" {
		parts = append(parts, c.Formality+" style")
	}
	if c.Query != "" {
		parts = append(parts, c.Query)
	}

	if len(parts) == 0 {
		return defaultQueryText
	}
	return strings.Join(parts, ", ")
}

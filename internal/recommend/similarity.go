// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package recommend

import "math"

// CosineSimilarity computes dot(a,b) / (||a|| * ||b||).
//
// Degenerate inputs are never an error: if either vector is empty, the
// lengths differ, or either has zero magnitude, the similarity is exactly 0.
// For embeddings from a consistent model the result lies in roughly [-1, 1];
// negative values are not clamped.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

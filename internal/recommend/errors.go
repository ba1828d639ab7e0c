// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package recommend

import "errors"

// Errors surfaced by the recommendation engine.
var (
	// ErrEmbeddingUnavailable indicates the embedding provider failed or
	// timed out. Recoverable: the caller may retry or fall back to a
	// non-ranked listing. The engine never ranks without a query embedding.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrOwnerRequired indicates a request without an owner identity.
	ErrOwnerRequired = errors.New("owner id is required")
)

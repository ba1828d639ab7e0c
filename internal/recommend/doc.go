// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

// Package recommend implements the outfit recommendation engine: candidate
// filtering, cosine-similarity ranking over embedding vectors, and
// composition of ranked candidates into categorized suggestions with
// write-through caching.
//
// The engine depends only on narrow provider interfaces (ItemProvider,
// Embedder, LaundryProvider) so it can be wired to the wardrobe store and
// the embedding client without circular imports, and tested with fakes.
package recommend

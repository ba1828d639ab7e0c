// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

// Package models defines the typed domain records shared across the
// application: wardrobe items with their enumerated attributes, weather
// readings and advisories, and the standard API response envelope.
//
// The upstream document store holds loosely typed metadata documents; this
// package is the boundary where those documents become explicit tagged
// records. Unknown enum values are normalized here rather than propagated
// through filtering and ranking.
package models

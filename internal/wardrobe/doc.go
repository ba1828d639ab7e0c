// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

// Package wardrobe provides the read-side item snapshot store the
// recommendation engine consumes. The primary document database lives
// upstream; this store holds per-owner item snapshots and laundry hamper
// records in BadgerDB so filtering and ranking never touch the upstream
// store on the request path.
//
// The store implements the engine's ItemProvider and LaundryProvider
// interfaces.
package wardrobe

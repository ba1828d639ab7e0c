// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

// Package cache provides a thread-safe in-memory TTL cache.
//
// The application runs several independently configured instances: a short
// TTL cache for current weather conditions, a longer one for multi-day
// forecasts, and one for recommendation results. Each instance is an
// explicitly constructed, injectable component; there is no ambient
// singleton.
//
// Expiry is evaluated lazily on every read, so Get can never return stale
// data. A periodic SweepExpired pass (run as a supervised service) bounds
// memory but is not required for correctness.
//
// Time is read through an injected Clock so TTL behavior is testable
// without sleeping.
package cache

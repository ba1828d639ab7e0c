// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

// Package weather provides weather lookups with TTL caching and the pure
// advisory mapper that turns a reading into categorical clothing guidance.
//
// Current conditions and multi-day forecasts are cached in separate
// instances with different TTLs, keyed by coordinates rounded to two
// decimal places so nearby requests share a cache line. The upstream
// provider sits behind a circuit breaker and a client-side rate limiter.
package weather

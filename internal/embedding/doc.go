// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

// Package embedding provides the client for the external embedding
// provider. The recommendation engine treats embedding generation as an
// opaque, possibly-failing call; this package adds the resilience around
// it: request timeouts, a circuit breaker, and a client-side rate limiter.
package embedding

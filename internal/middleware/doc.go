// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

/*
Package middleware provides HTTP middleware for the API router.

The middleware here covers request tracking and metrics; generic
concerns (CORS, rate limiting, compression, panic recovery) come from
chi and its ecosystem and are wired directly in the router.

  - RequestID: UUID-based request tracking for distributed tracing,
    integrated with the logging package's context fields
  - Metrics: Prometheus instrumentation keyed on chi route patterns
    so path parameters do not explode label cardinality
*/
package middleware

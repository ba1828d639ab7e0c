// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

/*
Package api provides the HTTP surface of the service using the Chi router.

Endpoints are grouped under /api/v1:

  - /health/live, /health/ready: liveness and readiness probes
  - /owners/{ownerID}/recommendations: composed outfit recommendations
  - /owners/{ownerID}/items...: wardrobe item snapshots and laundry state
  - /weather/current, /weather/forecast: weather with outfit advisories
  - /cache...: operational cache inspection and invalidation

All responses use the models.APIResponse envelope. Prometheus metrics
are exposed at /metrics outside the versioned prefix.
*/
package api

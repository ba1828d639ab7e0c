// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

/*
Package metrics provides Prometheus metrics collection and export.

The package instruments the recommendation pipeline, in-process caches,
external provider clients, and API endpoints. Metrics are exposed at the
/metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - recommendation_compose_duration_seconds: Full compose latency (histogram)
  - recommendations_total: Requests by result (counter)
    Labels: result (cached, composed, error)
  - recommendation_eligible_candidates: Eligible items per compose (histogram)

Cache Metrics:
  - cache_hits_total, cache_misses_total: Lookup outcomes (counter)
    Labels: cache (recommendations, weather, forecast)
  - cache_entries: Current entry count including expired (gauge)
  - cache_evictions_total: TTL sweep evictions (counter)

Provider Metrics:
  - provider_request_duration_seconds: External call latency (histogram)
    Labels: provider (weather, embedding)
  - provider_errors_total: Failed external calls (counter)
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)

API Metrics:
  - api_requests_total: Requests by method/endpoint/status (counter)
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)

Example PromQL queries:

	# Recommendation cache hit rate
	sum(rate(cache_hits_total{cache="recommendations"}[5m]))
	/
	(sum(rate(cache_hits_total{cache="recommendations"}[5m]))
	 + sum(rate(cache_misses_total{cache="recommendations"}[5m])))

	# Compose p95 latency
	histogram_quantile(0.95, rate(recommendation_compose_duration_seconds_bucket[5m]))

All metric recording functions are thread-safe; the Prometheus client
library handles synchronization internally. Labels stay low-cardinality:
endpoint labels use chi route patterns, not raw paths, and owner IDs are
never used as labels.
*/
package metrics

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered on the default registry at package init through promauto
and exposed by the API server at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Recommendation Metrics:
  - recommendations_total: Requests by outcome (counter)
    Labels: outcome (ok, empty, error)
  - recommendation_duration_seconds: Engine latency (histogram)
  - recommendation_places: Places returned per request (histogram)
  - recommendation_cold_starts_total: Requests for users without history (counter)
  - recommendation_cohort_fallbacks_total: Requests served from the full ranking (counter)
  - recommendation_sampled_category_total: Sampled categories (counter)
    Labels: category

Dataset Metrics:
  - dataset_load_duration_seconds: Full reload time (histogram)
  - dataset_load_errors_total: Failed reloads (counter)
    Labels: error_type (fetch, query, other)
  - dataset_rows, dataset_users: Size of the active table (gauges)
  - dataset_last_load_timestamp: Unix time of the last successful load (gauge)
  - dataset_fetch_duration_seconds: Source download time (histogram)
    Labels: source
  - duckdb_query_duration_seconds, duckdb_query_errors_total: Preparation queries

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total: Transitions (counter)
    Labels: name, from_state, to_state

Cache Metrics:
  - cache_hits_total, cache_misses_total: Download cache lookups (counters)
    Labels: cache_type

# Example PromQL

	# Share of empty recommendations
	sum(rate(recommendations_total{outcome="empty"}[5m])) / sum(rate(recommendations_total[5m]))

	# p95 engine latency
	histogram_quantile(0.95, rate(recommendation_duration_seconds_bucket[5m]))

	# Time since the last successful dataset load
	time() - dataset_last_load_timestamp

# Cardinality

Labels never carry user or place identifiers. The category label is bounded by
the configured vocabulary, and endpoint labels use chi route patterns rather
than raw paths.

# Thread Safety

All recording functions are safe for concurrent use. The Prometheus client
library handles synchronization internally.
*/
package metrics

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

/*
Package api exposes the recommendation engine over HTTP.

Routes are served by a chi router:

	GET  /health/live
	GET  /health/ready
	GET  /metrics
	GET  /api/v1/recommendations?user_id=&category=&city=[&seed=]
	GET  /api/v1/categories
	GET  /api/v1/cities
	GET  /api/v1/rankings?city=[&age_range=]
	GET  /api/v1/users/{id}/affinity
	GET  /api/v1/users/{id}/transitions
	GET  /api/v1/dataset/status
	POST /api/v1/dataset/reload

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "UNKNOWN_CITY", "message": "..."}, "meta": {...}}

Engine errors map to status codes in writeEngineError: an unknown category or
city is a 400, a dataset that has not loaded yet is a 503 and a request that
exceeds the configured timeout is a 504.

The /api/v1 group is rate limited with go-chi/httprate, instrumented with
Prometheus, gzip-compressed and, when AUTH_MODE=jwt, authenticated with
bearer tokens.
*/
package api

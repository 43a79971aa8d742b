// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"}, // "ok", "empty", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	RecommendationPlaces = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_places",
			Help:    "Number of places returned per recommendation",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 10, 20},
		},
	)

	RecommendationColdStarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cold_starts_total",
			Help: "Total number of recommendations served to users without history",
		},
	)

	RecommendationCohortFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cohort_fallbacks_total",
			Help: "Total number of recommendations that fell back to the full ranking",
		},
	)

	RecommendedCategory = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_sampled_category_total",
			Help: "Total number of times each category was sampled",
		},
		[]string{"category"},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
		[]string{"error_type"}, // "fetch", "query", "other"
	)

	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Number of interaction rows in the active table",
		},
	)

	DatasetUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_users",
			Help: "Number of distinct users in the active table",
		},
	)

	DatasetLastLoad = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_last_load_timestamp",
			Help: "Unix timestamp of the last successful dataset load",
		},
	)

	DatasetFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_fetch_duration_seconds",
			Help:    "Duration of dataset source downloads in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the outcome of one recommendation request.
// A non-nil err counts as an error regardless of the other arguments.
func RecordRecommendation(category string, places int, coldStart, cohortFallback bool, duration time.Duration, err error) {
	RecommendationDuration.Observe(duration.Seconds())

	if err != nil {
		RecommendationsTotal.WithLabelValues("error").Inc()
		return
	}

	outcome := "ok"
	if places == 0 {
		outcome = "empty"
	}
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationPlaces.Observe(float64(places))
	RecommendedCategory.WithLabelValues(category).Inc()

	if coldStart {
		RecommendationColdStarts.Inc()
	}
	if cohortFallback {
		RecommendationCohortFallbacks.Inc()
	}
}

// RecordDatasetLoad records a dataset load metric
func RecordDatasetLoad(duration time.Duration, rows, users int, err error) {
	DatasetLoadDuration.Observe(duration.Seconds())
	if err != nil {
		errorType := "other"
		errorMsg := err.Error()
		switch {
		case contains(errorMsg, "fetch"):
			errorType = "fetch"
		case contains(errorMsg, "query"):
			errorType = "query"
		}
		DatasetLoadErrors.WithLabelValues(errorType).Inc()
		return
	}

	DatasetRows.Set(float64(rows))
	DatasetUsers.Set(float64(users))
	DatasetLastLoad.Set(float64(time.Now().Unix()))
}

// RecordDatasetFetch records the download time of one dataset source.
func RecordDatasetFetch(source string, duration time.Duration) {
	DatasetFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// SetAppInfo publishes the build version.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// StatusLabel renders an HTTP status code as a metric label.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}

// contains reports whether s starts with substr.
func contains(s, substr string) bool {
	return strings.HasPrefix(s, substr)
}

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

/*
Package config provides centralized configuration management for Tripwise.

Configuration is layered with koanf:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, then DefaultConfigPaths)
 3. Environment variables, which win over everything else

Only mapped environment variables are read; anything else in the process
environment is ignored. List values (DATASET_AGE_BINS, CORS_ORIGINS, ...)
are comma separated.

# Configuration Structure

  - ServerConfig: HTTP listener, timeouts, per-request deadline
  - DatasetConfig: CSV sources, download cache, age bins, category translations
  - RecommendConfig: seed, top-k, budget multiplier, affinity fallbacks
  - SecurityConfig: auth mode, JWT secret, CORS, rate limiting
  - LoggingConfig: zerolog level and format

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - REQUEST_TIMEOUT: Recommendation deadline (default: 10s)

Dataset:
  - DATASET_PLACES_URL, DATASET_RATINGS_URL, DATASET_USERS_URL: URLs or local paths
  - DATASET_CACHE_DIR: BadgerDB cache directory (default: in-memory)
  - DATASET_CACHE_TTL: Download cache lifetime (default: 24h)
  - DATASET_REFRESH_INTERVAL: Periodic reload, 0 disables (default: 0)
  - DATASET_AGE_BINS, DATASET_AGE_LABELS: Cohort bin edges and labels
  - DUCKDB_THREADS: DuckDB worker threads

Recommendation:
  - RECOMMEND_SEED, RECOMMEND_TOP_K, RECOMMEND_BUDGET_MULTIPLIER
  - RECOMMEND_FALLBACK_COUNT, RECOMMEND_FALLBACK_RATING
  - RECOMMEND_CATEGORIES, RECOMMEND_AGE_RANGES
  - RECOMMEND_UNPRICED_POLICY: unconstrained or strict

Security:
  - AUTH_MODE: none or jwt (default: none)
  - JWT_SECRET: HS256 secret, at least 32 characters
  - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	store, err := dataset.Open(cfg.DatasetConfig(), logger)
*/
package config

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Command server runs the Tripwise HTTP API.
//
// # Startup
//
//  1. Configuration: defaults, then config.yaml, then environment (koanf)
//  2. Dataset store: DuckDB, BadgerDB download cache and circuit-broken fetcher
//  3. Engine: the Markov category model over the store's table
//  4. Supervisor tree: dataset refresh in the data layer, HTTP in the api layer
//
// The server starts listening before the dataset is loaded. /health/ready
// reports 503 until the first table is published, and a failed startup load is
// retried every 30 seconds.
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8080
//	DATASET_PLACES_URL=/data/tourism_with_id.csv
//	DATASET_RATINGS_URL=/data/tourism_rating.csv
//	DATASET_USERS_URL=/data/user.csv
//	DATASET_REFRESH_INTERVAL=6h
//	AUTH_MODE=jwt
//	JWT_SECRET=$(openssl rand -base64 48)
//
// # Tokens
//
// With AUTH_MODE=jwt, issue a bearer token with the same configuration:
//
//	tripwise-server -issue-token analyst
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. In-flight requests get
// HTTP_SHUTDOWN_TIMEOUT to complete.
package main

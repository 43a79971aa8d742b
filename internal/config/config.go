// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package config

import (
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds a single recommendation request.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// DatasetConfig holds the interaction data sources and preparation settings
type DatasetConfig struct {
	// PlacesURL, RatingsURL and UsersURL accept http(s) URLs or local paths.
	PlacesURL  string `koanf:"places_url"`
	RatingsURL string `koanf:"ratings_url"`
	UsersURL   string `koanf:"users_url"`

	// CacheDir is the BadgerDB download cache directory. Empty keeps the
	// cache in memory.
	CacheDir      string        `koanf:"cache_dir"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	CacheDisabled bool          `koanf:"cache_disabled"`

	DownloadTimeout time.Duration `koanf:"download_timeout"`

	// RefreshInterval reloads the dataset periodically. 0 disables it.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	AgeBins              []float64         `koanf:"age_bins"`
	AgeLabels            []string          `koanf:"age_labels"`
	CategoryTranslations map[string]string `koanf:"category_translations"`

	// Threads is the DuckDB worker count; 0 lets DuckDB decide.
	Threads int `koanf:"threads"`
}

// RecommendConfig holds recommendation engine settings
type RecommendConfig struct {
	Seed             int64   `koanf:"seed"`
	TopK             int     `koanf:"top_k"`
	BudgetMultiplier float64 `koanf:"budget_multiplier"`
	FallbackCount    float64 `koanf:"fallback_count"`
	FallbackRating   float64 `koanf:"fallback_rating"`

	// Categories fixes the vocabulary. Empty derives it from the dataset.
	Categories []string `koanf:"categories"`

	// AgeRanges orders cohorts in rankings.
	AgeRanges []string `koanf:"age_ranges"`

	// UnpricedPolicy is "unconstrained" or "strict".
	UnpricedPolicy string `koanf:"unpriced_policy"`
}

// SecurityConfig holds API security settings
type SecurityConfig struct {
	// AuthMode is "none" or "jwt".
	AuthMode  string `koanf:"auth_mode"`
	JWTSecret string `koanf:"jwt_secret"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/tripwise/internal/dataset"
	"github.com/tomtom215/tripwise/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tripwise/config.yaml",
	"/etc/tripwise/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()
	data := dataset.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  engine.Limits.RequestTimeout,
		},
		Dataset: DatasetConfig{
			PlacesURL:            data.PlacesURL,
			RatingsURL:           data.RatingsURL,
			UsersURL:             data.UsersURL,
			CacheDir:             "",
			CacheTTL:             data.CacheTTL,
			DownloadTimeout:      data.DownloadTimeout,
			RefreshInterval:      0,
			AgeBins:              data.AgeBins,
			AgeLabels:            data.AgeLabels,
			CategoryTranslations: data.CategoryTranslations,
		},
		Recommend: RecommendConfig{
			Seed:             engine.Seed,
			TopK:             engine.Selection.TopK,
			BudgetMultiplier: engine.Selection.BudgetMultiplier,
			FallbackCount:    engine.Affinity.FallbackCount,
			FallbackRating:   engine.Affinity.FallbackRating,
			AgeRanges:        engine.AgeRanges,
			UnpricedPolicy:   string(engine.Selection.UnpricedPolicy),
		},
		Security: SecurityConfig{
			AuthMode:        "none",
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: Override any mapped setting
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// ResolvePath returns explicit when set, otherwise the config file Load
// would use. Empty means no file was found.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return findConfigFile()
}

// LoadFile is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"dataset.age_bins",
	"dataset.age_labels",
	"recommend.categories",
	"recommend.age_ranges",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"request_timeout":       "server.request_timeout",

	// Dataset
	"dataset_places_url":       "dataset.places_url",
	"dataset_ratings_url":      "dataset.ratings_url",
	"dataset_users_url":        "dataset.users_url",
	"dataset_cache_dir":        "dataset.cache_dir",
	"dataset_cache_ttl":        "dataset.cache_ttl",
	"dataset_cache_disabled":   "dataset.cache_disabled",
	"dataset_download_timeout": "dataset.download_timeout",
	"dataset_refresh_interval": "dataset.refresh_interval",
	"dataset_age_bins":         "dataset.age_bins",
	"dataset_age_labels":       "dataset.age_labels",
	"duckdb_threads":           "dataset.threads",

	// Recommendation engine
	"recommend_seed":              "recommend.seed",
	"recommend_top_k":             "recommend.top_k",
	"recommend_budget_multiplier": "recommend.budget_multiplier",
	"recommend_fallback_count":    "recommend.fallback_count",
	"recommend_fallback_rating":   "recommend.fallback_rating",
	"recommend_categories":        "recommend.categories",
	"recommend_age_ranges":        "recommend.age_ranges",
	"recommend_unpriced_policy":   "recommend.unpriced_policy",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DATASET_CACHE_DIR -> dataset.cache_dir
//   - RECOMMEND_TOP_K -> recommend.top_k
//   - DISABLE_RATE_LIMIT -> security.rate_limit_disabled
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys return "" and are skipped so that unrelated environment
	// variables never reach the config.
	return ""
}

// WatchConfigFile calls callback whenever the file at path changes.
// The caller is responsible for reloading and for synchronizing access to
// the new configuration.
func WatchConfigFile(path string, callback func()) error {
	return file.Provider(path).Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}

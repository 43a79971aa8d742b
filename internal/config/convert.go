// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package config

import (
	"maps"

	"github.com/tomtom215/tripwise/internal/dataset"
	"github.com/tomtom215/tripwise/internal/recommend"
)

// DatasetConfig returns the loader configuration.
func (c *Config) DatasetConfig() dataset.Config {
	d := c.Dataset
	return dataset.Config{
		PlacesURL:            d.PlacesURL,
		RatingsURL:           d.RatingsURL,
		UsersURL:             d.UsersURL,
		CacheDir:             d.CacheDir,
		CacheTTL:             d.CacheTTL,
		CacheDisabled:        d.CacheDisabled,
		DownloadTimeout:      d.DownloadTimeout,
		AgeBins:              append([]float64(nil), d.AgeBins...),
		AgeLabels:            append([]string(nil), d.AgeLabels...),
		CategoryTranslations: maps.Clone(d.CategoryTranslations),
		Threads:              d.Threads,
	}
}

// EngineConfig returns the recommendation engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	cfg := recommend.DefaultConfig()
	cfg.Seed = r.Seed
	cfg.Affinity.FallbackCount = r.FallbackCount
	cfg.Affinity.FallbackRating = r.FallbackRating
	cfg.Selection.TopK = r.TopK
	cfg.Selection.BudgetMultiplier = r.BudgetMultiplier
	cfg.Selection.UnpricedPolicy = recommend.UnpricedPolicy(r.UnpricedPolicy)
	cfg.Categories = append([]string(nil), r.Categories...)
	if len(r.AgeRanges) > 0 {
		cfg.AgeRanges = append([]string(nil), r.AgeRanges...)
	}
	cfg.Limits.RequestTimeout = c.Server.RequestTimeout
	return cfg
}

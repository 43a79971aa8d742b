// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package recommend

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultAgeRanges is the cohort order produced by the dataset loader.
var DefaultAgeRanges = []string{"0-17", "18-25", "26-35", "36-50", "51-65", "65+"}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Affinity contains parameters for category affinity estimation.
	Affinity AffinityConfig `json:"affinity"`

	// Selection contains parameters for the final place filter.
	Selection SelectionConfig `json:"selection"`

	// Categories is the closed category vocabulary, in enumeration order.
	// Empty means the vocabulary is taken from the loaded table.
	Categories []string `json:"categories"`

	// AgeRanges is the cohort order used by the ranking.
	// Cohorts not listed sort after listed ones, by label.
	AgeRanges []string `json:"age_ranges"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Seed is the default sampling seed. A request may override it.
	Seed int64 `json:"seed"`
}

// AffinityConfig contains parameters for category affinity estimation.
type AffinityConfig struct {
	// FallbackCount is the visit count assigned to unvisited categories.
	// Default: 1.
	FallbackCount float64 `json:"fallback_count"`

	// FallbackRating is the average rating assigned to unvisited categories.
	// Default: 1.
	FallbackRating float64 `json:"fallback_rating"`
}

// SelectionConfig contains parameters for the recommendation filter.
type SelectionConfig struct {
	// TopK is the maximum number of places returned.
	// Default: 5.
	TopK int `json:"top_k"`

	// BudgetMultiplier caps admitted prices at this multiple of the user's
	// average spend in the category.
	// Default: 2.
	BudgetMultiplier float64 `json:"budget_multiplier"`

	// UnpricedPolicy applies when the user has no priced history in the
	// category.
	// Default: unconstrained.
	UnpricedPolicy UnpricedPolicy `json:"unpriced_policy"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// RequestTimeout bounds a single recommendation.
	// Default: 10s.
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Affinity: AffinityConfig{
			FallbackCount:  1,
			FallbackRating: 1,
		},
		Selection: SelectionConfig{
			TopK:             5,
			BudgetMultiplier: 2,
			UnpricedPolicy:   UnpricedPolicyUnconstrained,
		},
		AgeRanges: append([]string(nil), DefaultAgeRanges...),
		Limits: LimitsConfig{
			RequestTimeout: 10 * time.Second,
		},
		Seed: 1,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Affinity.FallbackCount <= 0 {
		return fmt.Errorf("affinity.fallback_count must be positive, got %f", c.Affinity.FallbackCount)
	}
	if c.Affinity.FallbackRating <= 0 {
		return fmt.Errorf("affinity.fallback_rating must be positive, got %f", c.Affinity.FallbackRating)
	}

	if c.Selection.TopK < 1 {
		return fmt.Errorf("selection.top_k must be positive, got %d", c.Selection.TopK)
	}
	if c.Selection.BudgetMultiplier <= 0 {
		return fmt.Errorf("selection.budget_multiplier must be positive, got %f", c.Selection.BudgetMultiplier)
	}
	if !c.Selection.UnpricedPolicy.Valid() {
		return fmt.Errorf("selection.unpriced_policy must be %q or %q, got %q",
			UnpricedPolicyUnconstrained, UnpricedPolicyStrict, c.Selection.UnpricedPolicy)
	}

	if err := validateLabels("categories", c.Categories); err != nil {
		return err
	}
	if err := validateLabels("age_ranges", c.AgeRanges); err != nil {
		return err
	}

	if c.Limits.RequestTimeout <= 0 {
		return fmt.Errorf("limits.request_timeout must be positive, got %v", c.Limits.RequestTimeout)
	}

	return nil
}

func validateLabels(field string, labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l == "" {
			return fmt.Errorf("%s must not contain empty labels", field)
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%s contains duplicate label %q", field, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	if c.Categories != nil {
		out.Categories = append([]string(nil), c.Categories...)
	}
	if c.AgeRanges != nil {
		out.AgeRanges = append([]string(nil), c.AgeRanges...)
	}
	return &out
}

// AffinityOptions returns the affinity options for vocabulary.
func (c *Config) AffinityOptions(vocabulary []string) AffinityOptions {
	return AffinityOptions{
		Vocabulary:     vocabulary,
		FallbackCount:  c.Affinity.FallbackCount,
		FallbackRating: c.Affinity.FallbackRating,
	}
}

// SelectOptions returns the filter options.
func (c *Config) SelectOptions() SelectOptions {
	return SelectOptions{
		TopK:             c.Selection.TopK,
		BudgetMultiplier: c.Selection.BudgetMultiplier,
		UnpricedPolicy:   c.Selection.UnpricedPolicy,
	}
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Limits struct {
			RequestTimeout string `json:"request_timeout"`
		} `json:"limits"`
	}{
		Alias: (*Alias)(c),
		Limits: struct {
			RequestTimeout string `json:"request_timeout"`
		}{
			RequestTimeout: c.Limits.RequestTimeout.String(),
		},
	})
}

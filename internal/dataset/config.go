// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package dataset

import (
	"errors"
	"fmt"
	"time"
)

// Default source locations of the Indonesia tourism dataset.
const (
	DefaultPlacesURL  = "https://raw.githubusercontent.com/gabriellecastilho/datasets/master/indonesia_tourism.csv"
	DefaultRatingsURL = "https://raw.githubusercontent.com/gabriellecastilho/datasets/master/indonesia_tourism_rating.csv"
	DefaultUsersURL   = "https://raw.githubusercontent.com/gabriellecastilho/datasets/master/indonesia_tourism_user.csv"
)

// Config controls where the three CSV sources come from and how they are
// turned into an Interaction Table.
type Config struct {
	// PlacesURL, RatingsURL and UsersURL are http(s) URLs or local paths.
	PlacesURL  string
	RatingsURL string
	UsersURL   string

	// CacheDir holds the badger download cache. Empty keeps it in memory.
	CacheDir      string
	CacheTTL      time.Duration
	CacheDisabled bool

	DownloadTimeout time.Duration

	// AgeBins are the edges of the right-inclusive age bands. len(AgeLabels)
	// must be len(AgeBins)-1.
	AgeBins   []float64
	AgeLabels []string

	// CategoryTranslations maps source category labels to display labels.
	// Unmapped labels are kept as they are.
	CategoryTranslations map[string]string

	// Threads is the DuckDB worker count; 0 lets DuckDB decide.
	Threads int
}

// DefaultAgeBins are the age band edges of the original dataset.
func DefaultAgeBins() []float64 {
	return []float64{0, 17, 25, 35, 50, 65, 100}
}

// DefaultAgeLabels label the bands of DefaultAgeBins.
func DefaultAgeLabels() []string {
	return []string{"0-17", "18-25", "26-35", "36-50", "51-65", "65+"}
}

// DefaultCategoryTranslations maps the Indonesian category labels to English.
func DefaultCategoryTranslations() map[string]string {
	return map[string]string{
		"Taman Hiburan":      "Amusement Park",
		"Tempat Ibadah":      "Place of Worship",
		"Budaya":             "Culture",
		"Cagar Alam":         "Natural Reserve",
		"Bahari":             "Nautical",
		"Pusat Perbelanjaan": "Shopping Center",
	}
}

// DefaultConfig returns the configuration for the public dataset.
func DefaultConfig() Config {
	return Config{
		PlacesURL:            DefaultPlacesURL,
		RatingsURL:           DefaultRatingsURL,
		UsersURL:             DefaultUsersURL,
		CacheTTL:             24 * time.Hour,
		DownloadTimeout:      30 * time.Second,
		AgeBins:              DefaultAgeBins(),
		AgeLabels:            DefaultAgeLabels(),
		CategoryTranslations: DefaultCategoryTranslations(),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.PlacesURL == "" || c.RatingsURL == "" || c.UsersURL == "" {
		return errors.New("dataset sources must all be set")
	}
	if len(c.AgeBins) < 2 {
		return fmt.Errorf("dataset.age_bins needs at least 2 edges, got %d", len(c.AgeBins))
	}
	for i := 1; i < len(c.AgeBins); i++ {
		if c.AgeBins[i] <= c.AgeBins[i-1] {
			return fmt.Errorf("dataset.age_bins must be strictly increasing, got %v", c.AgeBins)
		}
	}
	if len(c.AgeLabels) != len(c.AgeBins)-1 {
		return fmt.Errorf("dataset.age_labels needs %d labels for %d bins, got %d",
			len(c.AgeBins)-1, len(c.AgeBins), len(c.AgeLabels))
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("dataset.cache_ttl must not be negative, got %v", c.CacheTTL)
	}
	if c.DownloadTimeout <= 0 {
		return fmt.Errorf("dataset.download_timeout must be positive, got %v", c.DownloadTimeout)
	}
	if c.Threads < 0 {
		return fmt.Errorf("dataset.threads must not be negative, got %d", c.Threads)
	}
	return nil
}

func (c *Config) sources() []Source {
	return []Source{
		{Name: SourcePlaces, Location: c.PlacesURL},
		{Name: SourceRatings, Location: c.RatingsURL},
		{Name: SourceUsers, Location: c.UsersURL},
	}
}

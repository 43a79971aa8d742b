// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package dataset

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Open wires cache, fetcher and loader into an empty Store. Call Reload to
// publish the first table.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logger.With().Str("component", "dataset").Logger()

	var (
		cache   *Cache
		closers []func() error
	)
	if !cfg.CacheDisabled {
		c, err := OpenCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		cache = c
		closers = append(closers, c.Close)
	}

	fetcher := NewFetcher(&http.Client{Timeout: cfg.DownloadTimeout}, cache, logger)
	loader, err := NewLoader(cfg, fetcher, logger)
	if err != nil {
		for _, c := range closers {
			_ = c()
		}
		return nil, err
	}

	return NewStore(loader, logger, closers...), nil
}

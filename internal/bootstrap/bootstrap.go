// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Package bootstrap assembles the dataset store and recommendation engine
// from a loaded configuration. The server and the command line tools share it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tripwise/internal/config"
	"github.com/tomtom215/tripwise/internal/dataset"
	"github.com/tomtom215/tripwise/internal/logging"
	"github.com/tomtom215/tripwise/internal/recommend"
	"github.com/tomtom215/tripwise/internal/recommend/algorithms"
)

// Components holds the assembled runtime.
type Components struct {
	Store  *dataset.Store
	Engine *recommend.Engine
}

// InitLogging configures the global logger from cfg.
func InitLogging(cfg *config.Config) {
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
}

// New opens the dataset store and builds an engine over it with the Markov
// category model registered. No table is loaded yet.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func New(cfg *config.Config, logger zerolog.Logger) (*Components, error) {
	store, err := dataset.Open(cfg.DatasetConfig(), logger.With().Str("component", "dataset").Logger())
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger.With().Str("component", "recommend").Logger())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.RegisterModel(algorithms.NewMarkovCategory())
	engine.SetDataProvider(store)

	logger.Info().
		Str("places", cfg.Dataset.PlacesURL).
		Str("ratings", cfg.Dataset.RatingsURL).
		Str("users", cfg.Dataset.UsersURL).
		Int("top_k", cfg.Recommend.TopK).
		Str("unpriced_policy", cfg.Recommend.UnpricedPolicy).
		Msg("Recommendation engine initialized")

	return &Components{Store: store, Engine: engine}, nil
}

// Load is New followed by a synchronous dataset load.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func Load(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Components, *recommend.Table, error) {
	c, err := New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if _, err := c.Store.Reload(ctx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}
	table, err := c.Store.Snapshot(ctx)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return c, table, nil
}

// Close releases the store.
func (c *Components) Close() error {
	return c.Store.Close()
}

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tripwise/internal/dataset"
)

// DatasetReloader reloads and publishes the Interaction Table.
// *dataset.Store implements it.
type DatasetReloader interface {
	Reload(ctx context.Context) (dataset.Status, error)
	Ready() bool
}

// DatasetRefreshConfig holds configuration for the refresh service.
type DatasetRefreshConfig struct {
	// LoadOnStartup loads the table when the service starts, unless one is
	// already published.
	LoadOnStartup bool

	// Interval is how often to reload. 0 disables periodic reloads.
	Interval time.Duration

	// RetryInterval is how often a failed startup load is retried while no
	// table is published. Default: 30s
	RetryInterval time.Duration

	// Timeout bounds a single reload. Default: 10m
	Timeout time.Duration
}

// DatasetRefreshService keeps the published table fresh.
type DatasetRefreshService struct {
	store  DatasetReloader
	config DatasetRefreshConfig
	logger zerolog.Logger
}

// NewDatasetRefreshService creates a new dataset refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDatasetRefreshService(store DatasetReloader, cfg DatasetRefreshConfig, logger zerolog.Logger) *DatasetRefreshService {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 30 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &DatasetRefreshService{
		store:  store,
		config: cfg,
		logger: logger.With().Str("service", "dataset-refresh").Logger(),
	}
}

// Serve implements the suture.Service interface.
func (s *DatasetRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("load_on_startup", s.config.LoadOnStartup).
		Dur("interval", s.config.Interval).
		Msg("dataset refresh service starting")

	if s.config.LoadOnStartup && !s.store.Ready() {
		if err := s.reload(ctx); err != nil {
			s.logger.Warn().Err(err).Dur("retry_in", s.config.RetryInterval).Msg("initial dataset load failed")
		}
	}

	// Retry quickly until the first table is published.
	var retry <-chan time.Time
	if !s.store.Ready() && s.config.LoadOnStartup {
		t := time.NewTicker(s.config.RetryInterval)
		defer t.Stop()
		retry = t.C
	}

	var refresh <-chan time.Time
	if s.config.Interval > 0 {
		t := time.NewTicker(s.config.Interval)
		defer t.Stop()
		refresh = t.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("dataset refresh service shutting down")
			return ctx.Err()

		case <-retry:
			if s.store.Ready() {
				retry = nil
				continue
			}
			if err := s.reload(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("dataset load retry failed")
				continue
			}
			retry = nil

		case <-refresh:
			s.logger.Debug().Msg("scheduled dataset refresh triggered")
			if err := s.reload(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled dataset refresh failed, keeping previous table")
			}
		}
	}
}

func (s *DatasetRefreshService) reload(ctx context.Context) error {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	_, err := s.store.Reload(reloadCtx)
	return err
}

// String returns the service name for logging.
func (s *DatasetRefreshService) String() string {
	return "dataset-refresh"
}

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package dataset

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tripwise/internal/metrics"
	"github.com/tomtom215/tripwise/internal/recommend"
)

// TableLoader produces a fresh Interaction Table.
type TableLoader interface {
	Load(ctx context.Context) (*recommend.Table, error)
}

// Status describes the currently published table.
type Status struct {
	Loaded   bool      `json:"loaded"`
	Rows     int       `json:"rows"`
	Users    int       `json:"users"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Reloads  int64     `json:"reloads"`
	Failures int64     `json:"failures"`
}

// Store publishes the active table. Readers take a snapshot pointer without
// locking; Reload builds a new table off to the side and swaps it in.
type Store struct {
	loader TableLoader
	logger zerolog.Logger

	table    atomic.Pointer[recommend.Table]
	loadedAt atomic.Int64
	reloads  atomic.Int64
	failures atomic.Int64

	// reloadMu serializes reloads.
	reloadMu sync.Mutex

	closers []func() error
}

// NewStore creates an empty store. closers run on Close, in order.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(loader TableLoader, logger zerolog.Logger, closers ...func() error) *Store {
	return &Store{loader: loader, logger: logger, closers: closers}
}

// Snapshot returns the current table or recommend.ErrNoData.
func (s *Store) Snapshot(_ context.Context) (*recommend.Table, error) {
	t := s.table.Load()
	if t == nil {
		return nil, recommend.ErrNoData
	}
	return t, nil
}

// Reload loads a new table and publishes it. On failure the previous table
// stays active.
func (s *Store) Reload(ctx context.Context) (Status, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	table, err := s.loader.Load(ctx)
	if err == nil && (table == nil || table.Len() == 0) {
		err = fmt.Errorf("query interactions: %w", recommend.ErrNoData)
	}
	if err != nil {
		s.failures.Add(1)
		metrics.RecordDatasetLoad(time.Since(start), 0, 0, err)
		s.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Dataset reload failed")
		return s.Status(), err
	}

	s.table.Store(table)
	s.loadedAt.Store(time.Now().UnixNano())
	s.reloads.Add(1)
	metrics.RecordDatasetLoad(time.Since(start), table.Len(), len(table.Users()), nil)

	s.logger.Info().
		Int("rows", table.Len()).
		Int("users", len(table.Users())).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")
	return s.Status(), nil
}

// Ready reports whether a table has been published.
func (s *Store) Ready() bool {
	return s.table.Load() != nil
}

// Status returns a summary of the active table.
func (s *Store) Status() Status {
	st := Status{
		Reloads:  s.reloads.Load(),
		Failures: s.failures.Load(),
	}
	if t := s.table.Load(); t != nil {
		st.Loaded = true
		st.Rows = t.Len()
		st.Users = len(t.Users())
		st.LoadedAt = time.Unix(0, s.loadedAt.Load()).UTC()
	}
	return st
}

// Close releases resources owned by the store.
func (s *Store) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

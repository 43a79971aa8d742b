// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Note: This package has no dependencies on other internal packages.
// The DataProvider interface allows integration with the dataset package
// and the Model interface with the algorithms package without circular imports.

// Engine sequences the Model stages for each request and produces the
// recommended category and places. It is safe for concurrent use.
type Engine struct {
	config   *Config
	configMu sync.RWMutex
	logger   zerolog.Logger

	model   Model
	modelMu sync.RWMutex

	dataProvider DataProvider

	requestCount    atomic.Int64
	errorCount      atomic.Int64
	coldStarts      atomic.Int64
	cohortFallbacks atomic.Int64
	emptyResults    atomic.Int64
}

// DataProvider supplies the Interaction Table.
// This is typically implemented by the dataset store.
type DataProvider interface {
	// Snapshot returns the current immutable table.
	Snapshot(ctx context.Context) (*Table, error)
}

// Metrics is a point-in-time snapshot of engine counters.
type Metrics struct {
	RequestCount    int64 `json:"request_count"`
	ErrorCount      int64 `json:"error_count"`
	ColdStarts      int64 `json:"cold_starts"`
	CohortFallbacks int64 `json:"cohort_fallbacks"`
	EmptyResults    int64 `json:"empty_results"`
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetDataProvider sets the table source.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// RegisterModel sets the model sequenced by Recommend.
func (e *Engine) RegisterModel(m Model) {
	e.modelMu.Lock()
	e.model = m
	e.modelMu.Unlock()

	e.logger.Info().
		Str("model", m.Name()).
		Msg("registered model")
}

// Recommend produces a category and up to TopK places for the request.
//
// The derived structures are rebuilt from the current table snapshot on
// every call and nothing is cached between calls.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	cfg := e.GetConfig()
	req = e.prepareRequest(req)
	seed := cfg.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}

	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	model, table, err := e.acquire(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	probs := model.Affinity(req.UserID, table, cfg.AffinityOptions(e.vocabulary(cfg, table)))
	matrix := model.Transitions(probs)

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // math/rand gives reproducible sampling
	category, err := model.NextCategory(req.Category, matrix, rng)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("sample category: %w", err)
	}

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	ranking := model.Rank(req.City, table, cfg.AgeRanges)
	history := model.History(req.UserID, table)
	sel := model.Select(SelectInput{
		UserID:   req.UserID,
		Category: category,
		Table:    table,
		Ranking:  ranking,
		History:  history,
		Options:  cfg.SelectOptions(),
	})
	if sel.Places == nil {
		sel.Places = orderedmap.New[int, string]()
	}

	result := e.buildResult(req, category, sel, model.Name(), seed, table, start)
	e.recordOutcome(sel)

	logger.Debug().
		Str("recommended_category", category).
		Int("candidates", sel.Candidates).
		Int("returned", sel.Places.Len()).
		Bool("cold_start", sel.ColdStart).
		Bool("cohort_fallback", sel.CohortFallback).
		Int64("latency_ms", result.Metadata.LatencyMS).
		Msg("recommendation complete")

	return result, nil
}

// Affinity returns the category probability table for a user.
func (e *Engine) Affinity(ctx context.Context, userID int) (ProbabilityTable, error) {
	model, table, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	cfg := e.GetConfig()
	return model.Affinity(userID, table, cfg.AffinityOptions(e.vocabulary(cfg, table))), nil
}

// Transitions returns the transition matrix for a user.
func (e *Engine) Transitions(ctx context.Context, userID int) (TransitionMatrix, error) {
	probs, err := e.Affinity(ctx, userID)
	if err != nil {
		return nil, err
	}
	e.modelMu.RLock()
	model := e.model
	e.modelMu.RUnlock()
	return model.Transitions(probs), nil
}

// Rankings returns the age-cohort ranking for a city.
func (e *Engine) Rankings(ctx context.Context, city string) (RankingTable, error) {
	model, table, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return model.Rank(city, table, e.GetConfig().AgeRanges), nil
}

// Vocabulary returns the closed category vocabulary in enumeration order.
func (e *Engine) Vocabulary(ctx context.Context) ([]string, error) {
	_, table, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return e.vocabulary(e.GetConfig(), table), nil
}

// acquire returns the registered model and the current table.
func (e *Engine) acquire(ctx context.Context) (Model, *Table, error) {
	e.modelMu.RLock()
	model := e.model
	e.modelMu.RUnlock()
	if model == nil {
		return nil, nil, ErrNoModel
	}

	if e.dataProvider == nil {
		return nil, nil, ErrNoData
	}
	table, err := e.dataProvider.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load table: %w", err)
	}
	if table == nil {
		return nil, nil, ErrNoData
	}
	return model, table, nil
}

// vocabulary prefers the configured category set over the table's.
func (e *Engine) vocabulary(cfg *Config, table *Table) []string {
	if len(cfg.Categories) > 0 {
		return cfg.Categories
	}
	return table.Categories()
}

// prepareRequest generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("rec-%d-%d", time.Now().UnixNano(), e.requestCount.Load())
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Str("category", req.Category).
		Str("city", req.City).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResult(req Request, category string, sel Selection, model string, seed int64, table *Table, start time.Time) *Result {
	elapsed := time.Since(start)
	return &Result{
		Category: category,
		Places:   sel.Places,
		Metadata: ResultMetadata{
			RequestID:      req.RequestID,
			Model:          model,
			Seed:           seed,
			ColdStart:      sel.ColdStart,
			CohortFallback: sel.CohortFallback,
			AverageSpend:   sel.AverageSpend,
			SpendDefined:   sel.SpendDefined,
			Candidates:     sel.Candidates,
			TableRows:      table.Len(),
			Duration:       elapsed,
			LatencyMS:      elapsed.Milliseconds(),
			GeneratedAt:    time.Now().UTC(),
		},
	}
}

func (e *Engine) recordOutcome(sel Selection) {
	if sel.ColdStart {
		e.coldStarts.Add(1)
	}
	if sel.CohortFallback {
		e.cohortFallbacks.Add(1)
	}
	if sel.Places.Len() == 0 {
		e.emptyResults.Add(1)
	}
}

// GetMetrics returns a snapshot of engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:    e.requestCount.Load(),
		ErrorCount:      e.errorCount.Load(),
		ColdStarts:      e.coldStarts.Load(),
		CohortFallbacks: e.cohortFallbacks.Load(),
		EmptyResults:    e.emptyResults.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.config.Clone()
}

// UpdateConfig updates the engine configuration.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	e.configMu.Lock()
	e.config = cfg.Clone()
	e.configMu.Unlock()
	e.logger.Info().Msg("configuration updated")

	return nil
}

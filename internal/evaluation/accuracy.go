// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package evaluation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/tripwise/internal/recommend"
)

// Defaults for holdout accuracy.
const (
	DefaultTestFraction = 0.5
	DefaultSplitSeed    = 1
)

// ErrNoUsers is returned when the table has no users to sample.
var ErrNoUsers = errors.New("evaluation: table has no users")

// ErrSampleSize is returned when fewer than one sample is requested.
var ErrSampleSize = errors.New("evaluation: sample size must be at least 1")

// Evaluator runs offline measurements with one model and config.
type Evaluator struct {
	model  recommend.Model
	cfg    *recommend.Config
	logger zerolog.Logger

	// Concurrency bounds parallel per-user work. Default: GOMAXPROCS.
	Concurrency int
}

// NewEvaluator creates an evaluator. A nil cfg uses recommend.DefaultConfig.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEvaluator(model recommend.Model, cfg *recommend.Config, logger zerolog.Logger) *Evaluator {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	return &Evaluator{
		model:       model,
		cfg:         cfg,
		logger:      logger.With().Str("component", "evaluation").Logger(),
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// Holdout is a train/test pair produced by Split, together with the full
// table whose categories and cities are enumerated.
type Holdout struct {
	Full  *recommend.Table
	Train *recommend.Table
	Test  *recommend.Table
}

// NewHoldout splits full with the given fraction and seed.
func NewHoldout(full *recommend.Table, testFraction float64, seed int64) (*Holdout, error) {
	train, test, err := Split(full, testFraction, seed)
	if err != nil {
		return nil, err
	}
	return &Holdout{Full: full, Train: train, Test: test}, nil
}

func (e *Evaluator) vocabulary(full *recommend.Table) []string {
	if len(e.cfg.Categories) > 0 {
		return e.cfg.Categories
	}
	return full.Categories()
}

// SuccessCount evaluates one user over every category and city of the full
// table. The category is predicted from train history and places are
// selected from the test ranking. A trial counts toward total when the
// predicted category is one the user visited in that city in the test rows;
// success adds every recommended place the user visited in the test rows.
//
// Every trial samples with a fresh source seeded by seed, so a source
// category always predicts the same destination whatever the city.
func (e *Evaluator) SuccessCount(ctx context.Context, h *Holdout, userID int, seed int64) (success, total int, err error) {
	probs := e.model.Affinity(userID, h.Train, e.cfg.AffinityOptions(e.vocabulary(h.Full)))
	matrix := e.model.Transitions(probs)
	history := e.model.History(userID, h.Train)
	testHistory := e.model.History(userID, h.Test)

	visited := make(map[string]map[string]struct{})
	for _, row := range h.Test.UserRows(userID) {
		if visited[row.City] == nil {
			visited[row.City] = make(map[string]struct{})
		}
		visited[row.City][row.Category] = struct{}{}
	}

	for _, source := range h.Full.Categories() {
		for _, city := range h.Full.Cities() {
			if err := ctx.Err(); err != nil {
				return 0, 0, err
			}

			rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible sampling
			category, err := e.model.NextCategory(source, matrix, rng)
			if err != nil {
				return 0, 0, fmt.Errorf("user %d from %q: %w", userID, source, err)
			}
			if _, ok := visited[city][category]; !ok {
				continue
			}
			total++

			sel := e.model.Select(recommend.SelectInput{
				UserID:   userID,
				Category: category,
				Table:    h.Test,
				Ranking:  e.model.Rank(city, h.Test, e.cfg.AgeRanges),
				History:  history,
				Options:  e.cfg.SelectOptions(),
			})
			if sel.Places == nil {
				continue
			}
			for pair := sel.Places.Oldest(); pair != nil; pair = pair.Next() {
				if testHistory.Contains(pair.Key) {
					success++
				}
			}
		}
	}
	return success, total, nil
}

// AccuracyReport summarizes SampleAccuracy.
type AccuracyReport struct {
	Users    []int         `json:"users"`
	Success  int           `json:"success"`
	Total    int           `json:"total"`
	Ratio    float64       `json:"ratio"`
	Duration time.Duration `json:"-"`
}

// SampleAccuracy draws n user ids uniformly from the table's user id range
// and sums SuccessCount over them. Ratio is success/total rounded to four
// decimals, or 0 when total is 0.
func (e *Evaluator) SampleAccuracy(ctx context.Context, h *Holdout, n int, seed int64) (*AccuracyReport, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSampleSize, n)
	}
	lo, hi, ok := h.Full.UserRange()
	if !ok {
		return nil, ErrNoUsers
	}
	start := time.Now()

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible sampling
	users := make([]int, n)
	seeds := make([]int64, n)
	for i := range users {
		users[i] = lo + rng.Intn(hi-lo+1)
		seeds[i] = rng.Int63()
	}

	var success, total atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Concurrency, 1))
	for i := range users {
		g.Go(func() error {
			s, t, err := e.SuccessCount(gctx, h, users[i], seeds[i])
			if err != nil {
				return err
			}
			success.Add(int64(s))
			total.Add(int64(t))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &AccuracyReport{
		Users:    users,
		Success:  int(success.Load()),
		Total:    int(total.Load()),
		Duration: time.Since(start),
	}
	if report.Total > 0 {
		report.Ratio = round(float64(report.Success)/float64(report.Total), 4)
	}

	e.logger.Info().
		Int("users", n).
		Int("success", report.Success).
		Int("total", report.Total).
		Float64("ratio", report.Ratio).
		Dur("duration", report.Duration).
		Msg("Holdout accuracy evaluated")
	return report, nil
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

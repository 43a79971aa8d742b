// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package evaluation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/tripwise/internal/recommend"
)

// Recommender runs live recommendations. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Result, error)
}

// CohortHit is the outcome of CohortHitRatio for one row.
type CohortHit struct {
	Row      recommend.Interaction `json:"row"`
	Category string                `json:"category"`
	Places   []string              `json:"places"`

	// Hits is the number of cohort users who visited a recommended place.
	Hits int `json:"hits"`

	// Cohort is the number of other users in the row's age range and city
	// who visited the recommended category.
	Cohort int `json:"cohort"`

	// Percentage is Hits/Cohort*100 rounded to two decimals; 0 for an
	// empty cohort.
	Percentage float64 `json:"percentage"`
}

// CohortHitRatio recommends for row's user, category and city, then checks
// the recommendation against the other users of the same age range who
// visited the recommended category in that city. Place names are compared,
// not ids.
func CohortHitRatio(ctx context.Context, table *recommend.Table, row recommend.Interaction, rec Recommender, seed int64) (*CohortHit, error) {
	res, err := rec.Recommend(ctx, recommend.Request{
		UserID:   row.UserID,
		Category: row.Category,
		City:     row.City,
		Seed:     &seed,
	})
	if err != nil {
		return nil, err
	}

	hit := &CohortHit{Row: row, Category: res.Category}
	recommended := make(map[string]struct{}, res.Places.Len())
	for pair := res.Places.Oldest(); pair != nil; pair = pair.Next() {
		recommended[pair.Value] = struct{}{}
		hit.Places = append(hit.Places, pair.Value)
	}

	for _, user := range table.Users() {
		if user == row.UserID {
			continue
		}
		rows := table.UserRows(user)
		inCohort, matched := false, false
		for _, r := range rows {
			if r.Category == res.Category && r.City == row.City && r.AgeRange == row.AgeRange {
				inCohort = true
			}
		}
		if !inCohort {
			continue
		}
		hit.Cohort++
		for _, r := range rows {
			if _, ok := recommended[r.PlaceName]; ok {
				matched = true
				break
			}
		}
		if matched {
			hit.Hits++
		}
	}

	if hit.Cohort > 0 {
		hit.Percentage = round(float64(hit.Hits)/float64(hit.Cohort)*100, 2)
	}
	return hit, nil
}

// CohortReport summarizes SampleCohortHits.
type CohortReport struct {
	Samples []*CohortHit `json:"samples"`
	Hits    int          `json:"hits"`
	Cohort  int          `json:"cohort"`

	// AveragePercentage is the mean of the per-sample percentages.
	AveragePercentage float64       `json:"average_percentage"`
	Duration          time.Duration `json:"-"`
}

// SampleCohortHits runs CohortHitRatio for n rows drawn with replacement.
func (e *Evaluator) SampleCohortHits(ctx context.Context, table *recommend.Table, rec Recommender, n int, seed int64) (*CohortReport, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSampleSize, n)
	}
	rows := table.Rows()
	if len(rows) == 0 {
		return nil, ErrNoUsers
	}
	start := time.Now()

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible sampling
	picks := make([]recommend.Interaction, n)
	seeds := make([]int64, n)
	for i := range picks {
		picks[i] = rows[rng.Intn(len(rows))]
		seeds[i] = rng.Int63()
	}

	report := &CohortReport{Samples: make([]*CohortHit, n)}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Concurrency, 1))
	for i := range picks {
		g.Go(func() error {
			hit, err := CohortHitRatio(gctx, table, picks[i], rec, seeds[i])
			if err != nil {
				return err
			}
			report.Samples[i] = hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sum float64
	for _, hit := range report.Samples {
		report.Hits += hit.Hits
		report.Cohort += hit.Cohort
		sum += hit.Percentage
	}
	if n > 0 {
		report.AveragePercentage = round(sum/float64(n), 2)
	}
	report.Duration = time.Since(start)

	e.logger.Info().
		Int("samples", n).
		Int("hits", report.Hits).
		Int("cohort", report.Cohort).
		Float64("average_percentage", report.AveragePercentage).
		Dur("duration", report.Duration).
		Msg("Cohort hit ratio evaluated")
	return report, nil
}

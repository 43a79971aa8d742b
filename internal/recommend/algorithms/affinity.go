// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package algorithms

import (
	"math"
	"sort"

	"github.com/tomtom215/tripwise/internal/recommend"
)

// categoryStats accumulates one category of a user's history.
type categoryStats struct {
	category string
	count    int
	rated    int
	sum      float64
}

// average is the mean of the non-NaN ratings, or fallback when none are set.
func (s categoryStats) average(fallback float64) float64 {
	if s.rated == 0 {
		return fallback
	}
	return s.sum / float64(s.rated)
}

// EstimateAffinity returns the category probability table of userID.
//
// A user with no rows gets a uniform distribution over the vocabulary.
// Otherwise each visited category is weighted by visit count times mean
// PlaceRatings, unvisited categories get the fallback count and rating, and
// the weights are normalized. Visited categories come first, by descending
// count with ties in first-visit order, followed by unvisited categories in
// vocabulary order.
//
// Missing (NaN) ratings still count as visits but are left out of the mean;
// a category with no ratings at all uses the fallback rating.
//
// Categories outside the vocabulary are ignored. An empty vocabulary yields
// an empty table.
func EstimateAffinity(userID int, table *recommend.Table, opts recommend.AffinityOptions) recommend.ProbabilityTable {
	vocab := opts.Vocabulary
	if len(vocab) == 0 {
		vocab = table.Categories()
	}
	if len(vocab) == 0 {
		return recommend.ProbabilityTable{}
	}

	rows := table.UserRows(userID)
	if len(rows) == 0 {
		return uniformAffinity(vocab, opts)
	}

	inVocab := make(map[string]struct{}, len(vocab))
	for _, c := range vocab {
		inVocab[c] = struct{}{}
	}

	index := make(map[string]int)
	var observed []categoryStats
	for i := range rows {
		c := rows[i].Category
		if _, ok := inVocab[c]; !ok {
			continue
		}
		idx, ok := index[c]
		if !ok {
			idx = len(observed)
			index[c] = idx
			observed = append(observed, categoryStats{category: c})
		}
		observed[idx].count++
		if r := rows[i].PlaceRatings; !math.IsNaN(r) {
			observed[idx].rated++
			observed[idx].sum += r
		}
	}

	sort.SliceStable(observed, func(i, j int) bool {
		return observed[i].count > observed[j].count
	})

	probs := make(recommend.ProbabilityTable, 0, len(vocab))
	for _, s := range observed {
		probs = append(probs, recommend.CategoryProbability{
			Category:      s.category,
			Count:         float64(s.count),
			AverageRating: s.average(opts.FallbackRating),
		})
	}
	for _, c := range vocab {
		if _, ok := index[c]; ok {
			continue
		}
		probs = append(probs, recommend.CategoryProbability{
			Category:      c,
			Count:         opts.FallbackCount,
			AverageRating: opts.FallbackRating,
		})
	}

	var total float64
	for i := range probs {
		total += probs[i].Count * probs[i].AverageRating
	}
	if !(total > 0) || math.IsInf(total, 0) {
		uniform := 1 / float64(len(probs))
		for i := range probs {
			probs[i].Probability = uniform
		}
		return probs
	}
	for i := range probs {
		probs[i].Probability = probs[i].Count * probs[i].AverageRating / total
	}

	return probs
}

func uniformAffinity(vocab []string, opts recommend.AffinityOptions) recommend.ProbabilityTable {
	uniform := 1 / float64(len(vocab))
	probs := make(recommend.ProbabilityTable, len(vocab))
	for i, c := range vocab {
		probs[i] = recommend.CategoryProbability{
			Category:      c,
			Count:         opts.FallbackCount,
			AverageRating: opts.FallbackRating,
			Probability:   uniform,
		}
	}
	return probs
}

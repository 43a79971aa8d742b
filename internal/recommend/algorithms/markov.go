// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package algorithms

import (
	"fmt"

	"github.com/tomtom215/tripwise/internal/recommend"
)

// MarkovCategory implements a first-order Markov chain over place
// categories combined with age-cohort place ranking.
//
// For a user with affinity distribution P:
//
//	P(next_category = b | current_category = a) = P(b)
//
// The next category is drawn from the row of the current category, places
// in that category are ranked by the user's age cohort within the city,
// and the top places the user has not visited and can afford are returned.
//
// Use cases:
//   - "Where to go next" from a place page of a known category
//   - Cold-start suggestions for visitors without history
type MarkovCategory struct{}

// NewMarkovCategory creates the category-transition model.
func NewMarkovCategory() *MarkovCategory {
	return &MarkovCategory{}
}

var _ recommend.Model = (*MarkovCategory)(nil)

// Name returns the model identifier.
func (m *MarkovCategory) Name() string {
	return "markov_category"
}

// Affinity implements recommend.Model.
func (m *MarkovCategory) Affinity(userID int, table *recommend.Table, opts recommend.AffinityOptions) recommend.ProbabilityTable {
	return EstimateAffinity(userID, table, opts)
}

// Transitions implements recommend.Model.
func (m *MarkovCategory) Transitions(probs recommend.ProbabilityTable) recommend.TransitionMatrix {
	return BuildTransitionMatrix(probs)
}

// NextCategory implements recommend.Model.
func (m *MarkovCategory) NextCategory(source string, matrix recommend.TransitionMatrix, rng recommend.RandomSource) (string, error) {
	return SampleCategory(source, matrix, rng)
}

// Rank implements recommend.Model.
func (m *MarkovCategory) Rank(city string, table *recommend.Table, cohortOrder []string) recommend.RankingTable {
	return RankByCohort(city, table, cohortOrder)
}

// History implements recommend.Model.
func (m *MarkovCategory) History(userID int, table *recommend.Table) recommend.History {
	return UserHistory(userID, table)
}

// Select implements recommend.Model.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (m *MarkovCategory) Select(in recommend.SelectInput) recommend.Selection {
	return SelectPlaces(in)
}

type categoryPair struct {
	source      string
	destination string
}

// BuildTransitionMatrix expands a probability table into every ordered pair
// of distinct categories followed by every self pair. Pairs are enumerated
// in probability table order and duplicates keep their first position.
// Each pair carries the probability of its destination.
func BuildTransitionMatrix(probs recommend.ProbabilityTable) recommend.TransitionMatrix {
	n := len(probs)
	matrix := make(recommend.TransitionMatrix, 0, n*n)
	seen := make(map[categoryPair]struct{}, n*n)

	add := func(a, b int) {
		key := categoryPair{source: probs[a].Category, destination: probs[b].Category}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		matrix = append(matrix, recommend.Transition{
			Source:      key.source,
			Destination: key.destination,
			Probability: probs[b].Probability,
		})
	}

	// Permutations of length two.
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a != b {
				add(a, b)
			}
		}
	}
	// Combinations with replacement; only the self pairs are new.
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			add(a, b)
		}
	}

	return matrix
}

// SampleCategory draws one destination from the rows leaving source,
// weighted by probability. The same rng state always yields the same draw.
func SampleCategory(source string, matrix recommend.TransitionMatrix, rng recommend.RandomSource) (string, error) {
	row := matrix.Row(source)
	if len(row) == 0 {
		return "", fmt.Errorf("%w: %q", recommend.ErrInvalidCategory, source)
	}

	var total float64
	for i := range row {
		total += row[i].Probability
	}
	if !(total > 0) {
		return "", fmt.Errorf("%w: %q has no outgoing probability mass", recommend.ErrInvalidCategory, source)
	}

	r := rng.Float64() * total
	var cumulative float64
	for i := range row {
		cumulative += row[i].Probability
		if r < cumulative {
			return row[i].Destination, nil
		}
	}

	// Rounding can leave r just above the final cumulative sum.
	for i := len(row) - 1; i >= 0; i-- {
		if row[i].Probability > 0 {
			return row[i].Destination, nil
		}
	}
	return row[len(row)-1].Destination, nil
}

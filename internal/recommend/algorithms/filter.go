// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package algorithms

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tomtom215/tripwise/internal/recommend"
)

// UserHistory returns the set of places userID has visited.
// Unknown users get an empty set.
func UserHistory(userID int, table *recommend.Table) recommend.History {
	rows := table.UserRows(userID)
	history := make(recommend.History, len(rows))
	for i := range rows {
		history[rows[i].PlaceID] = struct{}{}
	}
	return history
}

// SelectPlaces picks up to TopK places in the sampled category.
//
// Cold-start users get the best rated places of the category across all
// cohorts. Known users get places from their own cohort and the category,
// falling back to the whole ranking when that restriction is empty. A
// known user's candidates are admitted only if unvisited and priced below
// BudgetMultiplier times the user's average nonzero spend in the category.
// Without priced history the UnpricedPolicy decides.
//
// Names and prices resolve through the first table row of each place.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func SelectPlaces(in recommend.SelectInput) recommend.Selection {
	if !in.Table.HasUser(in.UserID) {
		return selectColdStart(in)
	}
	return selectKnownUser(in)
}

//nolint:gocritic // hugeParam: in passed by value for immutability
func selectColdStart(in recommend.SelectInput) recommend.Selection {
	sel := recommend.Selection{
		Places:    orderedmap.New[int, string](),
		ColdStart: true,
	}

	var candidates recommend.RankingTable
	for _, row := range sortByRating(in.Ranking) {
		if row.Category == in.Category {
			candidates = append(candidates, row)
		}
	}
	sel.Candidates = distinctPlaces(candidates)

	for _, row := range candidates {
		if sel.Places.Len() >= in.Options.TopK {
			break
		}
		if _, ok := sel.Places.Get(row.PlaceID); ok {
			continue
		}
		sel.Places.Set(row.PlaceID, placeName(in.Table, row))
	}

	return sel
}

//nolint:gocritic // hugeParam: in passed by value for immutability
func selectKnownUser(in recommend.SelectInput) recommend.Selection {
	sel := recommend.Selection{
		Places: orderedmap.New[int, string](),
	}

	first, _ := in.Table.FirstUserRow(in.UserID)
	var candidates recommend.RankingTable
	for _, row := range in.Ranking {
		if row.AgeRange == first.AgeRange && row.Category == in.Category {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		candidates = sortByRating(in.Ranking)
		sel.CohortFallback = true
	}
	sel.Candidates = distinctPlaces(candidates)

	sel.AverageSpend, sel.SpendDefined = averageSpend(in.Table, in.UserID, in.Category)
	ceiling := in.Options.BudgetMultiplier * sel.AverageSpend

	for _, row := range candidates {
		if sel.Places.Len() >= in.Options.TopK {
			break
		}
		if in.History.Contains(row.PlaceID) {
			continue
		}
		if _, ok := sel.Places.Get(row.PlaceID); ok {
			continue
		}
		if !withinBudget(in.Table, row.PlaceID, ceiling, sel.SpendDefined, in.Options.UnpricedPolicy) {
			continue
		}
		sel.Places.Set(row.PlaceID, placeName(in.Table, row))
	}

	return sel
}

// distinctPlaces counts the place ids in ranking. A place ranked in several
// cohorts counts once.
func distinctPlaces(ranking recommend.RankingTable) int {
	seen := make(map[int]struct{}, len(ranking))
	for _, row := range ranking {
		seen[row.PlaceID] = struct{}{}
	}
	return len(seen)
}

// averageSpend is the mean nonzero price of the user's rows in category.
func averageSpend(table *recommend.Table, userID int, category string) (float64, bool) {
	var sum float64
	var n int
	for _, row := range table.UserRows(userID) {
		if row.Category != category || row.Price == 0 {
			continue
		}
		sum += row.Price
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func withinBudget(table *recommend.Table, placeID int, ceiling float64, defined bool, policy recommend.UnpricedPolicy) bool {
	if !defined {
		return policy != recommend.UnpricedPolicyStrict
	}
	place, ok := table.Place(placeID)
	if !ok {
		return false
	}
	return place.Price < ceiling
}

func placeName(table *recommend.Table, row recommend.RankedPlace) string {
	if place, ok := table.Place(row.PlaceID); ok {
		return place.PlaceName
	}
	return row.PlaceName
}

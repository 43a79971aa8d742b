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

type cohortKey struct {
	ageRange  string
	category  string
	placeID   int
	placeName string
}

type cohortAgg struct {
	placeRatingsSum   float64
	placeRatingsCount int
	ratingSum         float64
	ratingCount       int
}

// RankByCohort ranks the places of city per (age range, category, place).
//
// Each group's FinalRating is the mean of its average PlaceRatings and its
// average Rating. NaN values are skipped when averaging and groups left
// without either average are dropped, as are rows without an age range.
// Rows are ordered by cohortOrder (unlisted cohorts last, by label), then
// FinalRating descending, then PlaceID ascending.
//
// A city with no rows yields an empty table.
func RankByCohort(city string, table *recommend.Table, cohortOrder []string) recommend.RankingTable {
	groups := make(map[cohortKey]*cohortAgg)
	var keys []cohortKey

	rows := table.Rows()
	for i := range rows {
		row := &rows[i]
		if row.City != city || row.AgeRange == "" {
			continue
		}
		key := cohortKey{
			ageRange:  row.AgeRange,
			category:  row.Category,
			placeID:   row.PlaceID,
			placeName: row.PlaceName,
		}
		agg, ok := groups[key]
		if !ok {
			agg = &cohortAgg{}
			groups[key] = agg
			keys = append(keys, key)
		}
		if !math.IsNaN(row.PlaceRatings) {
			agg.placeRatingsSum += row.PlaceRatings
			agg.placeRatingsCount++
		}
		if !math.IsNaN(row.Rating) {
			agg.ratingSum += row.Rating
			agg.ratingCount++
		}
	}

	ranking := make(recommend.RankingTable, 0, len(keys))
	for _, key := range keys {
		agg := groups[key]
		if agg.placeRatingsCount == 0 || agg.ratingCount == 0 {
			continue
		}
		placeRatings := agg.placeRatingsSum / float64(agg.placeRatingsCount)
		rating := agg.ratingSum / float64(agg.ratingCount)
		ranking = append(ranking, recommend.RankedPlace{
			AgeRange:    key.ageRange,
			Category:    key.category,
			PlaceID:     key.placeID,
			PlaceName:   key.placeName,
			FinalRating: (placeRatings + rating) / 2,
		})
	}

	order := make(map[string]int, len(cohortOrder))
	for i, label := range cohortOrder {
		order[label] = i
	}
	rank := func(label string) int {
		if i, ok := order[label]; ok {
			return i
		}
		return len(cohortOrder)
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if ra, rb := rank(a.AgeRange), rank(b.AgeRange); ra != rb {
			return ra < rb
		}
		if a.AgeRange != b.AgeRange {
			return a.AgeRange < b.AgeRange
		}
		if a.FinalRating != b.FinalRating {
			return a.FinalRating > b.FinalRating
		}
		return a.PlaceID < b.PlaceID
	})

	return ranking
}

// sortByRating returns a copy of ranking ordered by FinalRating descending
// with PlaceID ascending on ties.
func sortByRating(ranking recommend.RankingTable) recommend.RankingTable {
	out := append(recommend.RankingTable(nil), ranking...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FinalRating != out[j].FinalRating {
			return out[i].FinalRating > out[j].FinalRating
		}
		return out[i].PlaceID < out[j].PlaceID
	})
	return out
}

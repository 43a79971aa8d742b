// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package algorithms

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tomtom215/tripwise/internal/recommend"
)

func TestRankByCohort(t *testing.T) {
	t.Parallel()

	got := RankByCohort(jakarta, fixtureTable(), recommend.DefaultAgeRanges)
	want := recommend.RankingTable{
		{AgeRange: "18-25", Category: culture, PlaceID: 3, PlaceName: "Monas", FinalRating: 4.9},
		{AgeRange: "18-25", Category: culture, PlaceID: 2, PlaceName: "Kota Tua", FinalRating: 4.7},
		{AgeRange: "18-25", Category: amusement, PlaceID: 5, PlaceName: "Dunia Fantasi", FinalRating: 4.1},
		{AgeRange: "18-25", Category: culture, PlaceID: 1, PlaceName: "Museum Nasional", FinalRating: 4.0},
		{AgeRange: "26-35", Category: culture, PlaceID: 4, PlaceName: "Museum Wayang", FinalRating: 4.3},
		{AgeRange: "26-35", Category: culture, PlaceID: 3, PlaceName: "Monas", FinalRating: 3.4},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("RankByCohort() mismatch (-want +got):\n%s", diff)
	}
}

func TestRankByCohort_EmptyCity(t *testing.T) {
	t.Parallel()

	if got := RankByCohort("Surabaya", fixtureTable(), recommend.DefaultAgeRanges); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestRankByCohort_Ordering(t *testing.T) {
	t.Parallel()

	table := recommend.NewTable([]recommend.Interaction{
		{UserID: 1, AgeRange: "65+", PlaceID: 1, Category: "A", City: "X", PlaceRatings: 3, Rating: 3},
		{UserID: 2, AgeRange: "0-17", PlaceID: 2, Category: "A", City: "X", PlaceRatings: 3, Rating: 3},
		{UserID: 3, AgeRange: "0-17", PlaceID: 1, Category: "A", City: "X", PlaceRatings: 3, Rating: 3},
		{UserID: 4, AgeRange: "unbinned", PlaceID: 1, Category: "A", City: "X", PlaceRatings: 5, Rating: 5},
		{UserID: 5, AgeRange: "", PlaceID: 3, Category: "A", City: "X", PlaceRatings: 5, Rating: 5},
	})

	got := RankByCohort("X", table, recommend.DefaultAgeRanges)

	type key struct {
		age   string
		place int
	}
	var order []key
	for _, r := range got {
		order = append(order, key{r.AgeRange, r.PlaceID})
	}
	want := []key{{"0-17", 1}, {"0-17", 2}, {"65+", 1}, {"unbinned", 1}}

	if diff := cmp.Diff(want, order, cmp.AllowUnexported(key{})); diff != "" {
		t.Errorf("ranking order mismatch (-want +got):\n%s", diff)
	}
}

func TestRankByCohort_SkipsNaN(t *testing.T) {
	t.Parallel()

	table := recommend.NewTable([]recommend.Interaction{
		{UserID: 1, AgeRange: "18-25", PlaceID: 1, Category: "A", City: "X", PlaceRatings: 4, Rating: math.NaN()},
		{UserID: 2, AgeRange: "18-25", PlaceID: 2, Category: "A", City: "X", PlaceRatings: math.NaN(), Rating: 4},
		{UserID: 3, AgeRange: "18-25", PlaceID: 2, Category: "A", City: "X", PlaceRatings: 2, Rating: 4},
	})

	got := RankByCohort("X", table, recommend.DefaultAgeRanges)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(got), got)
	}
	if got[0].PlaceID != 2 || got[0].FinalRating != 3 {
		t.Errorf("got %+v, want place 2 with final rating 3", got[0])
	}
}

func TestRankByCohort_SortedWithinCohort(t *testing.T) {
	t.Parallel()

	ranking := RankByCohort(jakarta, fixtureTable(), recommend.DefaultAgeRanges)
	for i := 1; i < len(ranking); i++ {
		prev, cur := ranking[i-1], ranking[i]
		if prev.AgeRange == cur.AgeRange && prev.FinalRating < cur.FinalRating {
			t.Errorf("rows %d and %d out of order: %+v before %+v", i-1, i, prev, cur)
		}
	}
}

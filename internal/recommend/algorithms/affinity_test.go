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

func TestEstimateAffinity_WeightedByCountAndRating(t *testing.T) {
	t.Parallel()

	table := recommend.NewTable([]recommend.Interaction{
		{UserID: 1, PlaceID: 1, Category: "A", City: "X", PlaceRatings: 4},
		{UserID: 1, PlaceID: 2, Category: "A", City: "X", PlaceRatings: 5},
		{UserID: 2, PlaceID: 3, Category: "B", City: "X", PlaceRatings: 3},
	})

	got := EstimateAffinity(1, table, defaultAffinityOptions())
	want := recommend.ProbabilityTable{
		{Category: "A", Count: 2, AverageRating: 4.5, Probability: 0.9},
		{Category: "B", Count: 1, AverageRating: 1, Probability: 0.1},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("EstimateAffinity() mismatch (-want +got):\n%s", diff)
	}
}

func TestEstimateAffinity_ColdStartIsUniform(t *testing.T) {
	t.Parallel()

	table := fixtureTable()
	got := EstimateAffinity(999, table, defaultAffinityOptions())

	if len(got) != len(table.Categories()) {
		t.Fatalf("len = %d, want %d", len(got), len(table.Categories()))
	}
	for i, row := range got {
		if row.Category != table.Categories()[i] {
			t.Errorf("row %d category = %q, want %q", i, row.Category, table.Categories()[i])
		}
		if math.Abs(row.Probability-1.0/3) > 1e-12 {
			t.Errorf("%s probability = %f, want 1/3", row.Category, row.Probability)
		}
	}
}

func TestEstimateAffinity_Ordering(t *testing.T) {
	t.Parallel()

	// User 2 visited Culture twice and Amusement Park once.
	got := EstimateAffinity(2, fixtureTable(), defaultAffinityOptions()).Categories()
	want := []string{culture, amusement, nautical}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("category order mismatch (-want +got):\n%s", diff)
	}
}

func TestEstimateAffinity_CoversVocabularyAndSumsToOne(t *testing.T) {
	t.Parallel()

	table := fixtureTable()
	vocabularies := map[string][]string{
		"table vocabulary":    nil,
		"explicit vocabulary": {nautical, culture, amusement, "Shopping Center"},
	}

	for name, vocab := range vocabularies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			opts := defaultAffinityOptions()
			opts.Vocabulary = vocab
			want := vocab
			if want == nil {
				want = table.Categories()
			}

			for _, user := range append(table.Users(), 404) {
				probs := EstimateAffinity(user, table, opts)

				if sum := probs.Sum(); math.IsNaN(sum) || math.Abs(sum-1) > 1e-9 {
					t.Errorf("user %d: sum = %.12f, want 1", user, probs.Sum())
				}

				seen := make(map[string]int)
				for _, row := range probs {
					seen[row.Category]++
				}
				if len(seen) != len(want) {
					t.Errorf("user %d: %d categories, want %d", user, len(seen), len(want))
				}
				for _, c := range want {
					if seen[c] != 1 {
						t.Errorf("user %d: category %q appears %d times, want 1", user, c, seen[c])
					}
				}
			}
		})
	}
}

func TestEstimateAffinity_MissingRatingsSkippedInMean(t *testing.T) {
	t.Parallel()

	table := recommend.NewTable([]recommend.Interaction{
		{UserID: 1, PlaceID: 1, Category: "A", City: "X", PlaceRatings: 4},
		{UserID: 1, PlaceID: 2, Category: "A", City: "X", PlaceRatings: math.NaN()},
		{UserID: 2, PlaceID: 3, Category: "B", City: "X", PlaceRatings: 3},
	})

	got := EstimateAffinity(1, table, defaultAffinityOptions())
	want := recommend.ProbabilityTable{
		{Category: "A", Count: 2, AverageRating: 4, Probability: 8.0 / 9},
		{Category: "B", Count: 1, AverageRating: 1, Probability: 1.0 / 9},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("EstimateAffinity() mismatch (-want +got):\n%s", diff)
	}
	if sum := got.Sum(); math.IsNaN(sum) || math.Abs(sum-1) > 1e-9 {
		t.Errorf("sum = %v, want 1", sum)
	}
}

func TestEstimateAffinity_UnratedCategoryUsesFallbackRating(t *testing.T) {
	t.Parallel()

	table := recommend.NewTable([]recommend.Interaction{
		{UserID: 1, PlaceID: 1, Category: "A", City: "X", PlaceRatings: math.NaN()},
		{UserID: 1, PlaceID: 2, Category: "A", City: "X", PlaceRatings: math.NaN()},
		{UserID: 2, PlaceID: 3, Category: "B", City: "X", PlaceRatings: 3},
	})

	got := EstimateAffinity(1, table, defaultAffinityOptions())
	want := recommend.ProbabilityTable{
		{Category: "A", Count: 2, AverageRating: 1, Probability: 2.0 / 3},
		{Category: "B", Count: 1, AverageRating: 1, Probability: 1.0 / 3},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("EstimateAffinity() mismatch (-want +got):\n%s", diff)
	}

	category, err := SampleCategory("A", BuildTransitionMatrix(got), fixedSource(0.1))
	if err != nil {
		t.Fatalf("SampleCategory() error = %v", err)
	}
	if category != "B" {
		t.Errorf("SampleCategory() = %q, want B", category)
	}
}

func TestEstimateAffinity_ZeroRatingsFallBackToUniform(t *testing.T) {
	t.Parallel()

	table := recommend.NewTable([]recommend.Interaction{
		{UserID: 1, PlaceID: 1, Category: "A", City: "X", PlaceRatings: 0},
	})

	got := EstimateAffinity(1, table, defaultAffinityOptions())
	if len(got) != 1 || got[0].Probability != 1 {
		t.Errorf("EstimateAffinity() = %+v, want single row with probability 1", got)
	}
}

func TestEstimateAffinity_EmptyVocabulary(t *testing.T) {
	t.Parallel()

	got := EstimateAffinity(1, recommend.NewTable(nil), defaultAffinityOptions())
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

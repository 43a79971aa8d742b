// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package recommend

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Interaction is one normalized visit-and-rating record.
type Interaction struct {
	// UserID identifies the visitor.
	UserID int `json:"user_id"`

	// AgeRange is the visitor's age cohort label (e.g. "18-25").
	// Empty when the visitor's age fell outside every bin.
	AgeRange string `json:"age_range"`

	// PlaceID identifies the place.
	PlaceID int `json:"place_id"`

	// PlaceName is the display name of the place.
	PlaceName string `json:"place_name"`

	// Category is the place category from the closed vocabulary.
	Category string `json:"category"`

	// City is the city the place is located in.
	City string `json:"city"`

	// PlaceRatings is the rating signal used for category affinity.
	PlaceRatings float64 `json:"place_ratings"`

	// Rating is the second rating signal averaged into the cohort ranking.
	Rating float64 `json:"rating"`

	// Price is the entry price. Zero means free or unspecified.
	Price float64 `json:"price"`
}

// CategoryProbability is one row of a ProbabilityTable.
type CategoryProbability struct {
	Category      string  `json:"category"`
	Count         float64 `json:"count"`
	AverageRating float64 `json:"average_rating"`
	Probability   float64 `json:"probability"`
}

// ProbabilityTable is a user's category affinity distribution.
// Row order drives transition enumeration.
type ProbabilityTable []CategoryProbability

// Categories returns the categories in table order.
func (p ProbabilityTable) Categories() []string {
	out := make([]string, len(p))
	for i := range p {
		out[i] = p[i].Category
	}
	return out
}

// Probability returns the probability of category.
func (p ProbabilityTable) Probability(category string) (float64, bool) {
	for i := range p {
		if p[i].Category == category {
			return p[i].Probability, true
		}
	}
	return 0, false
}

// Sum returns the total probability mass.
func (p ProbabilityTable) Sum() float64 {
	var sum float64
	for i := range p {
		sum += p[i].Probability
	}
	return sum
}

// Transition is one source to destination edge of the transition matrix.
type Transition struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Probability float64 `json:"probability"`
}

// TransitionMatrix holds every ordered category pair, self pairs included.
type TransitionMatrix []Transition

// Row returns the transitions leaving source, in matrix order.
func (m TransitionMatrix) Row(source string) []Transition {
	var row []Transition
	for i := range m {
		if m[i].Source == source {
			row = append(row, m[i])
		}
	}
	return row
}

// RankedPlace is one row of the age-cohort ranking.
type RankedPlace struct {
	AgeRange    string  `json:"age_range"`
	Category    string  `json:"category"`
	PlaceID     int     `json:"place_id"`
	PlaceName   string  `json:"place_name"`
	FinalRating float64 `json:"final_rating"`
}

// RankingTable is ordered by cohort, then FinalRating descending.
type RankingTable []RankedPlace

// Cohort returns the rows for one age range, preserving order.
func (r RankingTable) Cohort(ageRange string) RankingTable {
	var out RankingTable
	for i := range r {
		if r[i].AgeRange == ageRange {
			out = append(out, r[i])
		}
	}
	return out
}

// History is the set of place IDs a user has visited.
type History map[int]struct{}

// Contains reports whether placeID was visited.
func (h History) Contains(placeID int) bool {
	_, ok := h[placeID]
	return ok
}

// RandomSource is the randomness consumed by category sampling.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// UnpricedPolicy decides how the budget filter behaves when a user has no
// priced history in the sampled category.
type UnpricedPolicy string

const (
	// UnpricedPolicyUnconstrained admits every place regardless of price.
	UnpricedPolicyUnconstrained UnpricedPolicy = "unconstrained"

	// UnpricedPolicyStrict admits nothing, matching a comparison against an
	// undefined mean.
	UnpricedPolicyStrict UnpricedPolicy = "strict"
)

// Valid reports whether p is a known policy.
func (p UnpricedPolicy) Valid() bool {
	return p == UnpricedPolicyUnconstrained || p == UnpricedPolicyStrict
}

// AffinityOptions parameterizes category affinity estimation.
type AffinityOptions struct {
	// Vocabulary is the closed category set. Empty means the table's categories.
	Vocabulary []string

	// FallbackCount and FallbackRating seed categories the user never visited.
	FallbackCount  float64
	FallbackRating float64
}

// SelectOptions parameterizes the recommendation filter.
type SelectOptions struct {
	TopK             int
	BudgetMultiplier float64
	UnpricedPolicy   UnpricedPolicy
}

// SelectInput carries everything the recommendation filter reads.
type SelectInput struct {
	UserID   int
	Category string
	Table    *Table
	Ranking  RankingTable
	History  History
	Options  SelectOptions
}

// Selection is the output of the recommendation filter.
type Selection struct {
	// Places maps place ID to name in rank order.
	Places *orderedmap.OrderedMap[int, string]

	// ColdStart is set when the user had no recorded interactions.
	ColdStart bool

	// CohortFallback is set when the cohort and category restriction was
	// empty and the full ranking was used instead.
	CohortFallback bool

	// AverageSpend is the user's mean nonzero price in the category.
	// Only meaningful when SpendDefined is true.
	AverageSpend float64
	SpendDefined bool

	// Candidates is the number of ranked places considered.
	Candidates int
}

// Model is the category-transition recommender sequenced by the Engine.
type Model interface {
	// Name returns the model identifier used in logs and metrics.
	Name() string

	// Affinity estimates the user's category probability table.
	Affinity(userID int, table *Table, opts AffinityOptions) ProbabilityTable

	// Transitions expands a probability table into a transition matrix.
	Transitions(probs ProbabilityTable) TransitionMatrix

	// NextCategory draws one destination category for source.
	NextCategory(source string, matrix TransitionMatrix, rng RandomSource) (string, error)

	// Rank builds the age-cohort ranking for a city.
	Rank(city string, table *Table, cohortOrder []string) RankingTable

	// History returns the places the user has visited.
	History(userID int, table *Table) History

	// Select picks the final places.
	Select(in SelectInput) Selection
}

// Request is a single recommendation request.
type Request struct {
	// RequestID correlates logs. Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// UserID is the visitor. Unknown IDs take the cold-start path.
	UserID int `json:"user_id"`

	// Category is the category of the page the visitor is currently on.
	Category string `json:"category"`

	// City restricts the place ranking.
	City string `json:"city"`

	// Seed overrides the configured sampling seed for this request.
	Seed *int64 `json:"seed,omitempty"`
}

// Result is the recommendation pair plus request diagnostics.
type Result struct {
	// Category is the sampled destination category.
	Category string `json:"category"`

	// Places maps place ID to name in rank order.
	Places *orderedmap.OrderedMap[int, string] `json:"places"`

	// Metadata describes how the result was produced.
	Metadata ResultMetadata `json:"metadata"`
}

// ResultMetadata contains diagnostic information about a recommendation.
type ResultMetadata struct {
	RequestID      string        `json:"request_id"`
	Model          string        `json:"model"`
	Seed           int64         `json:"seed"`
	ColdStart      bool          `json:"cold_start"`
	CohortFallback bool          `json:"cohort_fallback"`
	AverageSpend   float64       `json:"average_spend,omitempty"`
	SpendDefined   bool          `json:"spend_defined"`
	Candidates     int           `json:"candidates"`
	TableRows      int           `json:"table_rows"`
	Duration       time.Duration `json:"-"`
	LatencyMS      int64         `json:"latency_ms"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

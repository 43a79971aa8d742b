// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package recommend

import (
	"reflect"
	"testing"
)

func TestNewTable(t *testing.T) {
	t.Parallel()

	table := NewTable([]Interaction{
		{UserID: 2, AgeRange: "26-35", PlaceID: 1, PlaceName: "Monas", Category: "Culture", City: "Jakarta", Price: 10},
		{UserID: 1, AgeRange: "18-25", PlaceID: 2, PlaceName: "Ancol", Category: "Nautical", City: "Jakarta", Price: 20},
		{UserID: 2, AgeRange: "26-35", PlaceID: 1, PlaceName: "Monas", Category: "Culture", City: "Jakarta", Price: 99},
		{UserID: 1, AgeRange: "18-25", PlaceID: 3, PlaceName: "Braga", Category: "Culture", City: "Bandung", Price: 0},
	})

	t.Run("duplicate user place pairs keep first", func(t *testing.T) {
		if table.Len() != 3 {
			t.Errorf("Len() = %d, want 3", table.Len())
		}
		place, ok := table.Place(1)
		if !ok || place.Price != 10 {
			t.Errorf("Place(1) = %+v, %v; want price 10", place, ok)
		}
	})

	t.Run("first appearance order", func(t *testing.T) {
		if got := table.Categories(); !reflect.DeepEqual(got, []string{"Culture", "Nautical"}) {
			t.Errorf("Categories() = %v", got)
		}
		if got := table.Cities(); !reflect.DeepEqual(got, []string{"Jakarta", "Bandung"}) {
			t.Errorf("Cities() = %v", got)
		}
		if got := table.Users(); !reflect.DeepEqual(got, []int{2, 1}) {
			t.Errorf("Users() = %v", got)
		}
	})

	t.Run("user lookups", func(t *testing.T) {
		if !table.HasUser(1) || table.HasUser(3) {
			t.Error("HasUser() mismatch")
		}
		if got := len(table.UserRows(1)); got != 2 {
			t.Errorf("len(UserRows(1)) = %d, want 2", got)
		}
		first, ok := table.FirstUserRow(1)
		if !ok || first.PlaceID != 2 {
			t.Errorf("FirstUserRow(1) = %+v, %v; want place 2", first, ok)
		}
		if _, ok := table.FirstUserRow(3); ok {
			t.Error("FirstUserRow(3) ok = true, want false")
		}
	})

	t.Run("membership", func(t *testing.T) {
		if !table.HasCity("Bandung") || table.HasCity("Surabaya") {
			t.Error("HasCity() mismatch")
		}
		if !table.HasCategory("Nautical") || table.HasCategory("Bahari") {
			t.Error("HasCategory() mismatch")
		}
	})

	t.Run("user range", func(t *testing.T) {
		lowest, highest, ok := table.UserRange()
		if !ok || lowest != 1 || highest != 2 {
			t.Errorf("UserRange() = %d, %d, %v; want 1, 2, true", lowest, highest, ok)
		}
		if _, _, ok := NewTable(nil).UserRange(); ok {
			t.Error("empty UserRange() ok = true, want false")
		}
	})
}

func TestTransitionMatrix_Row(t *testing.T) {
	t.Parallel()

	m := TransitionMatrix{
		{Source: "A", Destination: "B", Probability: 0.25},
		{Source: "B", Destination: "A", Probability: 0.75},
		{Source: "A", Destination: "A", Probability: 0.75},
	}

	row := m.Row("A")
	if len(row) != 2 || row[0].Destination != "B" || row[1].Destination != "A" {
		t.Errorf("Row(A) = %+v", row)
	}
	if len(m.Row("C")) != 0 {
		t.Error("Row(C) not empty")
	}
}

func TestProbabilityTable(t *testing.T) {
	t.Parallel()

	p := ProbabilityTable{
		{Category: "A", Probability: 0.9},
		{Category: "B", Probability: 0.1},
	}

	if got, ok := p.Probability("B"); !ok || got != 0.1 {
		t.Errorf("Probability(B) = %f, %v", got, ok)
	}
	if _, ok := p.Probability("C"); ok {
		t.Error("Probability(C) ok = true")
	}
	if got := p.Categories(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Categories() = %v", got)
	}
	if p.Sum() != 1 {
		t.Errorf("Sum() = %f, want 1", p.Sum())
	}
}

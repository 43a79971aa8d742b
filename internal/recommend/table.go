// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package recommend

// Table is the immutable Interaction Table consumed by the engine.
//
// A Table is safe for concurrent reads. Slices returned by its accessors
// share storage with the table and must not be modified.
type Table struct {
	rows       []Interaction
	byUser     map[int][]Interaction
	placeIndex map[int]int
	categories []string
	cities     []string
	cityIndex  map[string]struct{}
	catIndex   map[string]struct{}
	users      []int
}

type userPlace struct {
	user  int
	place int
}

// NewTable builds a Table from rows, keeping the first occurrence of each
// (user, place) pair. Row order is preserved.
func NewTable(rows []Interaction) *Table {
	t := &Table{
		rows:       make([]Interaction, 0, len(rows)),
		byUser:     make(map[int][]Interaction),
		placeIndex: make(map[int]int),
		cityIndex:  make(map[string]struct{}),
		catIndex:   make(map[string]struct{}),
	}

	seen := make(map[userPlace]struct{}, len(rows))
	for i := range rows {
		row := rows[i]
		key := userPlace{user: row.UserID, place: row.PlaceID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		idx := len(t.rows)
		t.rows = append(t.rows, row)

		if _, ok := t.byUser[row.UserID]; !ok {
			t.users = append(t.users, row.UserID)
		}
		t.byUser[row.UserID] = append(t.byUser[row.UserID], row)

		if _, ok := t.placeIndex[row.PlaceID]; !ok {
			t.placeIndex[row.PlaceID] = idx
		}
		if _, ok := t.catIndex[row.Category]; !ok {
			t.catIndex[row.Category] = struct{}{}
			t.categories = append(t.categories, row.Category)
		}
		if _, ok := t.cityIndex[row.City]; !ok {
			t.cityIndex[row.City] = struct{}{}
			t.cities = append(t.cities, row.City)
		}
	}

	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns all rows in table order.
func (t *Table) Rows() []Interaction {
	return t.rows
}

// HasUser reports whether userID has any recorded interaction.
func (t *Table) HasUser(userID int) bool {
	_, ok := t.byUser[userID]
	return ok
}

// UserRows returns the rows of userID in table order.
func (t *Table) UserRows(userID int) []Interaction {
	return t.byUser[userID]
}

// FirstUserRow returns the first recorded row of userID.
func (t *Table) FirstUserRow(userID int) (Interaction, bool) {
	rows := t.byUser[userID]
	if len(rows) == 0 {
		return Interaction{}, false
	}
	return rows[0], true
}

// Place returns the first row recorded for placeID. Name and price
// resolution always go through this row.
func (t *Table) Place(placeID int) (Interaction, bool) {
	idx, ok := t.placeIndex[placeID]
	if !ok {
		return Interaction{}, false
	}
	return t.rows[idx], true
}

// Categories returns the distinct categories in first-appearance order.
func (t *Table) Categories() []string {
	return t.categories
}

// HasCategory reports whether category appears in the table.
func (t *Table) HasCategory(category string) bool {
	_, ok := t.catIndex[category]
	return ok
}

// Cities returns the distinct cities in first-appearance order.
func (t *Table) Cities() []string {
	return t.cities
}

// HasCity reports whether city appears in the table.
func (t *Table) HasCity(city string) bool {
	_, ok := t.cityIndex[city]
	return ok
}

// Users returns the distinct user IDs in first-appearance order.
func (t *Table) Users() []int {
	return t.users
}

// UserRange returns the smallest and largest user ID.
func (t *Table) UserRange() (lowest, highest int, ok bool) {
	if len(t.users) == 0 {
		return 0, 0, false
	}
	lowest, highest = t.users[0], t.users[0]
	for _, id := range t.users[1:] {
		if id < lowest {
			lowest = id
		}
		if id > highest {
			highest = id
		}
	}
	return lowest, highest, true
}

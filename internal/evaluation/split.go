// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package evaluation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tomtom215/tripwise/internal/recommend"
)

// Split divides table into train and test tables, stratified by user: each
// user's rows are shuffled and round(n*testFraction) of them go to test.
// Row order within each output follows the input table.
func Split(table *recommend.Table, testFraction float64, seed int64) (train, test *recommend.Table, err error) {
	if testFraction < 0 || testFraction > 1 || math.IsNaN(testFraction) {
		return nil, nil, fmt.Errorf("test fraction %v: must be within [0, 1]", testFraction)
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible split
	inTest := make(map[userPlace]struct{})

	for _, user := range table.Users() {
		rows := table.UserRows(user)
		order := rng.Perm(len(rows))
		n := int(math.Round(float64(len(rows)) * testFraction))
		for _, i := range order[:n] {
			inTest[userPlace{user: user, place: rows[i].PlaceID}] = struct{}{}
		}
	}

	trainRows := make([]recommend.Interaction, 0, table.Len()-len(inTest))
	testRows := make([]recommend.Interaction, 0, len(inTest))
	for _, row := range table.Rows() {
		if _, ok := inTest[userPlace{user: row.UserID, place: row.PlaceID}]; ok {
			testRows = append(testRows, row)
		} else {
			trainRows = append(trainRows, row)
		}
	}
	return recommend.NewTable(trainRows), recommend.NewTable(testRows), nil
}

type userPlace struct {
	user  int
	place int
}

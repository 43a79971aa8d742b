// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package algorithms

import (
	"github.com/tomtom215/tripwise/internal/recommend"
)

const (
	culture   = "Culture"
	nautical  = "Nautical"
	amusement = "Amusement Park"
	jakarta   = "Jakarta"
	bandung   = "Bandung"
)

type placeFixture struct {
	id       int
	name     string
	category string
	city     string
	rating   float64
	price    float64
}

var fixturePlaces = map[int]placeFixture{
	1:  {1, "Museum Nasional", culture, jakarta, 4.5, 10000},
	2:  {2, "Kota Tua", culture, jakarta, 4.4, 20000},
	3:  {3, "Monas", culture, jakarta, 4.8, 50000},
	4:  {4, "Museum Wayang", culture, jakarta, 4.6, 5000},
	5:  {5, "Dunia Fantasi", amusement, jakarta, 4.2, 30000},
	10: {10, "Pantai Pangandaran", nautical, bandung, 4.0, 0},
}

func visit(user int, ageRange string, placeID int, placeRatings float64) recommend.Interaction {
	p := fixturePlaces[placeID]
	return recommend.Interaction{
		UserID:       user,
		AgeRange:     ageRange,
		PlaceID:      p.id,
		PlaceName:    p.name,
		Category:     p.category,
		City:         p.city,
		PlaceRatings: placeRatings,
		Rating:       p.rating,
		Price:        p.price,
	}
}

// fixtureTable returns three users over two cities:
//
//	user 1 (18-25): places 1, 2, 10
//	user 2 (18-25): places 3, 1, 5
//	user 3 (26-35): places 4, 3
func fixtureTable() *recommend.Table {
	return recommend.NewTable([]recommend.Interaction{
		visit(1, "18-25", 1, 4),
		visit(1, "18-25", 2, 5),
		visit(1, "18-25", 10, 3),
		visit(2, "18-25", 3, 5),
		visit(2, "18-25", 1, 3),
		visit(2, "18-25", 5, 4),
		visit(3, "26-35", 4, 4),
		visit(3, "26-35", 3, 2),
	})
}

func defaultAffinityOptions() recommend.AffinityOptions {
	return recommend.DefaultConfig().AffinityOptions(nil)
}

func defaultSelectOptions() recommend.SelectOptions {
	return recommend.DefaultConfig().SelectOptions()
}

// fixedSource returns the same value for every draw.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

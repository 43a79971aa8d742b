// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/tripwise/internal/recommend"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	loader, err := NewLoader(writeFixtures(t), nil, zerolog.Nop())
	require.NoError(t, err)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	want := []recommend.Interaction{
		{UserID: 1, AgeRange: "18-25", PlaceID: 2, PlaceName: "Dunia Fantasi", Category: "Amusement Park", City: "Jakarta", PlaceRatings: 5, Rating: 4.6, Price: 270000},
		{UserID: 1, AgeRange: "18-25", PlaceID: 3, PlaceName: "Pantai Ancol", Category: "Nautical", City: "Jakarta", PlaceRatings: 5, Rating: 4.5, Price: 0},
		{UserID: 1, AgeRange: "18-25", PlaceID: 1, PlaceName: "Monumen Nasional", Category: "Culture", City: "Jakarta", PlaceRatings: 3, Rating: 4.6, Price: 20000},
		{UserID: 2, AgeRange: "26-35", PlaceID: 3, PlaceName: "Pantai Ancol", Category: "Nautical", City: "Jakarta", PlaceRatings: 4, Rating: 4.5, Price: 0},
		{UserID: 2, AgeRange: "26-35", PlaceID: 1, PlaceName: "Monumen Nasional", Category: "Culture", City: "Jakarta", PlaceRatings: 2, Rating: 4.6, Price: 20000},
		{UserID: 3, AgeRange: "", PlaceID: 4, PlaceName: "Kebun Raya", Category: "Kebun", City: "Bogor", PlaceRatings: 1, Rating: 4.4, Price: 15000},
	}

	if diff := cmp.Diff(want, table.Rows()); diff != "" {
		t.Errorf("Load() rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Jakarta", "Bogor"}, table.Cities())
	assert.Equal(t, []int{1, 2, 3}, table.Users())
}

func TestLoader_CustomBinsAndTranslations(t *testing.T) {
	t.Parallel()

	cfg := writeFixtures(t)
	cfg.AgeBins = []float64{-1, 25, 100}
	cfg.AgeLabels = []string{"young", "older"}
	cfg.CategoryTranslations = map[string]string{"Kebun": "Garden"}

	loader, err := NewLoader(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	byUser := map[int]string{}
	categories := map[int]string{}
	for _, row := range table.Rows() {
		byUser[row.UserID] = row.AgeRange
		categories[row.PlaceID] = row.Category
	}

	assert.Equal(t, map[int]string{1: "young", 2: "older", 3: "young"}, byUser)
	assert.Equal(t, "Garden", categories[4])
	// Untranslated labels pass through.
	assert.Equal(t, "Budaya", categories[1])
}

func TestLoader_MissingSource(t *testing.T) {
	t.Parallel()

	cfg := writeFixtures(t)
	cfg.PlacesURL = cfg.PlacesURL + ".missing"

	loader, err := NewLoader(cfg, NewFetcher(nil, nil, zerolog.Nop()), zerolog.Nop())
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "fetch places"), "error = %v", err)
}

func TestLoader_RemoteWithoutFetcher(t *testing.T) {
	t.Parallel()

	cfg := writeFixtures(t)
	cfg.UsersURL = "https://example.com/users.csv"

	loader, err := NewLoader(cfg, nil, zerolog.Nop())
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	assert.ErrorContains(t, err, "needs a fetcher")
}

func TestBuildInteractionQuery(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CategoryTranslations = map[string]string{"B": "Bee", "A": "Ay"}
	paths := map[string]string{
		SourcePlaces:  "/data/places.csv",
		SourceRatings: "/data/o'brien/ratings.csv",
		SourceUsers:   "/data/users.csv",
	}

	stmt, args := buildInteractionQuery(paths, cfg)

	assert.Contains(t, stmt, "read_csv_auto('/data/o''brien/ratings.csv')")
	assert.Equal(t, len(cfg.AgeLabels)*3+4, len(args))
	assert.Equal(t, strings.Count(stmt, "?"), len(args))

	// Translation keys are bound in sorted order after the age bands.
	tail := args[len(cfg.AgeLabels)*3:]
	assert.Equal(t, []any{"A", "Ay", "B", "Bee"}, tail)
}

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case sql.Scanner:
			if err := p.Scan(r.values[i]); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

func TestScanInteraction_Nulls(t *testing.T) {
	t.Parallel()

	row := fakeRow{values: []any{int64(7), nil, int64(9), "Name", "Culture", "Jakarta", nil, 4.5, nil}}

	got, err := scanInteraction(row)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.PlaceRatings))
	assert.Equal(t, 4.5, got.Rating)
	assert.Equal(t, 0.0, got.Price)
	assert.Equal(t, "", got.AgeRange)
}

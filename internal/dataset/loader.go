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
	"os"
	"sort"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
	"github.com/rs/zerolog"

	"github.com/tomtom215/tripwise/internal/metrics"
	"github.com/tomtom215/tripwise/internal/recommend"
)

// Loader turns the three CSV sources into an Interaction Table. The join,
// de-duplication, age banding, translation and ordering run inside an
// in-memory DuckDB instance.
type Loader struct {
	cfg     Config
	fetcher *Fetcher
	logger  zerolog.Logger
}

// NewLoader creates a loader. fetcher may be nil when every source is local.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(cfg Config, fetcher *Fetcher, logger zerolog.Logger) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loader{cfg: cfg, fetcher: fetcher, logger: logger}, nil
}

// Load reads the sources and returns a new table.
func (l *Loader) Load(ctx context.Context) (*recommend.Table, error) {
	dir, err := os.MkdirTemp("", "tripwise-dataset-*")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	paths, err := l.materialize(ctx, dir)
	if err != nil {
		return nil, err
	}

	rows, err := l.query(ctx, paths)
	if err != nil {
		return nil, err
	}

	table := recommend.NewTable(rows)
	l.logger.Debug().
		Int("rows", table.Len()).
		Int("users", len(table.Users())).
		Int("categories", len(table.Categories())).
		Int("cities", len(table.Cities())).
		Msg("Interaction table built")
	return table, nil
}

func (l *Loader) materialize(ctx context.Context, dir string) (map[string]string, error) {
	sources := l.cfg.sources()
	if l.fetcher != nil {
		return l.fetcher.Materialize(ctx, dir, sources)
	}

	paths := make(map[string]string, len(sources))
	for _, src := range sources {
		if src.Remote() {
			return nil, fmt.Errorf("fetch %s: remote source %s needs a fetcher", src.Name, src.Location)
		}
		paths[src.Name] = src.Location
	}
	return paths, nil
}

func (l *Loader) query(ctx context.Context, paths map[string]string) ([]recommend.Interaction, error) {
	connStr := ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"
	if l.cfg.Threads > 0 {
		connStr += fmt.Sprintf("&threads=%d", l.cfg.Threads)
	}

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("query interactions: open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	stmt, args := buildInteractionQuery(paths, l.cfg)

	start := time.Now()
	result, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		metrics.RecordDBQuery("SELECT", "interactions", time.Since(start), err)
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer func() { _ = result.Close() }()

	var rows []recommend.Interaction
	for result.Next() {
		row, err := scanInteraction(result)
		if err != nil {
			metrics.RecordDBQuery("SELECT", "interactions", time.Since(start), err)
			return nil, fmt.Errorf("query interactions: scan: %w", err)
		}
		rows = append(rows, row)
	}
	err = result.Err()
	metrics.RecordDBQuery("SELECT", "interactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	return rows, nil
}

// buildInteractionQuery renders the preparation query. File paths are
// inlined as escaped literals because DuckDB does not accept parameters as
// table function arguments; bins, labels and translations are bound.
func buildInteractionQuery(paths map[string]string, cfg Config) (string, []any) {
	var args []any

	var ageCase strings.Builder
	ageCase.WriteString("CASE")
	for i, label := range cfg.AgeLabels {
		ageCase.WriteString(" WHEN Age > ? AND Age <= ? THEN ?")
		args = append(args, cfg.AgeBins[i], cfg.AgeBins[i+1], label)
	}
	ageCase.WriteString(" ELSE NULL END")

	category := "CAST(Category AS VARCHAR)"
	if len(cfg.CategoryTranslations) > 0 {
		keys := make([]string, 0, len(cfg.CategoryTranslations))
		for k := range cfg.CategoryTranslations {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString("CASE CAST(Category AS VARCHAR)")
		for _, k := range keys {
			b.WriteString(" WHEN ? THEN ?")
			args = append(args, k, cfg.CategoryTranslations[k])
		}
		b.WriteString(" ELSE CAST(Category AS VARCHAR) END")
		category = b.String()
	}

	stmt := fmt.Sprintf(`
WITH joined AS (
	SELECT DISTINCT *
	FROM read_csv_auto(%s) AS r
	JOIN read_csv_auto(%s) AS u USING (User_Id)
	JOIN read_csv_auto(%s) AS p USING (Place_Id)
	WHERE User_Id IS NOT NULL AND Place_Id IS NOT NULL
)
SELECT
	CAST(User_Id AS BIGINT),
	%s AS Age_Range,
	CAST(Place_Id AS BIGINT),
	CAST(Place_Name AS VARCHAR),
	%s AS Category,
	CAST(City AS VARCHAR),
	CAST(Place_Ratings AS DOUBLE),
	CAST(Rating AS DOUBLE),
	CAST(Price AS DOUBLE)
FROM joined
ORDER BY User_Id ASC, Place_Ratings DESC NULLS LAST, Rating DESC NULLS LAST, Place_Id ASC`,
		quoteLiteral(paths[SourceRatings]),
		quoteLiteral(paths[SourceUsers]),
		quoteLiteral(paths[SourcePlaces]),
		ageCase.String(),
		category,
	)
	return stmt, args
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInteraction(s rowScanner) (recommend.Interaction, error) {
	var (
		userID, placeID               int64
		ageRange, name, category, city sql.NullString
		placeRating, rating, price    sql.NullFloat64
	)
	if err := s.Scan(&userID, &ageRange, &placeID, &name, &category, &city, &placeRating, &rating, &price); err != nil {
		return recommend.Interaction{}, err
	}

	return recommend.Interaction{
		UserID:       int(userID),
		AgeRange:     ageRange.String,
		PlaceID:      int(placeID),
		PlaceName:    name.String,
		Category:     category.String,
		City:         city.String,
		PlaceRatings: nullableFloat(placeRating),
		Rating:       nullableFloat(rating),
		Price:        price.Float64,
	}, nil
}

// nullableFloat maps NULL to NaN so rating means can skip it.
func nullableFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

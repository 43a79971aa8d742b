// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/tripwise/internal/logging"
	"github.com/tomtom215/tripwise/internal/metrics"
	"github.com/tomtom215/tripwise/internal/recommend"
)

// PlaceView is one recommended place. Places are returned as a list so that
// rank order survives clients that reorder JSON objects.
type PlaceView struct {
	PlaceID   int    `json:"place_id"`
	PlaceName string `json:"place_name"`
}

// RecommendationView is the body of GET /api/v1/recommendations.
type RecommendationView struct {
	Category string                   `json:"category"`
	Places   []PlaceView              `json:"places"`
	Metadata recommend.ResultMetadata `json:"metadata"`
}

func newRecommendationView(res *recommend.Result) RecommendationView {
	places := make([]PlaceView, 0, res.Places.Len())
	for pair := res.Places.Oldest(); pair != nil; pair = pair.Next() {
		places = append(places, PlaceView{PlaceID: pair.Key, PlaceName: pair.Value})
	}
	return RecommendationView{Category: res.Category, Places: places, Metadata: res.Metadata}
}

// Recommend handles GET /api/v1/recommendations?user_id=&category=&city=[&seed=]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	start := time.Now()

	query, err := parseRecommendationQuery(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validate(rw, &query) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	// Cities are validated here; the engine treats an unknown city as an
	// empty ranking.
	table, err := h.store.Snapshot(ctx)
	if err != nil {
		writeEngineError(rw, r, err)
		return
	}
	if !table.HasCity(query.City) {
		writeEngineError(rw, r, fmt.Errorf("city %q: %w", query.City, recommend.ErrUnknownCity))
		return
	}

	res, err := h.engine.Recommend(ctx, recommend.Request{
		RequestID: logging.RequestIDFromContext(r.Context()),
		UserID:    query.UserID,
		Category:  query.Category,
		City:      query.City,
		Seed:      query.Seed,
	})
	if err != nil {
		metrics.RecordRecommendation("", 0, false, false, time.Since(start), err)
		if !errors.Is(err, recommend.ErrInvalidCategory) {
			logging.CtxErr(ctx, err).Int("user_id", query.UserID).Msg("Recommendation failed")
		}
		writeEngineError(rw, r, err)
		return
	}

	metrics.RecordRecommendation(res.Category, res.Places.Len(), res.Metadata.ColdStart, res.Metadata.CohortFallback, time.Since(start), nil)
	rw.Success(newRecommendationView(res))
}

// Categories handles GET /api/v1/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	categories, err := h.engine.Vocabulary(r.Context())
	if err != nil {
		writeEngineError(rw, r, err)
		return
	}
	rw.SuccessList(categories, len(categories))
}

// Cities handles GET /api/v1/cities
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	table, err := h.store.Snapshot(r.Context())
	if err != nil {
		writeEngineError(rw, r, err)
		return
	}
	cities := table.Cities()
	rw.SuccessList(cities, len(cities))
}

// Affinity handles GET /api/v1/users/{id}/affinity
func (h *Handler) Affinity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	path, err := parseUserPath(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validate(rw, &path) {
		return
	}

	probs, err := h.engine.Affinity(r.Context(), path.UserID)
	if err != nil {
		writeEngineError(rw, r, err)
		return
	}
	rw.SuccessList(probs, len(probs))
}

// Transitions handles GET /api/v1/users/{id}/transitions
func (h *Handler) Transitions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	path, err := parseUserPath(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validate(rw, &path) {
		return
	}

	matrix, err := h.engine.Transitions(r.Context(), path.UserID)
	if err != nil {
		writeEngineError(rw, r, err)
		return
	}
	rw.SuccessList(matrix, len(matrix))
}

// Rankings handles GET /api/v1/rankings?city=[&age_range=]
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	query := parseRankingQuery(r)
	if !validate(rw, &query) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	ranking, err := h.engine.Rankings(ctx, query.City)
	if err != nil {
		writeEngineError(rw, r, err)
		return
	}
	if query.AgeRange != "" {
		ranking = ranking.Cohort(query.AgeRange)
	}
	if ranking == nil {
		ranking = recommend.RankingTable{}
	}
	rw.SuccessList(ranking, len(ranking))
}

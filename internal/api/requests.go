// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tripwise/internal/validation"
)

// RecommendationQuery is GET /api/v1/recommendations.
type RecommendationQuery struct {
	UserID   int    `query:"user_id" validate:"gte=0"`
	Category string `query:"category" validate:"label"`
	City     string `query:"city" validate:"label"`
	Seed     *int64 `query:"seed"`
}

// RankingQuery is GET /api/v1/rankings.
type RankingQuery struct {
	City     string `query:"city" validate:"label"`
	AgeRange string `query:"age_range" validate:"omitempty,label"`
}

// UserPath is the {id} segment of /api/v1/users/{id}/...
type UserPath struct {
	UserID int `query:"id" validate:"gte=0"`
}

// paramError is a malformed query or path parameter.
type paramError struct {
	field string
	msg   string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s %s", e.field, e.msg)
}

func parseRecommendationQuery(r *http.Request) (RecommendationQuery, error) {
	q := r.URL.Query()
	var out RecommendationQuery

	userID, err := requiredInt(q.Get("user_id"), "user_id")
	if err != nil {
		return out, err
	}
	out.UserID = userID
	out.Category = q.Get("category")
	out.City = q.Get("city")

	if s := strings.TrimSpace(q.Get("seed")); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return out, &paramError{field: "seed", msg: "must be an integer"}
		}
		out.Seed = &seed
	}
	return out, nil
}

func parseRankingQuery(r *http.Request) RankingQuery {
	q := r.URL.Query()
	return RankingQuery{City: q.Get("city"), AgeRange: q.Get("age_range")}
}

func parseUserPath(r *http.Request) (UserPath, error) {
	id, err := requiredInt(chi.URLParam(r, "id"), "id")
	return UserPath{UserID: id}, err
}

func requiredInt(raw, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &paramError{field: field, msg: "is required"}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{field: field, msg: "must be an integer"}
	}
	return v, nil
}

// validate writes a 400 and returns false when s fails validation.
func validate(rw *ResponseWriter, s interface{}) bool {
	if verr := validation.ValidateStruct(s); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

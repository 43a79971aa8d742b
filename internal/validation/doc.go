// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. It reports fields by
// their query or json tag name and registers one custom tag:
//
//   - label: a non-empty, printable name of at most 100 bytes with no
//     leading or trailing whitespace (categories, cities, age ranges)
//
// Example usage:
//
//	type RecommendationQuery struct {
//	    UserID   int    `query:"user_id" validate:"gte=0"`
//	    Category string `query:"category" validate:"label"`
//	    City     string `query:"city" validate:"label"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    rw.ValidationError(apiErr.Message, apiErr.Details)
//	    return
//	}
package validation

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package recommend

import "errors"

var (
	// ErrInvalidCategory is returned when a source category has no rows in
	// the transition matrix.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrUnknownCity is returned by callers that validate a city against the
	// table before recommending.
	ErrUnknownCity = errors.New("unknown city")

	// ErrNoData is returned when no Interaction Table has been loaded.
	ErrNoData = errors.New("no interaction data loaded")

	// ErrNoModel is returned when the engine has no model registered.
	ErrNoModel = errors.New("no model registered")
)

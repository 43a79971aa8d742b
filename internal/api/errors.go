// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/tripwise/internal/logging"
	"github.com/tomtom215/tripwise/internal/recommend"
)

// writeEngineError maps engine and store errors to the API envelope.
func writeEngineError(rw *ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidCategory):
		rw.Error(http.StatusBadRequest, ErrCodeInvalidCategory, "category is not in the vocabulary")
	case errors.Is(err, recommend.ErrUnknownCity):
		rw.Error(http.StatusBadRequest, ErrCodeUnknownCity, "city has no places in the dataset")
	case errors.Is(err, recommend.ErrNoData), errors.Is(err, recommend.ErrNoModel):
		rw.ServiceUnavailable(ErrCodeDataNotLoaded, "dataset is not loaded yet", nil)
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		rw.Error(http.StatusServiceUnavailable, ErrCodeTimeout, "request canceled")
	default:
		logging.CtxErr(r.Context(), err).Msg("Request failed")
		rw.InternalError("internal error")
	}
}

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/tripwise/internal/logging"
)

// ReloadDataset handles POST /api/v1/dataset/reload.
// A failed reload keeps serving the previous table.
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	// Detached from the client so a dropped connection does not abort a
	// reload halfway through a download.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.opts.ReloadTimeout)
	defer cancel()

	status, err := h.store.Reload(ctx)
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Dataset reload requested via API failed")
		rw.ErrorWithDetails(http.StatusBadGateway, ErrCodeReloadFailed, "dataset reload failed", status)
		return
	}

	logging.Ctx(r.Context()).Info().Int("rows", status.Rows).Msg("Dataset reloaded via API")
	rw.Success(status)
}

// DatasetStatus handles GET /api/v1/dataset/status
func (h *Handler) DatasetStatus(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.store.Status())
}

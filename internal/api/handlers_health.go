// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":   true,
		"version": h.opts.Version,
		"uptime":  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only once an Interaction Table has been published.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	status := h.store.Status()

	if !h.store.Ready() {
		rw.ServiceUnavailable(ErrCodeDataNotLoaded, "dataset is not loaded yet", status)
		return
	}

	rw.Success(map[string]interface{}{
		"ready":   true,
		"dataset": status,
		"engine":  h.engine.GetMetrics(),
	})
}

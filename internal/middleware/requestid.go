// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package middleware

import (
	"net/http"
	"regexp"

	"github.com/tomtom215/tripwise/internal/logging"
)

// RequestIDHeader is read from clients and echoed on every response.
const RequestIDHeader = "X-Request-ID"

// validRequestID bounds client-supplied IDs before they reach logs.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// RequestID propagates X-Request-ID, or generates a UUID, and stores it in
// the request context for logging.Ctx and the API envelope.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID.MatchString(requestID) {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

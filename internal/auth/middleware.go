// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tripwise/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the validated *Claims on authenticated requests.
const ClaimsContextKey contextKey = "claims"

// Mode values accepted by NewMiddleware.
const (
	ModeNone = "none"
	ModeJWT  = "jwt"
)

// Middleware enforces bearer-token authentication.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
	security   *logging.SecurityLogger
}

// NewMiddleware creates an authentication middleware. jwtManager may be nil
// when authMode is ModeNone.
func NewMiddleware(jwtManager *JWTManager, authMode string, security *logging.SecurityLogger) *Middleware {
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	return &Middleware{
		jwtManager: jwtManager,
		authMode:   authMode,
		security:   security,
	}
}

// Authenticate rejects requests without a valid token with 401. In ModeNone
// every request passes through.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode != ModeJWT {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			m.security.LogTokenRejected("", r.RemoteAddr, r.URL.Path, ErrNoCredentials.Error())
			writeUnauthorized(w, r, "authentication required")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.security.LogTokenRejected(token, r.RemoteAddr, r.URL.Path, err.Error())
			msg := "invalid token"
			if errors.Is(err, ErrExpiredToken) {
				msg = "token expired"
			}
			writeUnauthorized(w, r, msg)
			return
		}

		m.security.LogTokenAccepted(claims.Subject, r.RemoteAddr, r.URL.Path)
		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims set by Authenticate, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

// extractToken reads the bearer token from the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// unauthorizedBody matches the API error envelope.
type unauthorizedBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	var body unauthorizedBody
	body.Error.Code = "UNAUTHORIZED"
	body.Error.Message = message
	body.Error.RequestID = logging.RequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("WWW-Authenticate", `Bearer realm="tripwise"`)
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

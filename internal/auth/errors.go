// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package auth

import "errors"

var (
	// ErrNoCredentials is returned when the request carries no bearer token.
	ErrNoCredentials = errors.New("missing bearer token")

	// ErrInvalidToken is returned for malformed, tampered or wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when the token's exp claim has passed.
	ErrExpiredToken = errors.New("token expired")
)

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Package auth provides optional HS256 bearer-token authentication for the
// HTTP API.
//
// With AUTH_MODE=jwt every /api/v1 request must carry
// "Authorization: Bearer <token>" signed with JWT_SECRET. Rejections and
// acceptances go through logging.SecurityLogger, which masks the token.
// Tokens can be minted with JWTManager.GenerateToken or
// "tripwise-server -issue-token <subject>".
package auth

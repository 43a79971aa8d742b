// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Package logging provides centralized zerolog-based structured logging for Tripwise.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("rows", table.Len()).Msg("Dataset loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Recommendation failed")
//
// # Configuration
//
// The logging section of the application config maps to Config:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Components
//
// Long-lived services take a component logger so their entries can be
// filtered:
//
//	logger := logging.WithComponent("dataset")
//
// The recommendation engine receives its logger explicitly through
// recommend.NewEngine and never reads the global one.
//
// # slog Bridge
//
// SlogHandler adapts zerolog to log/slog for the suture supervisor tree:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Security Events
//
// SecurityLogger records JWT acceptance and rejection. Tokens are masked to
// their first and last four characters and error messages that quote
// credentials are replaced.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging

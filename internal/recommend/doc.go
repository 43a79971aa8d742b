// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Package recommend implements the travel category and place recommendation
// engine.
//
// # Architecture
//
// A request flows through five stages over one immutable Interaction Table:
//
//   - Category affinity: the user's visit counts and ratings per category
//   - Transition matrix: every ordered category pair plus self pairs
//   - Category sampling: one weighted draw from the current category's row
//   - Cohort ranking: places of the city ranked per age range
//   - Selection: unvisited, affordable places of the sampled category
//
// The stages are supplied by a Model (see the algorithms package). The
// Engine sequences them, owns configuration, and reports diagnostics.
//
// # Design Principles
//
//   - Deterministic: sampling uses a per-request seeded random source
//   - Stateless: derived structures are rebuilt for every request
//   - Explicit vocabulary: the category set comes from Config.Categories
//     or, when empty, from the loaded table
//   - Explicit spend policy: users without priced history follow
//     Config.Selection.UnpricedPolicy
//
// # Cold Start
//
// Users without recorded interactions get a uniform category distribution
// and the best rated places of the sampled category across all cohorts,
// without history or budget filtering.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	engine.RegisterModel(algorithms.NewMarkovCategory())
//	engine.SetDataProvider(store)
//
//	res, err := engine.Recommend(ctx, recommend.Request{
//	    UserID:   1,
//	    Category: "Culture",
//	    City:     "Jakarta",
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Tables are immutable once built
// and every request owns its random source, so concurrent requests share no
// mutable state beyond atomic counters. Configuration updates take an
// exclusive lock and are visible to requests that start afterwards.
package recommend

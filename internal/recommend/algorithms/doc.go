// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Package algorithms implements the category-transition recommender
// sequenced by recommend.Engine.
//
// # Stages
//
// Each stage is a pure function over an immutable recommend.Table:
//
//   - EstimateAffinity: per-user category probability table
//   - BuildTransitionMatrix: every ordered category pair plus self pairs
//   - SampleCategory: one weighted draw from a transition matrix row
//   - RankByCohort: places ranked per age cohort within a city
//   - UserHistory: places a user has visited
//   - SelectPlaces: top places under novelty and budget constraints
//
// MarkovCategory bundles the stages behind the recommend.Model interface:
//
//	engine, _ := recommend.NewEngine(cfg, logger)
//	engine.RegisterModel(algorithms.NewMarkovCategory())
//	engine.SetDataProvider(store)
//
// # Transition Model
//
// The probability of moving from category a to category b is the marginal
// affinity of b. Transitions are therefore independent of the source, and
// sampling re-draws from the user's affinity distribution. The source only
// has to exist in the matrix.
//
// # Thread Safety
//
// The stages hold no state. Randomness is supplied per call through
// recommend.RandomSource, so concurrent requests with their own seeds do
// not interfere.
package algorithms

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Package dataset builds and publishes the Interaction Table.
//
// Three CSV sources (places, ratings, users) are read from local paths or
// downloaded over HTTP. Downloads go through a circuit breaker and a
// BadgerDB cache keyed by URL. The files are then joined in an in-memory
// DuckDB instance:
//
//	ratings JOIN users USING (User_Id) JOIN places USING (Place_Id)
//
// Exact duplicate rows are dropped, ages are banded into right-inclusive
// cohorts, categories are translated, and rows are ordered by user, then by
// the user's rating and the place's average rating, both descending.
//
// Store holds the active table behind an atomic pointer and implements
// recommend.DataProvider. A failed reload leaves the previous table active.
//
//	cache, _ := dataset.OpenCache(cfg.CacheDir, cfg.CacheTTL)
//	loader, _ := dataset.NewLoader(cfg, dataset.NewFetcher(nil, cache, logger), logger)
//	store := dataset.NewStore(loader, logger, cache.Close)
//	if _, err := store.Reload(ctx); err != nil {
//	    return err
//	}
//	engine.SetDataProvider(store)
package dataset

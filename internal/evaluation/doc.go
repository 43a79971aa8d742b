// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

/*
Package evaluation measures recommendation quality offline.

Two measures are provided:

  - Holdout accuracy. Split divides every user's rows between a train and a
    test table. SuccessCount predicts a category from the train history,
    selects places from the test ranking and counts how many recommended
    places the user actually visited in the test rows. SampleAccuracy sums
    this over randomly drawn users.

  - Cohort hit ratio. CohortHitRatio runs a live recommendation for one
    interaction row and reports the percentage of same-cohort users in that
    city who visited the recommended category and at least one of the
    recommended places. SampleCohortHits averages it over random rows.

Users and rows are drawn with seeded generators so a run is reproducible.
Per-user work is fanned out with errgroup; each task derives its own seed.
*/
package evaluation

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomtom215/tripwise/internal/evaluation"
)

func TestPrintReport(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	printReport(&out, &report{
		Accuracy: &evaluation.AccuracyReport{Success: 12, Total: 40, Ratio: 0.3},
		Cohort:   &evaluation.CohortReport{Hits: 5, Cohort: 9, AveragePercentage: 41.5},
	})

	want := "Holdout accuracy\n" +
		"  Success:    12\n" +
		"  Total:      40\n" +
		"  Percentage: 30.00%\n" +
		"\n" +
		"Cohort hit ratio\n" +
		"  Success:    5\n" +
		"  Total:      9\n" +
		"  Percentage: 41.50%\n"
	assert.Equal(t, want, out.String())
}

func TestRun_RejectsNonPositiveUsers(t *testing.T) {
	t.Parallel()

	err := run(options{users: 0}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "-users must be positive")
}

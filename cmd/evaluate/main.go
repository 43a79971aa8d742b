// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Command evaluate measures recommendation quality against the configured
// dataset. It runs the holdout accuracy and the cohort hit ratio in parallel
// and prints both reports:
//
//	evaluate -users 50 -seed 1
//	evaluate -users 200 -json > report.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/tripwise/internal/bootstrap"
	"github.com/tomtom215/tripwise/internal/config"
	"github.com/tomtom215/tripwise/internal/evaluation"
	"github.com/tomtom215/tripwise/internal/logging"
	"github.com/tomtom215/tripwise/internal/recommend/algorithms"
)

type options struct {
	configPath   string
	users        int
	seed         int64
	testFraction float64
	splitSeed    int64
	jsonOutput   bool
}

// report is the -json output.
type report struct {
	Accuracy *evaluation.AccuracyReport `json:"accuracy"`
	Cohort   *evaluation.CohortReport   `json:"cohort"`
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flag.IntVar(&opts.users, "users", 10, "number of users (and rows) to sample")
	flag.Int64Var(&opts.seed, "seed", 1, "sampling seed")
	flag.Float64Var(&opts.testFraction, "test-fraction", evaluation.DefaultTestFraction, "share of each user's rows held out for testing")
	flag.Int64Var(&opts.splitSeed, "split-seed", evaluation.DefaultSplitSeed, "seed for the train/test split")
	flag.BoolVar(&opts.jsonOutput, "json", false, "print the reports as JSON")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	if opts.users <= 0 {
		return fmt.Errorf("-users must be positive, got %d", opts.users)
	}

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: "console", Output: os.Stderr})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	components, table, err := bootstrap.Load(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = components.Close() }()

	holdout, err := evaluation.NewHoldout(table, opts.testFraction, opts.splitSeed)
	if err != nil {
		return err
	}
	evaluator := evaluation.NewEvaluator(algorithms.NewMarkovCategory(), cfg.EngineConfig(), logger)

	var rep report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rep.Accuracy, err = evaluator.SampleAccuracy(gctx, holdout, opts.users, opts.seed)
		return err
	})
	g.Go(func() error {
		var err error
		rep.Cohort, err = evaluator.SampleCohortHits(gctx, table, components.Engine, opts.users, opts.seed)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printReport(out, &rep)
	return nil
}

func printReport(out io.Writer, rep *report) {
	fmt.Fprintln(out, "Holdout accuracy")
	fmt.Fprintf(out, "  Success:    %d\n", rep.Accuracy.Success)
	fmt.Fprintf(out, "  Total:      %d\n", rep.Accuracy.Total)
	fmt.Fprintf(out, "  Percentage: %.2f%%\n", rep.Accuracy.Ratio*100)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cohort hit ratio")
	fmt.Fprintf(out, "  Success:    %d\n", rep.Cohort.Hits)
	fmt.Fprintf(out, "  Total:      %d\n", rep.Cohort.Cohort)
	fmt.Fprintf(out, "  Percentage: %.2f%%\n", rep.Cohort.AveragePercentage)
}

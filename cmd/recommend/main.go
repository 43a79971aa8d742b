// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

// Command recommend prints travel recommendations for one user from the
// terminal.
//
// It loads the configured dataset, then asks for a user id, the category the
// user is currently interested in and the city to visit. Any of the three can
// be given as flags to skip the prompt:
//
//	recommend -user 42 -category Culture -city Jakarta
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/tomtom215/tripwise/internal/bootstrap"
	"github.com/tomtom215/tripwise/internal/config"
	"github.com/tomtom215/tripwise/internal/logging"
	"github.com/tomtom215/tripwise/internal/recommend"
)

type options struct {
	configPath string
	user       int
	category   string
	city       string
	seed       int64
	seedSet    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flag.IntVar(&opts.user, "user", -1, "user id (prompted when omitted)")
	flag.StringVar(&opts.category, "category", "", "current category (prompted when omitted)")
	flag.StringVar(&opts.city, "city", "", "city to visit (prompted when omitted)")
	flag.Int64Var(&opts.seed, "seed", 0, "sampling seed (default: RECOMMEND_SEED)")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts options, in io.Reader, out io.Writer) error {
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
	// Logs go to stderr so stdout only carries the conversation.
	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: "console", Output: os.Stderr})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	components, table, err := bootstrap.Load(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = components.Close() }()

	vocabulary, err := components.Engine.Vocabulary(ctx)
	if err != nil {
		return err
	}

	p := newPrompter(in, out)
	req, err := p.collect(opts, table, vocabulary)
	if err != nil {
		return err
	}
	if opts.seedSet {
		req.Seed = &opts.seed
	}

	res, err := components.Engine.Recommend(ctx, req)
	if err != nil {
		return err
	}
	printResult(out, res)
	return nil
}

func printResult(out io.Writer, res *recommend.Result) {
	fmt.Fprintf(out, "\nRecommended category: %s\n", res.Category)
	if res.Places.Len() == 0 {
		fmt.Fprintln(out, "No places matched. Try another city or category.")
		return
	}
	fmt.Fprintln(out, "Top recommendations:")
	rank := 1
	for pair := res.Places.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(out, "  %d. %s (place %d)\n", rank, pair.Value, pair.Key)
		rank++
	}
}

// prompter reads answers line by line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// collect fills the request from opts, prompting for anything missing.
func (p *prompter) collect(opts options, table *recommend.Table, vocabulary []string) (recommend.Request, error) {
	var req recommend.Request
	var err error

	req.UserID = opts.user
	if req.UserID < 0 {
		if req.UserID, err = p.askUser(table); err != nil {
			return req, err
		}
	}
	if !table.HasUser(req.UserID) {
		fmt.Fprintf(p.out, "User %d is new. No history found.\n", req.UserID)
	}

	req.Category = opts.category
	if !contains(vocabulary, req.Category) {
		if req.Category != "" {
			fmt.Fprintf(p.out, "Unknown category %q.\n", req.Category)
		}
		if req.Category, err = p.askChoice("Category", vocabulary); err != nil {
			return req, err
		}
	}

	req.City = opts.city
	if !table.HasCity(req.City) {
		if req.City != "" {
			fmt.Fprintf(p.out, "Unknown city %q.\n", req.City)
		}
		if req.City, err = p.askChoice("City", table.Cities()); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (p *prompter) askUser(table *recommend.Table) (int, error) {
	lo, hi, _ := table.UserRange()
	for {
		fmt.Fprintf(p.out, "User id (%d..%d): ", lo, hi)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		var id int
		if _, err := fmt.Sscan(line, &id); err != nil || id < 0 {
			fmt.Fprintln(p.out, "Please enter a non-negative whole number.")
			continue
		}
		return id, nil
	}
}

func (p *prompter) askChoice(label string, choices []string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s options:\n", label)
		for _, c := range choices {
			fmt.Fprintf(p.out, "  - %s\n", c)
		}
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if contains(choices, line) {
			return line, nil
		}
		fmt.Fprintf(p.out, "%q is not one of the options.\n", line)
	}
}

func (p *prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func contains(choices []string, v string) bool {
	return v != "" && slices.Contains(choices, v)
}

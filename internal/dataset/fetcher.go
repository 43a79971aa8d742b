// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/tripwise/internal/metrics"
)

// Source names.
const (
	SourcePlaces  = "places"
	SourceRatings = "ratings"
	SourceUsers   = "users"
)

// maxSourceBytes bounds a single CSV download.
const maxSourceBytes = 64 << 20

// Source is one CSV input.
type Source struct {
	Name     string
	Location string
}

// Remote reports whether the source is fetched over HTTP.
func (s Source) Remote() bool {
	return strings.HasPrefix(s.Location, "http://") || strings.HasPrefix(s.Location, "https://")
}

// Fetcher downloads remote sources through a circuit breaker and an optional
// cache. Local sources pass through untouched.
//
// The circuit breaker uses real time (via sony/gobreaker) for its interval
// and timeout calculations.
type Fetcher struct {
	client *http.Client
	cache  *Cache
	cb     *gobreaker.CircuitBreaker[[]byte]
	name   string
	logger zerolog.Logger
}

// NewFetcher creates a fetcher. cache may be nil to always download.
//
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFetcher(client *http.Client, cache *Cache, logger zerolog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	cbName := "dataset-download"
	logger = logger.With().Str("breaker", cbName).Logger()

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("Opening download circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Download circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &Fetcher{client: client, cache: cache, cb: cb, name: cbName, logger: logger}
}

// Fetch returns the bytes of a remote source, consulting the cache first.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	if f.cache != nil {
		body, ok, err := f.cache.Get(src.Location)
		if err != nil {
			f.logger.Warn().Err(err).Str("source", src.Name).Msg("Download cache read failed")
		}
		metrics.RecordCacheLookup("dataset", ok)
		if ok {
			f.logger.Debug().Str("source", src.Name).Int("bytes", len(body)).Msg("Using cached download")
			return body, nil
		}
	}

	start := time.Now()
	body, err := f.execute(func() ([]byte, error) {
		return f.download(ctx, src.Location)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	metrics.RecordDatasetFetch(src.Name, time.Since(start))

	if f.cache != nil {
		if err := f.cache.Put(src.Location, body); err != nil {
			f.logger.Warn().Err(err).Str("source", src.Name).Msg("Download cache write failed")
		}
	}
	return body, nil
}

// Materialize makes every source readable as a local file. Remote sources are
// fetched concurrently and written into dir. The result maps source name to path.
func (f *Fetcher) Materialize(ctx context.Context, dir string, sources []Source) (map[string]string, error) {
	paths := make(map[string]string, len(sources))
	resolved := make([]string, len(sources))

	for i, src := range sources {
		if src.Remote() {
			continue
		}
		if _, err := os.Stat(src.Location); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
		}
		resolved[i] = src.Location
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		if !src.Remote() {
			continue
		}
		g.Go(func() error {
			body, err := f.Fetch(gctx, src)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, src.Name+".csv")
			if err := os.WriteFile(path, body, 0o600); err != nil {
				return fmt.Errorf("fetch %s: write %s: %w", src.Name, path, err)
			}
			resolved[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, src := range sources {
		paths[src.Name] = resolved[i]
	}
	return paths, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxSourceBytes {
		return nil, fmt.Errorf("source %s exceeds %d bytes", url, maxSourceBytes)
	}
	return body, nil
}

// execute wraps a download with circuit breaker protection.
func (f *Fetcher) execute(fn func() ([]byte, error)) ([]byte, error) {
	result, err := f.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(f.name, "rejected").Inc()
			f.logger.Warn().Err(err).Msg("Download rejected by circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(f.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(f.name).Set(float64(f.cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(f.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(f.name).Set(0)
	return result, nil
}

// State returns the breaker state as a string.
func (f *Fetcher) State() string {
	return stateToString(f.cb.State())
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// csvServer serves the fixture CSVs and counts requests per path.
func csvServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	bodies := map[string]string{
		"/places.csv":  placesCSV,
		"/ratings.csv": ratingsCSV,
		"/users.csv":   usersCSV,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func memoryCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache("", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestSource_Remote(t *testing.T) {
	t.Parallel()

	assert.True(t, Source{Location: "https://example.com/a.csv"}.Remote())
	assert.True(t, Source{Location: "http://localhost/a.csv"}.Remote())
	assert.False(t, Source{Location: "/tmp/a.csv"}.Remote())
	assert.False(t, Source{Location: "data/a.csv"}.Remote())
}

func TestFetcher_FetchUsesCache(t *testing.T) {
	t.Parallel()

	srv, hits := csvServer(t)
	f := NewFetcher(srv.Client(), memoryCache(t), zerolog.Nop())
	src := Source{Name: SourcePlaces, Location: srv.URL + "/places.csv"}

	first, err := f.Fetch(context.Background(), src)
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, placesCSV, string(first))
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), hits.Load(), "second fetch should be served from cache")
}

func TestFetcher_FetchWithoutCache(t *testing.T) {
	t.Parallel()

	srv, hits := csvServer(t)
	f := NewFetcher(srv.Client(), nil, zerolog.Nop())
	src := Source{Name: SourceUsers, Location: srv.URL + "/users.csv"}

	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), src)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), hits.Load())
}

func TestFetcher_FetchNotFound(t *testing.T) {
	t.Parallel()

	srv, _ := csvServer(t)
	f := NewFetcher(srv.Client(), nil, zerolog.Nop())

	_, err := f.Fetch(context.Background(), Source{Name: SourcePlaces, Location: srv.URL + "/missing.csv"})
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestFetcher_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(srv.Client(), nil, zerolog.Nop())
	src := Source{Name: SourceRatings, Location: srv.URL + "/ratings.csv"}

	for i := 0; i < 10; i++ {
		_, err := f.Fetch(context.Background(), src)
		require.Error(t, err)
	}
	assert.Equal(t, "open", f.State())

	_, err := f.Fetch(context.Background(), src)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState), "error = %v", err)
	assert.Equal(t, int64(10), hits.Load(), "open circuit must not reach the server")
}

func TestFetcher_Materialize(t *testing.T) {
	t.Parallel()

	srv, hits := csvServer(t)
	local := writeFixtures(t)
	f := NewFetcher(srv.Client(), nil, zerolog.Nop())
	dir := t.TempDir()

	paths, err := f.Materialize(context.Background(), dir, []Source{
		{Name: SourcePlaces, Location: srv.URL + "/places.csv"},
		{Name: SourceRatings, Location: srv.URL + "/ratings.csv"},
		{Name: SourceUsers, Location: local.UsersURL},
	})
	require.NoError(t, err)

	assert.Equal(t, local.UsersURL, paths[SourceUsers], "local sources pass through")
	body, err := os.ReadFile(paths[SourcePlaces])
	require.NoError(t, err)
	assert.Equal(t, placesCSV, string(body))
	assert.Equal(t, int64(2), hits.Load())
}

func TestLoader_RemoteSources(t *testing.T) {
	t.Parallel()

	srv, hits := csvServer(t)
	cfg := DefaultConfig()
	cfg.PlacesURL = srv.URL + "/places.csv"
	cfg.RatingsURL = srv.URL + "/ratings.csv"
	cfg.UsersURL = srv.URL + "/users.csv"

	loader, err := NewLoader(cfg, NewFetcher(srv.Client(), memoryCache(t), zerolog.Nop()), zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		table, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 6, table.Len())
	}
	assert.Equal(t, int64(3), hits.Load(), "reload should hit the download cache")
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	cache := memoryCache(t)
	require.NoError(t, cache.Put("https://example.com/a.csv", []byte("a,b\n")))

	body, ok, err := cache.Get("https://example.com/a.csv")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a,b\n", string(body))

	require.NoError(t, cache.Invalidate("https://example.com/a.csv"))
	_, ok, err = cache.Get("https://example.com/a.csv")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	require.NoError(t, cache.Invalidate("https://example.com/never.csv"))
}

func TestCache_PersistsOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := OpenCache(dir, 0)
	require.NoError(t, err)
	require.NoError(t, cache.Put("k", []byte("v")))
	require.NoError(t, cache.Close())

	reopened, err := OpenCache(dir, 0)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	body, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(body))
}

// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const downloadKeyPrefix = "download:"

// cachedDownload is the value stored per source URL.
type cachedDownload struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
	Body      []byte    `json:"body"`
}

// Cache keeps downloaded CSV bodies in BadgerDB so reloads and restarts can
// skip the network until the entry expires.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenCache opens a cache under dir. An empty dir keeps the cache in memory
// for the lifetime of the process.
func OpenCache(dir string, ttl time.Duration) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open download cache: %w", err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the cached body for url. The boolean is false on a miss or
// after the entry has expired.
func (c *Cache) Get(url string) ([]byte, bool, error) {
	var entry cachedDownload

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(downloadKeyPrefix + url))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached %s: %w", url, err)
	}
	return entry.Body, true, nil
}

// Put stores body for url with the cache TTL. A zero TTL stores it without expiry.
func (c *Cache) Put(url string, body []byte) error {
	data, err := json.Marshal(cachedDownload{URL: url, FetchedAt: time.Now().UTC(), Body: body})
	if err != nil {
		return fmt.Errorf("marshal cached %s: %w", url, err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(downloadKeyPrefix+url), data)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Invalidate removes the entry for url.
func (c *Cache) Invalidate(url string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(downloadKeyPrefix + url))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

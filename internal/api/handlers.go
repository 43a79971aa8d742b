// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package api

import (
	"context"
	"time"

	"github.com/tomtom215/tripwise/internal/dataset"
	"github.com/tomtom215/tripwise/internal/recommend"
)

// DatasetStore is the table source behind the API.
// *dataset.Store implements it.
type DatasetStore interface {
	recommend.DataProvider
	Reload(ctx context.Context) (dataset.Status, error)
	Ready() bool
	Status() dataset.Status
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// RequestTimeout bounds engine calls. Zero means no extra deadline.
	RequestTimeout time.Duration

	// ReloadTimeout bounds POST /dataset/reload.
	ReloadTimeout time.Duration

	Version string
}

// Handler serves the recommendation API.
type Handler struct {
	engine *recommend.Engine
	store  DatasetStore
	opts   HandlerOptions

	startTime time.Time
}

// NewHandler creates a handler over engine and store.
func NewHandler(engine *recommend.Engine, store DatasetStore, opts HandlerOptions) *Handler {
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = 2 * time.Minute
	}
	return &Handler{
		engine:    engine,
		store:     store,
		opts:      opts,
		startTime: time.Now(),
	}
}

func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.opts.RequestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.opts.RequestTimeout)
}

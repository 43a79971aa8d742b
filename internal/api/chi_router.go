// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tripwise/internal/auth"
	"github.com/tomtom215/tripwise/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMW uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, authMW *auth.Middleware, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		auth:          authMW,
		chiMiddleware: chiMW,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Probes stay unauthenticated.
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		if router.auth != nil {
			r.Use(router.auth.Authenticate)
		}

		r.Get("/recommendations", router.handler.Recommend)
		r.Get("/categories", router.handler.Categories)
		r.Get("/cities", router.handler.Cities)
		r.Get("/rankings", router.handler.Rankings)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/affinity", router.handler.Affinity)
			r.Get("/transitions", router.handler.Transitions)
		})

		r.Route("/dataset", func(r chi.Router) {
			r.Get("/status", router.handler.DatasetStatus)
			r.With(router.chiMiddleware.RateLimitReload()).Post("/reload", router.handler.ReloadDataset)
		})
	})

	return r
}

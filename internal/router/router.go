// Package router sets up all HTTP routes and middleware chains for the
// solr-utility API. Operational endpoints sit outside the rate limit; the
// JSON API is grouped under /api.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hofhaeckerei/solr-utility/internal/handlers"
	"github.com/hofhaeckerei/solr-utility/internal/metrics"
	"github.com/hofhaeckerei/solr-utility/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter may be nil to disable rate limiting.
func New(health *handlers.Health, categories *handlers.Categories, index *handlers.Index, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"method not allowed"}`))
	})

	// Operational endpoints.
	r.Method(http.MethodGet, "/health", health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		r.Get("/subjects/{table}/{uid}/categories", categories.Subject)

		r.Route("/categories", func(r chi.Router) {
			r.Post("/resolve", categories.Resolve)
			r.Get("/tree", categories.Tree)
		})

		r.Route("/index/{table}/{uid}", func(r chi.Router) {
			r.Get("/access", index.Access)
			r.Get("/languages", index.Languages)
		})

		r.Delete("/cache", categories.InvalidateCache)
	})

	return r
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solr_utility"

// Outcome labels for ResolveTotal.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	// ResolveTotal counts category resolutions by outcome.
	ResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolve_total",
		Help:      "Number of category resolutions by outcome.",
	}, []string{"outcome"})

	// ResolveDuration observes how long a resolution takes, cache misses only.
	ResolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resolve_duration_seconds",
		Help:      "Duration of category resolutions that missed the cache.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	// CacheRequests counts result cache lookups by result ("hit" or "miss").
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "result_cache_requests_total",
		Help:      "Result cache lookups by result.",
	}, []string{"result"})

	// PolicyDecisions counts indexing policy calls by operation and outcome.
	PolicyDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "indexing_policy_decisions_total",
		Help:      "Indexing policy decisions by operation and outcome.",
	}, []string{"operation", "outcome"})

	// HTTPRequests counts served requests by method, route pattern and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	// RateLimited counts API requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "API requests rejected by the per-client rate limiter.",
	})
)

// Handler returns the Prometheus scrape handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hofhaeckerei/solr-utility/internal/metrics"
)

// RateLimiter caps the number of requests a client may make within a sliding
// window. Clients are keyed by remote address, or by the forwarded client
// address when proxy headers are trusted.
type RateLimiter struct {
	limit      int
	window     time.Duration
	trustProxy bool
	now        func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time // request times, oldest first

	done chan struct{}
	stop sync.Once
}

// RateLimitOption configures a RateLimiter.
type RateLimitOption func(*RateLimiter)

// TrustProxyHeaders keys clients by X-Forwarded-For or X-Real-IP. Enable it
// only behind a proxy that sets those headers.
func TrustProxyHeaders(trust bool) RateLimitOption {
	return func(rl *RateLimiter) {
		rl.trustProxy = trust
	}
}

// NewRateLimiter returns a limiter allowing limit requests per window and
// starts the goroutine that forgets idle clients. Call Stop to end it.
func NewRateLimiter(limit int, window time.Duration, opts ...RateLimitOption) *RateLimiter {
	rl := &RateLimiter{
		limit:   max(limit, 1),
		window:  window,
		now:     time.Now,
		clients: make(map[string][]time.Time),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}

	go rl.sweepLoop(min(5*time.Minute, max(window, time.Second)))
	return rl
}

// Stop ends the sweep goroutine. Further calls are no-ops.
func (rl *RateLimiter) Stop() {
	rl.stop.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// reserve records a request by key. It returns zero when the request is
// within the limit, otherwise how long until the oldest request in the
// window expires. Rejected requests are not recorded.
func (rl *RateLimiter) reserve(key string) time.Duration {
	now := rl.now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	times := rl.clients[key]
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	times = times[i:]

	if len(times) >= rl.limit {
		rl.clients[key] = times
		return times[0].Sub(cutoff)
	}
	rl.clients[key] = append(times, now)
	return 0
}

// sweep forgets clients without requests in the current window.
func (rl *RateLimiter) sweep() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, times := range rl.clients {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// Middleware rejects clients over the limit with a JSON 429 and a
// Retry-After header in whole seconds.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := rl.clientKey(r)
		if wait := rl.reserve(client); wait > 0 {
			metrics.RateLimited.Inc()
			slog.Warn("rate limit exceeded",
				"client", client,
				"path", r.URL.Path,
				"retry_after", wait,
			)
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds(wait)))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retrySeconds(wait time.Duration) int {
	return max(1, int(math.Ceil(wait.Seconds())))
}

// clientKey identifies the client of r.
func (rl *RateLimiter) clientKey(r *http.Request) string {
	if rl.trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

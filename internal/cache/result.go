// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// result.go caches resolved category values in Valkey. A lookup failure is
// logged and treated as a miss so resolution never depends on the cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hofhaeckerei/solr-utility/internal/metrics"
	"github.com/hofhaeckerei/solr-utility/internal/models"
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

const (
	// resultKeyPrefix is the Valkey key prefix for cached results.
	resultKeyPrefix = "result:"

	// DefaultResultTTL is how long a resolved value stays cached.
	DefaultResultTTL = 5 * time.Minute
)

// ResultCache stores taxonomy results in Valkey. A nil *ResultCache is valid
// and never hits.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a result cache backed by the given Valkey client.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl == 0 {
		ttl = DefaultResultTTL
	}
	return &ResultCache{client: client, ttl: ttl}
}

// cachedResult is the stored form of a taxonomy.Result.
type cachedResult struct {
	Values []string `json:"values"`
	Multi  bool     `json:"multi"`
	Glue   string   `json:"glue"`
}

// ResultKey returns the cache key for resolving subject with cfg in locale.
// Equal inputs always produce the same key.
func ResultKey(subject models.Subject, locale models.Locale, cfg taxonomy.Config) string {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	writeIDs := func(ids []int64) {
		for _, id := range ids {
			_, _ = h.WriteString(strconv.FormatInt(id, 10))
			_, _ = h.Write([]byte{','})
		}
		_, _ = h.Write([]byte{0})
	}

	write(subject.String())
	write(strconv.Itoa(locale.LanguageID))
	write(strconv.FormatInt(cfg.BaseID, 10))
	writeIDs(cfg.FilterIDs)
	writeIDs(cfg.ExcludeIDs)
	write(strconv.FormatBool(cfg.RemoveEmptyValues))
	write(strconv.FormatBool(cfg.MultiValue))
	write(cfg.Glue())

	return resultKeyPrefix + strconv.FormatUint(h.Sum64(), 16)
}

// Get returns the cached result for key.
func (rc *ResultCache) Get(ctx context.Context, key string) (taxonomy.Result, bool) {
	if rc == nil {
		return taxonomy.Result{}, false
	}
	val, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return taxonomy.Result{}, false
	}
	if err != nil {
		slog.Warn("result cache get error", "key", key, "error", err)
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return taxonomy.Result{}, false
	}

	var cr cachedResult
	if err := json.Unmarshal(val, &cr); err != nil {
		slog.Warn("result cache decode error", "key", key, "error", err)
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return taxonomy.Result{}, false
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	slog.Debug("result cache hit", "key", key)
	return taxonomy.Result{Values: cr.Values, Multi: cr.Multi, Glue: cr.Glue}, true
}

// Set stores a result under key with the configured TTL.
func (rc *ResultCache) Set(ctx context.Context, key string, result taxonomy.Result) {
	if rc == nil {
		return
	}
	val, err := json.Marshal(cachedResult{Values: result.Values, Multi: result.Multi, Glue: result.Glue})
	if err != nil {
		slog.Warn("result cache encode error", "key", key, "error", err)
		return
	}
	if err := rc.client.Set(ctx, key, val, rc.ttl).Err(); err != nil {
		slog.Warn("result cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes all cached results by scanning for the prefix and
// returns the number of deleted keys.
func (rc *ResultCache) InvalidateAll(ctx context.Context) int {
	if rc == nil {
		return 0
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, resultKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("result cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("result cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("result cache cleared", "deleted", deleted)
	}
	return deleted
}

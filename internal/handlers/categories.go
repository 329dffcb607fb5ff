// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hofhaeckerei/solr-utility/internal/cache"
	"github.com/hofhaeckerei/solr-utility/internal/metrics"
	"github.com/hofhaeckerei/solr-utility/internal/models"
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

// batchConcurrency bounds the subjects resolved in parallel per batch.
const batchConcurrency = 8

// configKeys are the query parameters that make up a resolve configuration.
var configKeys = []string{"baseId", "filterIds", "excludeIds", "removeEmptyValues", "multiValue", "singleValueGlue"}

// TreeSource returns the category tree below a root.
type TreeSource interface {
	Tree(ctx context.Context, rootID int64) ([]models.CategoryNode, error)
}

// Categories groups the category resolution endpoints. It checks the Valkey
// result cache before resolving and stores results on miss.
type Categories struct {
	resolver *taxonomy.Resolver
	subjects taxonomy.SubjectCategoryResolver
	tree     TreeSource
	cache    *cache.ResultCache
}

// NewCategories creates a new Categories handler group. resultCache may be
// nil to disable caching.
func NewCategories(resolver *taxonomy.Resolver, subjects taxonomy.SubjectCategoryResolver, tree TreeSource, resultCache *cache.ResultCache) *Categories {
	return &Categories{
		resolver: resolver,
		subjects: subjects,
		tree:     tree,
		cache:    resultCache,
	}
}

// subjectResult is the response body of a single resolution.
type subjectResult struct {
	Subject string          `json:"subject"`
	Value   taxonomy.Result `json:"value"`
}

// batchRequest is the body of POST /api/categories/resolve. Omitted config
// fields keep their defaults.
type batchRequest struct {
	Subjects []string        `json:"subjects"`
	Lang     int             `json:"lang"`
	Config   taxonomy.Config `json:"config"`
}

// resolve returns the cached value of subject or resolves and caches it.
func (c *Categories) resolve(ctx context.Context, subject models.Subject, cfg taxonomy.Config, locale models.Locale) (taxonomy.Result, error) {
	key := cache.ResultKey(subject, locale, cfg)
	if result, ok := c.cache.Get(ctx, key); ok {
		return result, nil
	}

	start := time.Now()
	result, err := c.resolver.Render(ctx, c.subjects, subject, cfg, locale)
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ResolveTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return taxonomy.Result{}, err
	}
	metrics.ResolveTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	c.cache.Set(ctx, key, result)
	return result, nil
}

// Subject resolves the categories of the record in the URL.
// GET /api/subjects/{table}/{uid}/categories
func (c *Categories) Subject(w http.ResponseWriter, r *http.Request) {
	subject, msg := subjectParam(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	lang, msg := languageParam(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	values := make(map[string]string)
	query := r.URL.Query()
	for _, key := range configKeys {
		if query.Has(key) {
			values[key] = query.Get(key)
		}
	}
	cfg := taxonomy.ParseConfig(values)
	if msg := validateConfig(cfg); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := c.resolve(r.Context(), subject, cfg, models.Locale{LanguageID: lang})
	if err != nil {
		slog.Error("resolve categories failed", "subject", subject.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve categories")
		return
	}

	writeJSON(w, http.StatusOK, subjectResult{Subject: subject.String(), Value: result})
}

// Resolve resolves a batch of subjects with one configuration. Results keep
// the order of the request.
// POST /api/categories/resolve
func (c *Categories) Resolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req := batchRequest{Config: taxonomy.DefaultConfig()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateBatch(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	subjects := make([]models.Subject, len(req.Subjects))
	for i, ref := range req.Subjects {
		subject, err := models.ParseSubject(ref)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if msg := validateTable(subject.Table); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		subjects[i] = subject
	}

	locale := models.Locale{LanguageID: req.Lang}
	results := make([]subjectResult, len(subjects))

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)
	for i, subject := range subjects {
		g.Go(func() error {
			result, err := c.resolve(ctx, subject, req.Config, locale)
			if err != nil {
				slog.Error("resolve categories failed", "subject", subject.String(), "error", err)
				return err
			}
			results[i] = subjectResult{Subject: subject.String(), Value: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve categories")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Tree returns the category tree below the root query parameter.
// GET /api/categories/tree
func (c *Categories) Tree(w http.ResponseWriter, r *http.Request) {
	var root int64
	if v := r.URL.Query().Get("root"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 0 {
			writeError(w, http.StatusBadRequest, "root must be a non-negative integer")
			return
		}
		root = id
	}

	nodes, err := c.tree.Tree(r.Context(), root)
	if err != nil {
		slog.Error("load category tree failed", "root", root, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load category tree")
		return
	}
	if nodes == nil {
		nodes = []models.CategoryNode{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"root": root, "categories": nodes})
}

// InvalidateCache drops every cached result.
// DELETE /api/cache
func (c *Categories) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	deleted := c.cache.InvalidateAll(r.Context())
	slog.Info("result cache invalidated", "deleted", deleted)
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hofhaeckerei/solr-utility/internal/indexing"
	"github.com/hofhaeckerei/solr-utility/internal/metrics"
	"github.com/hofhaeckerei/solr-utility/internal/models"
	"github.com/hofhaeckerei/solr-utility/internal/store"
)

// ItemSource loads index items for records.
type ItemSource interface {
	Item(ctx context.Context, table string, uid int64) (models.IndexItem, error)
}

// AccessGroupSource returns the access groups stored on a page.
type AccessGroupSource interface {
	AccessGroups(ctx context.Context, pageID int64) ([]string, error)
}

// Index groups the endpoints that expose indexing policy decisions.
type Index struct {
	items     ItemSource
	pages     AccessGroupSource
	policy    indexing.Policy
	languages []int
}

// NewIndex creates a new Index handler group. languages are the configured
// index languages offered to the policy.
func NewIndex(items ItemSource, pages AccessGroupSource, policy indexing.Policy, languages []int) *Index {
	return &Index{items: items, pages: pages, policy: policy, languages: languages}
}

// item loads the record in the URL, writing an error response on failure.
func (h *Index) item(w http.ResponseWriter, r *http.Request) (models.IndexItem, bool) {
	subject, msg := subjectParam(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return models.IndexItem{}, false
	}
	item, err := h.items.Item(r.Context(), subject.Table, subject.UID)
	switch {
	case errors.Is(err, store.ErrUnknownTable):
		writeError(w, http.StatusNotFound, "unknown table")
		return models.IndexItem{}, false
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
		return models.IndexItem{}, false
	case err != nil:
		slog.Error("load index item failed", "subject", subject.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load record")
		return models.IndexItem{}, false
	}
	return item, true
}

// Access returns the access groups the record is indexed with in a language.
// Groups come from the groups query parameter, or from the page itself.
// GET /api/index/{table}/{uid}/access
func (h *Index) Access(w http.ResponseWriter, r *http.Request) {
	lang, msg := languageParam(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	item, ok := h.item(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	groups := splitList(r.URL.Query().Get("groups"))
	if groups == nil {
		groups = []string{store.PublicAccessGroup}
		if item.Type == indexing.PageTable {
			stored, err := h.pages.AccessGroups(ctx, item.RecordUID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				slog.Error("load access groups failed", "subject", item.Subject().String(), "error", err)
				writeError(w, http.StatusInternalServerError, "failed to load access groups")
				return
			}
			if err == nil {
				groups = stored
			}
		}
	}

	filtered, err := h.policy.FilterAccessGroups(ctx, item, lang, groups)
	if err != nil {
		metrics.PolicyDecisions.WithLabelValues("access", metrics.OutcomeError).Inc()
		slog.Error("filter access groups failed", "subject", item.Subject().String(), "language", lang, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to filter access groups")
		return
	}
	outcome := "allowed"
	if len(filtered) == 0 {
		outcome = "denied"
		filtered = []string{}
	}
	metrics.PolicyDecisions.WithLabelValues("access", outcome).Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"subject":  item.Subject().String(),
		"language": lang,
		"groups":   filtered,
	})
}

// Languages returns the configured languages the record is indexed into.
// GET /api/index/{table}/{uid}/languages
func (h *Index) Languages(w http.ResponseWriter, r *http.Request) {
	item, ok := h.item(w, r)
	if !ok {
		return
	}

	languages, err := h.policy.SelectLanguages(r.Context(), item, h.languages)
	if err != nil {
		metrics.PolicyDecisions.WithLabelValues("languages", metrics.OutcomeError).Inc()
		slog.Error("select languages failed", "subject", item.Subject().String(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to select languages")
		return
	}
	if languages == nil {
		languages = []int{}
	}
	metrics.PolicyDecisions.WithLabelValues("languages", metrics.OutcomeOK).Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"subject":   item.Subject().String(),
		"languages": languages,
	})
}

// splitList splits a comma separated query value, dropping blanks. It returns
// nil when nothing remains.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

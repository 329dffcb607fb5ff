// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against an in-memory SQLite database seeded with the demo
// taxonomy; the result cache is disabled.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hofhaeckerei/solr-utility/internal/database"
	"github.com/hofhaeckerei/solr-utility/internal/indexing"
	"github.com/hofhaeckerei/solr-utility/internal/store"
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

// testDB opens an in-memory database, runs migrations and seeds it.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Connect(ctx, database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := database.Seed(ctx, db, database.DriverSQLite); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}
	return db
}

// testRouter wires the handlers onto a chi router the way the router
// package does.
func testRouter(t *testing.T, db *sql.DB) http.Handler {
	t.Helper()

	categories := store.NewCategoryStore(db, database.DriverSQLite)
	relations := store.NewRelationStore(db, database.DriverSQLite)
	pages := store.NewPageStore(db, database.DriverSQLite)
	localizations := store.NewLocalizationStore(db, database.DriverSQLite)

	cat := NewCategories(taxonomy.NewResolver(categories, categories), relations, categories, nil)
	idx := NewIndex(localizations, pages, indexing.Chain(
		indexing.NewTranslationGate(pages),
		indexing.NewTranslationBehavior(localizations),
	), []int{0, 1, 2})

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/health", NewHealth(db))
	r.Get("/api/subjects/{table}/{uid}/categories", cat.Subject)
	r.Post("/api/categories/resolve", cat.Resolve)
	r.Get("/api/categories/tree", cat.Tree)
	r.Delete("/api/cache", cat.InvalidateCache)
	r.Get("/api/index/{table}/{uid}/access", idx.Access)
	r.Get("/api/index/{table}/{uid}/languages", idx.Languages)
	return r
}

// do performs a request against h and returns the recorder.
func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

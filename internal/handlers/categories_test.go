// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/hofhaeckerei/solr-utility/internal/models"
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

func TestSubjectCategories(t *testing.T) {
	h := testRouter(t, testDB(t))

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{
			name:   "default is a list",
			target: "/api/subjects/pages/2/categories?baseId=1",
			want:   `{"subject":"pages:2","value":["Shoes"]}`,
		},
		{
			name:   "single value in german",
			target: "/api/subjects/pages/2/categories?baseId=1&multiValue=0&lang=1",
			want:   `{"subject":"pages:2","value":"Schuhe"}`,
		},
		{
			name:   "glue",
			target: "/api/subjects/pages/3/categories?baseId=0&multiValue=false&singleValueGlue=%20%7C%20",
			want:   `{"subject":"pages:3","value":"Products | Topics"}`,
		},
		{
			name:   "exclude wins over filter",
			target: "/api/subjects/pages/3/categories?baseId=0&filterIds=1,2&excludeIds=2",
			want:   `{"subject":"pages:3","value":["Products"]}`,
		},
		{
			name:   "no assignments",
			target: "/api/subjects/pages/1/categories?baseId=1&multiValue=0",
			want:   `{"subject":"pages:1","value":""}`,
		},
		{
			name:   "unknown subject is empty",
			target: "/api/subjects/tt_content/404/categories",
			want:   `{"subject":"tt_content:404","value":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
			}
			if got := rec.Body.String(); got != tt.want+"\n" {
				t.Errorf("body: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSubjectCategoriesBadRequest(t *testing.T) {
	h := testRouter(t, testDB(t))

	for _, target := range []string{
		"/api/subjects/Pages/1/categories",
		"/api/subjects/pages/abc/categories",
		"/api/subjects/pages/-1/categories",
		"/api/subjects/pages/1/categories?lang=de",
	} {
		rec := do(h, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got status %d, want 400", target, rec.Code)
		}
		var body map[string]string
		decode(t, rec, &body)
		if body["error"] == "" {
			t.Errorf("%s: expected an error message", target)
		}
	}
}

func TestResolveBatch(t *testing.T) {
	h := testRouter(t, testDB(t))

	rec := do(h, http.MethodPost, "/api/categories/resolve",
		`{"subjects":["pages:3","pages:2","pages:1"],"lang":1,"config":{"baseId":1}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Results []struct {
			Subject string `json:"subject"`
			Value   any    `json:"value"`
		} `json:"results"`
	}
	decode(t, rec, &body)

	want := []struct {
		subject string
		value   any
	}{
		{"pages:3", []any{"Accessoires"}},
		{"pages:2", []any{"Schuhe"}},
		{"pages:1", []any{}},
	}
	if len(body.Results) != len(want) {
		t.Fatalf("results: got %d, want %d", len(body.Results), len(want))
	}
	for i, w := range want {
		got := body.Results[i]
		if got.Subject != w.subject {
			t.Errorf("result %d subject: got %q, want %q", i, got.Subject, w.subject)
		}
		if diff := cmp.Diff(w.value, got.Value); diff != "" {
			t.Errorf("result %d value (-want +got):\n%s", i, diff)
		}
	}
}

func TestResolveBatchBadRequest(t *testing.T) {
	h := testRouter(t, testDB(t))

	tests := []struct {
		name string
		body string
	}{
		{"not json", `subjects=pages:1`},
		{"no subjects", `{"subjects":[]}`},
		{"malformed subject", `{"subjects":["pages"]}`},
		{"bad table", `{"subjects":["Pages:1"]}`},
		{"negative language", `{"subjects":["pages:1"],"lang":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodPost, "/api/categories/resolve", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}

// failingTitles fails every title lookup.
type failingTitles struct{}

func (failingTitles) Title(context.Context, int64, models.Locale) (string, error) {
	return "", errors.New("title backend down")
}

func TestResolveErrorsAreInternal(t *testing.T) {
	mem := taxonomy.NewMemoryStore()
	mem.Add(models.Category{ID: 10, Title: "Colors"})
	mem.Add(models.Category{ID: 1, ParentID: 10, Title: "Red"})
	mem.Assign(models.Subject{Table: "pages", UID: 1}, 1)

	cat := NewCategories(taxonomy.NewResolver(mem, failingTitles{}), mem, nil, nil)
	r := chi.NewRouter()
	r.Get("/api/subjects/{table}/{uid}/categories", cat.Subject)
	r.Post("/api/categories/resolve", cat.Resolve)

	rec := do(r, http.MethodGet, "/api/subjects/pages/1/categories?baseId=10", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("single: got status %d, want 500", rec.Code)
	}

	rec = do(r, http.MethodPost, "/api/categories/resolve", `{"subjects":["pages:1","pages:2"],"config":{"baseId":10}}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("batch: got status %d, want 500", rec.Code)
	}
}

func TestCategoryTree(t *testing.T) {
	h := testRouter(t, testDB(t))

	rec := do(h, http.MethodGet, "/api/categories/tree?root=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var body struct {
		Root       int64                 `json:"root"`
		Categories []models.CategoryNode `json:"categories"`
	}
	decode(t, rec, &body)
	if body.Root != 1 || len(body.Categories) != 2 {
		t.Fatalf("tree: got root %d with %d nodes", body.Root, len(body.Categories))
	}
	if body.Categories[0].Title != "Shoes" || len(body.Categories[0].Children) != 2 {
		t.Errorf("first node: got %+v", body.Categories[0])
	}

	rec = do(h, http.MethodGet, "/api/categories/tree?root=999", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "{\"categories\":[],\"root\":999}\n" {
		t.Errorf("empty tree: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(h, http.MethodGet, "/api/categories/tree?root=x", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad root: got status %d, want 400", rec.Code)
	}
}

func TestInvalidateCacheWithoutValkey(t *testing.T) {
	h := testRouter(t, testDB(t))

	rec := do(h, http.MethodDelete, "/api/cache", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if rec.Body.String() != "{\"deleted\":0}\n" {
		t.Errorf("body: got %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	db := testDB(t)
	h := testRouter(t, db)

	rec := do(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}

	db.Close()
	rec = do(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("closed database: got status %d, want 503", rec.Code)
	}

	rec = httptest.NewRecorder()
	NewHealth(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("no database: got status %d, want 200", rec.Code)
	}
}

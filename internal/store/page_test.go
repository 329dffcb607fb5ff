// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hofhaeckerei/solr-utility/internal/models"
)

func TestPageStoreHasTranslation(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db, "sqlite")
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int64
		language int
		want     bool
	}{
		{name: "translated", page: 2, language: 1, want: true},
		{name: "other language", page: 2, language: 2, want: false},
		{name: "untranslated page", page: 3, language: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.HasTranslation(ctx, tt.page, tt.language)
			if err != nil {
				t.Fatalf("HasTranslation: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasTranslation(%d, %d) = %v, want %v", tt.page, tt.language, got, tt.want)
			}
		})
	}

	exec(t, db, "UPDATE pages_language_overlay SET hidden = 1 WHERE uid = 1")
	got, err := s.HasTranslation(ctx, 2, 1)
	if err != nil {
		t.Fatalf("HasTranslation hidden: %v", err)
	}
	if got {
		t.Error("hidden translation should not count")
	}
}

func TestPageStoreAccessGroups(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db, "sqlite")
	ctx := context.Background()

	groups, err := s.AccessGroups(ctx, 3)
	if err != nil {
		t.Fatalf("AccessGroups: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "2"}, groups); diff != "" {
		t.Errorf("restricted page (-want +got):\n%s", diff)
	}

	groups, err = s.AccessGroups(ctx, 1)
	if err != nil {
		t.Fatalf("AccessGroups: %v", err)
	}
	if diff := cmp.Diff([]string{PublicAccessGroup}, groups); diff != "" {
		t.Errorf("public page (-want +got):\n%s", diff)
	}

	if _, err := s.AccessGroups(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing page: got %v, want ErrNotFound", err)
	}
}

func TestSplitGroups(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: []string{"0"}},
		{in: " , ", want: []string{"0"}},
		{in: "1, 2,,3", want: []string{"1", "2", "3"}},
		{in: "-2", want: []string{"-2"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitGroups(tt.in)); diff != "" {
			t.Errorf("splitGroups(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestRelationStoreAssignedCategoryIDs(t *testing.T) {
	db := testDB(t)
	s := NewRelationStore(db, "sqlite")
	ctx := context.Background()

	ids, err := s.AssignedCategoryIDs(ctx, models.Subject{Table: "pages", UID: 3})
	if err != nil {
		t.Fatalf("AssignedCategoryIDs: %v", err)
	}
	if diff := cmp.Diff([]int64{21, 30}, ids); diff != "" {
		t.Errorf("page 3 (-want +got):\n%s", diff)
	}

	// Other fields and other tables are not category assignments of the page.
	exec(t, db, `INSERT INTO sys_category_record_mm (uid_local, uid_foreign, tablenames, fieldname)
		VALUES (12, 3, 'pages', 'tags'), (12, 3, 'tt_content', 'categories')`)
	ids, err = s.AssignedCategoryIDs(ctx, models.Subject{Table: "pages", UID: 3})
	if err != nil {
		t.Fatalf("AssignedCategoryIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 assignments, got %v", ids)
	}

	ids, err = s.AssignedCategoryIDs(ctx, models.Subject{Table: "pages", UID: 1})
	if err != nil {
		t.Fatalf("AssignedCategoryIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("page 1: expected no assignments, got %v", ids)
	}
}

func TestLocalizationStoreItem(t *testing.T) {
	db := testDB(t)
	s := NewLocalizationStore(db, "sqlite")
	ctx := context.Background()

	tests := []struct {
		name  string
		table string
		uid   int64
		want  models.IndexItem
	}{
		{
			name:  "default language content",
			table: "tt_content", uid: 1,
			want: models.IndexItem{Type: "tt_content", RecordUID: 1, HasLanguage: true},
		},
		{
			name:  "translated content",
			table: "tt_content", uid: 2,
			want: models.IndexItem{Type: "tt_content", RecordUID: 2, RecordLanguage: 1, HasLanguage: true},
		},
		{
			name:  "all languages content",
			table: "tt_content", uid: 3,
			want: models.IndexItem{Type: "tt_content", RecordUID: 3, RecordLanguage: models.AllLanguages, HasLanguage: true},
		},
		{
			name:  "page",
			table: "pages", uid: 2,
			want: models.IndexItem{Type: "pages", RecordUID: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Item(ctx, tt.table, tt.uid)
			if err != nil {
				t.Fatalf("Item: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Item (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := s.Item(ctx, "tt_content", 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing record: got %v, want ErrNotFound", err)
	}
	if _, err := s.Item(ctx, "fe_users", 1); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("unknown table: got %v, want ErrUnknownTable", err)
	}
}

func TestLocalizationStoreLanguages(t *testing.T) {
	db := testDB(t)
	s := NewLocalizationStore(db, "sqlite")
	ctx := context.Background()

	exec(t, db, `INSERT INTO tt_content (uid, pid, header, sys_language_uid, l18n_parent)
		VALUES (4, 2, 'Bottes', 2, 1), (5, 2, 'Stivali', 2, 1)`)

	langs, err := s.Languages(ctx, "tt_content", 1)
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, langs); diff != "" {
		t.Errorf("localizations of tt_content:1 (-want +got):\n%s", diff)
	}

	langs, err = s.Languages(ctx, "pages_language_overlay", 1)
	if err != nil {
		t.Fatalf("Languages without parent field: %v", err)
	}
	if langs != nil {
		t.Errorf("expected no languages without a parent field, got %v", langs)
	}

	if _, err := s.Languages(ctx, "fe_users", 1); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("unknown table: got %v, want ErrUnknownTable", err)
	}
}

func TestLocalizationStoreCustomSchema(t *testing.T) {
	db := testDB(t)
	s := NewLocalizationStore(db, "sqlite", TableSchema{Table: "pages"})

	if _, ok := s.Schema("tt_content"); ok {
		t.Error("custom registry should not contain tt_content")
	}
	schema, ok := s.Schema("pages")
	if !ok || schema.Translatable() {
		t.Errorf("pages schema: got %+v, %v", schema, ok)
	}
}

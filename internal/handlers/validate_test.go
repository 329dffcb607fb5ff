// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"

	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name      string
		table     string
		wantError bool
	}{
		{"pages", "pages", false},
		{"underscores and digits", "tx_news_domain_model_news2", false},
		{"empty", "", true},
		{"upper case", "Pages", true},
		{"sql", "pages;drop", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateTable(tt.table)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateBatch(t *testing.T) {
	many := make([]string, maxBatchSubjects+1)
	for i := range many {
		many[i] = "pages:1"
	}
	longIDs := make([]int64, maxIDListLen+1)

	tests := []struct {
		name      string
		req       batchRequest
		wantError bool
	}{
		{"valid", batchRequest{Subjects: []string{"pages:1"}, Config: taxonomy.DefaultConfig()}, false},
		{"no subjects", batchRequest{}, true},
		{"too many subjects", batchRequest{Subjects: many}, true},
		{"negative language", batchRequest{Subjects: []string{"pages:1"}, Lang: -1}, true},
		{"long filter", batchRequest{Subjects: []string{"pages:1"}, Config: taxonomy.Config{FilterIDs: longIDs}}, true},
		{"long exclude", batchRequest{Subjects: []string{"pages:1"}, Config: taxonomy.Config{ExcludeIDs: longIDs}}, true},
		{"long glue", batchRequest{Subjects: []string{"pages:1"}, Config: taxonomy.Config{SingleValueGlue: strings.Repeat("-", 33)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateBatch(tt.req)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

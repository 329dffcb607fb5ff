// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package indexing

import (
	"context"
	"fmt"

	"github.com/hofhaeckerei/solr-utility/internal/models"
)

// PageTable is the table whose items TranslationGate applies to.
const PageTable = "pages"

// TranslationChecker reports whether a page has a translation record.
type TranslationChecker interface {
	HasTranslation(ctx context.Context, pageID int64, language int) (bool, error)
}

// TranslationGate denies indexing a page in a language the page has not been
// translated to. The default language always passes. It does not change the
// language selection.
type TranslationGate struct {
	Passthrough
	pages TranslationChecker
}

var _ Policy = (*TranslationGate)(nil)

// NewTranslationGate returns a gate checking translations with pages.
func NewTranslationGate(pages TranslationChecker) *TranslationGate {
	return &TranslationGate{pages: pages}
}

// FilterAccessGroups returns groups unchanged for the default language and for
// translated pages, and an empty list otherwise. Items of other tables pass.
func (g *TranslationGate) FilterAccessGroups(ctx context.Context, item models.IndexItem, language int, groups []string) ([]string, error) {
	if item.Type != PageTable || language == 0 {
		return groups, nil
	}
	ok, err := g.pages.HasTranslation(ctx, item.RecordUID, language)
	if err != nil {
		return nil, fmt.Errorf("check translation of page %d: %w", item.RecordUID, err)
	}
	if !ok {
		return []string{}, nil
	}
	return groups, nil
}

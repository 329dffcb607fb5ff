// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package indexing

import (
	"context"
	"fmt"
	"slices"

	"github.com/hofhaeckerei/solr-utility/internal/models"
	"github.com/hofhaeckerei/solr-utility/internal/store"
)

// LocalizationSource knows the translation schema of tables and the languages
// of the localizations pointing at a record.
type LocalizationSource interface {
	Schema(table string) (store.TableSchema, bool)
	Languages(ctx context.Context, table string, uid int64) ([]int, error)
}

// TranslationBehavior indexes a default-language record into every language
// it has been localized to, so localizations need not be queued themselves.
type TranslationBehavior struct {
	DefaultPolicy
	source LocalizationSource
}

var _ Policy = (*TranslationBehavior)(nil)

// NewTranslationBehavior returns a TranslationBehavior reading localizations
// from source.
func NewTranslationBehavior(source LocalizationSource) *TranslationBehavior {
	return &TranslationBehavior{source: source}
}

// SelectLanguages returns the configured languages the item is indexed into.
//
// Tables that are not translatable, tables without a localization parent
// field and localized records keep the default selection. Records of all
// languages go to every configured language. A default-language record goes
// to language 0 and to the languages of its localizations.
func (b *TranslationBehavior) SelectLanguages(ctx context.Context, item models.IndexItem, configured []int) ([]int, error) {
	schema, ok := b.source.Schema(item.Type)
	if !ok || !schema.Translatable() {
		return defaultLanguages(item, configured), nil
	}
	if item.RecordLanguage == models.AllLanguages {
		return slices.Clone(configured), nil
	}
	if schema.ParentField == "" || item.RecordLanguage > 0 {
		return defaultLanguages(item, configured), nil
	}

	localized, err := b.source.Languages(ctx, item.Type, item.RecordUID)
	if err != nil {
		return nil, fmt.Errorf("resolve localizations of %s: %w", item.Subject(), err)
	}
	return intersect(configured, append([]int{0}, localized...)), nil
}

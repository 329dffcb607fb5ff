// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/hofhaeckerei/solr-utility/internal/database"
	"github.com/hofhaeckerei/solr-utility/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or is disabled.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownTable is returned for tables without a registered schema.
	ErrUnknownTable = errors.New("unknown table")
)

// TableSchema describes how a table stores translations. A table with an
// empty LanguageField is not translatable; one with an empty ParentField
// cannot resolve the localizations of its records.
type TableSchema struct {
	Table         string
	LanguageField string
	ParentField   string
}

// Translatable reports whether records of the table carry a language.
func (t TableSchema) Translatable() bool {
	return t.LanguageField != ""
}

// DefaultSchemas lists the tables known to the localization store.
var DefaultSchemas = []TableSchema{
	{Table: "pages"},
	{Table: "pages_language_overlay", LanguageField: "sys_language_uid"},
	{Table: "tt_content", LanguageField: "sys_language_uid", ParentField: "l18n_parent"},
	{Table: "sys_category", LanguageField: "sys_language_uid", ParentField: "l10n_parent"},
}

// LocalizationStore reads record languages and the localizations pointing at
// a record. Table and field names come from the schema registry only.
type LocalizationStore struct {
	db      *sql.DB
	sb      sq.StatementBuilderType
	schemas map[string]TableSchema
}

// NewLocalizationStore returns a LocalizationStore knowing the given schemas,
// or DefaultSchemas when none are given.
func NewLocalizationStore(db *sql.DB, driver string, schemas ...TableSchema) *LocalizationStore {
	if len(schemas) == 0 {
		schemas = DefaultSchemas
	}
	s := &LocalizationStore{
		db:      db,
		sb:      database.StatementBuilder(driver),
		schemas: make(map[string]TableSchema, len(schemas)),
	}
	for _, schema := range schemas {
		s.schemas[schema.Table] = schema
	}
	return s
}

// Schema returns the registered schema of table.
func (s *LocalizationStore) Schema(table string) (TableSchema, bool) {
	schema, ok := s.schemas[table]
	return schema, ok
}

// Item loads the index item for a record, including its language when the
// table is translatable.
func (s *LocalizationStore) Item(ctx context.Context, table string, uid int64) (models.IndexItem, error) {
	schema, ok := s.Schema(table)
	if !ok {
		return models.IndexItem{}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	column := "uid"
	if schema.Translatable() {
		column = schema.LanguageField
	}
	query, args, err := s.sb.Select(column).From(schema.Table).
		Where(sq.Eq{"uid": uid, "deleted": 0}).
		ToSql()
	if err != nil {
		return models.IndexItem{}, fmt.Errorf("build record query: %w", err)
	}

	var value int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.IndexItem{}, ErrNotFound
	}
	if err != nil {
		return models.IndexItem{}, fmt.Errorf("find %s record: %w", table, err)
	}

	item := models.IndexItem{Type: table, RecordUID: uid, HasLanguage: schema.Translatable()}
	if schema.Translatable() {
		item.RecordLanguage = int(value)
	}
	return item, nil
}

// Languages returns the languages of the translations pointing at the record
// uid of table, in ascending order.
func (s *LocalizationStore) Languages(ctx context.Context, table string, uid int64) ([]int, error) {
	schema, ok := s.Schema(table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if !schema.Translatable() || schema.ParentField == "" {
		return nil, nil
	}

	query, args, err := s.sb.Select(schema.LanguageField).Distinct().From(schema.Table).
		Where(sq.Eq{schema.ParentField: uid, "deleted": 0}).
		Where(sq.Gt{schema.LanguageField: 0}).
		OrderBy(schema.LanguageField).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build localization query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query localizations of %s:%d: %w", table, uid, err)
	}
	defer rows.Close()

	var languages []int
	for rows.Next() {
		var lang int
		if err := rows.Scan(&lang); err != nil {
			return nil, fmt.Errorf("scan localization: %w", err)
		}
		languages = append(languages, lang)
	}
	return languages, rows.Err()
}

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
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

// CategoryStore reads sys_category records. It implements
// taxonomy.CategoryStore and taxonomy.TitleLookup.
type CategoryStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewCategoryStore returns a new CategoryStore for a database opened with driver.
func NewCategoryStore(db *sql.DB, driver string) *CategoryStore {
	return &CategoryStore{db: db, sb: database.StatementBuilder(driver)}
}

var _ taxonomy.CategoryStore = (*CategoryStore)(nil)
var _ taxonomy.TitleLookup = (*CategoryStore)(nil)

var categoryColumns = []string{"uid", "pid", "parent", "title", "sys_language_uid", "l10n_parent", "sorting"}

// enabled restricts queries to records that are neither deleted nor hidden.
var enabled = sq.Eq{"deleted": 0, "hidden": 0}

// defaultLanguage matches records of the default language or of all languages.
var defaultLanguage = sq.Eq{"sys_language_uid": []int{0, models.AllLanguages}}

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.PID, &c.ParentID, &c.Title, &c.LanguageID, &c.L10nParent, &c.Sorting)
	return c, err
}

func (s *CategoryStore) selectCategories() sq.SelectBuilder {
	return s.sb.Select(categoryColumns...).From("sys_category").Where(enabled).OrderBy("sorting", "uid")
}

// query runs a category select and collects the rows into a set.
func (s *CategoryStore) query(ctx context.Context, qb sq.SelectBuilder) (*taxonomy.CategorySet, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	set := taxonomy.NewCategorySet()
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		set.Add(c)
	}
	return set, rows.Err()
}

// FindByParent returns the default-language categories below parentID,
// ordered by sorting.
func (s *CategoryStore) FindByParent(ctx context.Context, parentID int64) (*taxonomy.CategorySet, error) {
	return s.query(ctx, s.selectCategories().Where(sq.Eq{"parent": parentID}).Where(defaultLanguage))
}

// FindByIDs returns the categories with the given uids.
func (s *CategoryStore) FindByIDs(ctx context.Context, ids []int64) (*taxonomy.CategorySet, error) {
	if len(ids) == 0 {
		return taxonomy.NewCategorySet(), nil
	}
	return s.query(ctx, s.selectCategories().Where(sq.Eq{"uid": ids}))
}

// Title returns the title of a category, overlaid with its translation in
// locale when one exists. A missing category yields an empty title.
func (s *CategoryStore) Title(ctx context.Context, categoryID int64, locale models.Locale) (string, error) {
	if locale.LanguageID > 0 {
		title, err := s.title(ctx, sq.Eq{"l10n_parent": categoryID, "sys_language_uid": locale.LanguageID})
		if err == nil {
			return title, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("find category overlay: %w", err)
		}
	}

	title, err := s.title(ctx, sq.Eq{"uid": categoryID})
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find category title: %w", err)
	}
	return title, nil
}

func (s *CategoryStore) title(ctx context.Context, where sq.Eq) (string, error) {
	query, args, err := s.sb.Select("title").From("sys_category").
		Where(where).Where(enabled).OrderBy("uid").Limit(1).ToSql()
	if err != nil {
		return "", err
	}
	var title string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&title)
	return title, err
}

// Tree returns the default-language categories below rootID as a nested tree.
func (s *CategoryStore) Tree(ctx context.Context, rootID int64) ([]models.CategoryNode, error) {
	all, err := s.query(ctx, s.selectCategories().Where(defaultLanguage))
	if err != nil {
		return nil, err
	}
	return buildTree(all.Categories(), rootID, 0, make(map[int64]bool)), nil
}

// buildTree recursively builds a tree from a flat list. Categories already
// placed are skipped so parent cycles cannot recurse forever.
func buildTree(flat []models.Category, parentID int64, depth int, placed map[int64]bool) []models.CategoryNode {
	var result []models.CategoryNode
	for _, c := range flat {
		if c.ParentID != parentID || placed[c.ID] {
			continue
		}
		placed[c.ID] = true
		result = append(result, models.CategoryNode{
			Category: c,
			Depth:    depth,
			Children: buildTree(flat, c.ID, depth+1, placed),
		})
	}
	return result
}

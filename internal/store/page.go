// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/hofhaeckerei/solr-utility/internal/database"
)

// PublicAccessGroup is the access group of pages without restrictions.
const PublicAccessGroup = "0"

// PageStore reads pages and their translations.
type PageStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewPageStore returns a new PageStore for a database opened with driver.
func NewPageStore(db *sql.DB, driver string) *PageStore {
	return &PageStore{db: db, sb: database.StatementBuilder(driver)}
}

// HasTranslation reports whether the page has a translation record in language.
func (s *PageStore) HasTranslation(ctx context.Context, pageID int64, language int) (bool, error) {
	query, args, err := s.sb.Select("uid").From("pages_language_overlay").
		Where(sq.Eq{"sys_language_uid": language, "pid": pageID}).
		Where(enabled).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build translation query: %w", err)
	}

	var uid int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&uid)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find page translation: %w", err)
	}
	return uid != 0, nil
}

// AccessGroups returns the frontend groups allowed to see a page. Pages
// without restrictions belong to the public group "0".
func (s *PageStore) AccessGroups(ctx context.Context, pageID int64) ([]string, error) {
	query, args, err := s.sb.Select("fe_group").From("pages").
		Where(sq.Eq{"uid": pageID}).
		Where(enabled).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build page query: %w", err)
	}

	var feGroup string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&feGroup)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find page access groups: %w", err)
	}
	return splitGroups(feGroup), nil
}

func splitGroups(feGroup string) []string {
	var groups []string
	for _, g := range strings.Split(feGroup, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return []string{PublicAccessGroup}
	}
	return groups
}

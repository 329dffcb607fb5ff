// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/hofhaeckerei/solr-utility/internal/database"
	"github.com/hofhaeckerei/solr-utility/internal/models"
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

// DefaultCategoryField is the relation field name used by the CMS for
// category assignments.
const DefaultCategoryField = "categories"

// RelationStore reads category assignments from sys_category_record_mm.
type RelationStore struct {
	db    *sql.DB
	sb    sq.StatementBuilderType
	field string
}

// NewRelationStore returns a RelationStore reading assignments of the
// "categories" field.
func NewRelationStore(db *sql.DB, driver string) *RelationStore {
	return &RelationStore{db: db, sb: database.StatementBuilder(driver), field: DefaultCategoryField}
}

var _ taxonomy.SubjectCategoryResolver = (*RelationStore)(nil)

// AssignedCategoryIDs returns the categories assigned to subject in the
// order of the relation.
func (s *RelationStore) AssignedCategoryIDs(ctx context.Context, subject models.Subject) ([]int64, error) {
	query, args, err := s.sb.Select("uid_local").From("sys_category_record_mm").
		Where(sq.Eq{
			"uid_foreign": subject.UID,
			"tablenames":  subject.Table,
			"fieldname":   s.field,
		}).
		OrderBy("sorting_foreign", "uid_local").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build relation query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category relations of %s: %w", subject, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category relation: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type seedTable struct {
	name    string
	columns []string
	rows    [][]any
}

// seedData is a small product taxonomy with one German translation layer,
// three pages and their category assignments.
var seedData = []seedTable{
	{
		name:    "sys_category",
		columns: []string{"uid", "parent", "title", "sys_language_uid", "l10n_parent", "sorting"},
		rows: [][]any{
			{1, 0, "Products", 0, 0, 1},
			{2, 0, "Topics", 0, 0, 2},
			{10, 1, "Shoes", 0, 0, 1},
			{20, 1, "Accessories", 0, 0, 2},
			{11, 10, "Boots", 0, 0, 1},
			{12, 10, "Sneakers", 0, 0, 2},
			{21, 20, "Belts", 0, 0, 1},
			{30, 2, "Sustainability", 0, 0, 1},
			{110, 1, "Schuhe", 1, 10, 1},
			{120, 1, "Accessoires", 1, 20, 2},
		},
	},
	{
		name:    "pages",
		columns: []string{"uid", "pid", "title", "fe_group"},
		rows: [][]any{
			{1, 0, "Home", ""},
			{2, 1, "Boots collection", ""},
			{3, 1, "Belts", "1,2"},
		},
	},
	{
		name:    "pages_language_overlay",
		columns: []string{"uid", "pid", "sys_language_uid", "title"},
		rows: [][]any{
			{1, 2, 1, "Stiefel Kollektion"},
		},
	},
	{
		name:    "tt_content",
		columns: []string{"uid", "pid", "header", "sys_language_uid", "l18n_parent"},
		rows: [][]any{
			{1, 2, "Winter boots", 0, 0},
			{2, 2, "Winterstiefel", 1, 1},
			{3, 3, "All languages notice", -1, 0},
		},
	},
	{
		name:    "sys_category_record_mm",
		columns: []string{"uid_local", "uid_foreign", "tablenames", "fieldname", "sorting_foreign"},
		rows: [][]any{
			{11, 2, "pages", "categories", 1},
			{21, 3, "pages", "categories", 1},
			{30, 3, "pages", "categories", 2},
		},
	},
}

// Seed populates the database with a demo taxonomy. It is a no-op if any
// category exists already.
func Seed(ctx context.Context, db *sql.DB, driver string) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sys_category").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	sb := StatementBuilder(driver)
	for _, table := range seedData {
		insert := sb.Insert(table.name).Columns(table.columns...)
		for _, row := range table.rows {
			insert = insert.Values(row...)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("seed build %s: %w", table.name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed insert %s: %w", table.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo taxonomy", "categories", len(seedData[0].rows))
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finance-api/internal/domain"
	"finance-api/internal/repository"
)

const createCategoriesTable = `
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	parent_id INTEGER NULL REFERENCES categories(id) ON DELETE CASCADE,
	unique_identifier TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_categories_parent_id ON categories(parent_id);
`

const upsertCategory = `
INSERT INTO categories (id, name, color, parent_id, unique_identifier, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	color = excluded.color,
	parent_id = excluded.parent_id,
	unique_identifier = excluded.unique_identifier,
	updated_at = excluded.updated_at
WHERE categories.name != excluded.name
	OR categories.color != excluded.color
	OR categories.parent_id IS NOT excluded.parent_id
	OR categories.unique_identifier != excluded.unique_identifier`

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCategoriesTable); err != nil {
		return fmt.Errorf("create categories table: %w", err)
	}
	return nil
}

// ListTree loads every category in one query and nests children under their parent.
func (r *CategoryRepository) ListTree(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, color, parent_id, unique_identifier, created_at, updated_at
FROM categories
ORDER BY parent_id IS NOT NULL, id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var (
		roots    []domain.Category
		position = map[int64]int{}
	)
	for rows.Next() {
		var (
			cat      domain.Category
			parentID sql.NullInt64
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Color, &parentID, &cat.UniqueIdentifier, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if !parentID.Valid {
			cat.Children = []domain.Category{}
			position[cat.ID] = len(roots)
			roots = append(roots, cat)
			continue
		}
		pid := parentID.Int64
		cat.ParentID = &pid
		// deeper levels are not part of the taxonomy
		if idx, ok := position[pid]; ok {
			roots[idx].Children = append(roots[idx].Children, cat)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	if roots == nil {
		roots = []domain.Category{}
	}
	return roots, nil
}

// Seed upserts parents before children so the foreign key always resolves.
// Children inherit the parent's color and get a "<parent>_<child>" identifier.
func (r *CategoryRepository) Seed(ctx context.Context, categories []domain.Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertCategory)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, parent := range categories {
		uid := parent.UniqueIdentifier
		if uid == "" {
			uid = parent.Name
		}
		if _, err := stmt.ExecContext(ctx, parent.ID, parent.Name, parent.Color, nil, uid, now, now); err != nil {
			return translateError(err, fmt.Sprintf("seed category %d", parent.ID))
		}
		for _, child := range parent.Children {
			childUID := fmt.Sprintf("%s_%s", parent.Name, child.Name)
			if _, err := stmt.ExecContext(ctx, child.ID, child.Name, parent.Color, parent.ID, childUID, now, now); err != nil {
				return translateError(err, fmt.Sprintf("seed category %d", child.ID))
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

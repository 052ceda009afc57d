package repository

import (
	"context"

	"finance-api/internal/domain"
)

// CategoryRepository exposes the category taxonomy.
type CategoryRepository interface {
	Init(ctx context.Context) error
	// ListTree returns top-level categories with Children populated.
	ListTree(ctx context.Context) ([]domain.Category, error)
	// Seed inserts or refreshes the given top-level categories and their children.
	Seed(ctx context.Context, categories []domain.Category) error
}

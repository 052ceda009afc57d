package service

import (
	"context"

	"finance-api/internal/domain"
	"finance-api/internal/repository"
)

// CategoryService exposes the read-only category taxonomy.
type CategoryService interface {
	ListTree(ctx context.Context) ([]domain.Category, error)
	SeedDefaults(ctx context.Context) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) ListTree(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListTree(ctx)
}

func (s *categoryService) SeedDefaults(ctx context.Context) error {
	return s.categories.Seed(ctx, DefaultCategories())
}

// DefaultCategories is the taxonomy installed on first start.
// Ids are stable so clients may hard-code them.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Name: "Food & Drinks", Color: "#f97316", Children: []domain.Category{
			{ID: 101, Name: "Groceries"},
			{ID: 102, Name: "Restaurant"},
			{ID: 103, Name: "Coffee"},
		}},
		{ID: 2, Name: "Transportation", Color: "#3b82f6", Children: []domain.Category{
			{ID: 201, Name: "Fuel"},
			{ID: 202, Name: "Public Transport"},
			{ID: 203, Name: "Parking"},
			{ID: 204, Name: "Taxi"},
		}},
		{ID: 3, Name: "Housing", Color: "#8b5cf6", Children: []domain.Category{
			{ID: 301, Name: "Rent"},
			{ID: 302, Name: "Utilities"},
			{ID: 303, Name: "Maintenance"},
		}},
		{ID: 4, Name: "Shopping", Color: "#ec4899", Children: []domain.Category{
			{ID: 401, Name: "Clothes"},
			{ID: 402, Name: "Electronics"},
			{ID: 403, Name: "Gifts"},
		}},
		{ID: 5, Name: "Entertainment", Color: "#eab308", Children: []domain.Category{
			{ID: 501, Name: "Movies"},
			{ID: 502, Name: "Subscriptions"},
			{ID: 503, Name: "Travel"},
		}},
		{ID: 6, Name: "Health", Color: "#ef4444", Children: []domain.Category{
			{ID: 601, Name: "Pharmacy"},
			{ID: 602, Name: "Doctor"},
			{ID: 603, Name: "Sport"},
		}},
		{ID: 7, Name: "Income", Color: "#22c55e", Children: []domain.Category{
			{ID: 701, Name: "Salary"},
			{ID: 702, Name: "Bonus"},
			{ID: 703, Name: "Investment"},
		}},
		{ID: 8, Name: "Others", Color: "#6b7280"},
	}
}

package repository

import (
	"context"

	"finance-api/internal/domain"
)

// TransactionRepository exposes persistence operations for transactions.
// Every mutation is a single statement; missing rows surface as ErrNotFound.
type TransactionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tx *domain.Transaction) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
	Update(ctx context.Context, id int64, patch domain.TransactionPatch) (*domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

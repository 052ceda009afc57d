package service

import (
	"context"
	"errors"

	"finance-api/internal/domain"
	"finance-api/internal/repository"
)

var (
	// ErrTransactionNotFound indicates the id is well formed but unknown.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrCategoryNotFound indicates a transaction references a missing category.
	ErrCategoryNotFound = errors.New("category does not exist")
)

// TransactionService coordinates transaction operations backed by the repository.
// Each call issues at most one mutating store statement.
type TransactionService interface {
	List(ctx context.Context) ([]domain.Transaction, error)
	Get(ctx context.Context, id int64) (*domain.Transaction, error)
	Create(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	Update(ctx context.Context, id int64, patch domain.TransactionPatch) (*domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type transactionService struct {
	transactions repository.TransactionRepository
}

func NewTransactionService(transactions repository.TransactionRepository) TransactionService {
	return &transactionService{transactions: transactions}
}

func (s *transactionService) List(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions.List(ctx)
}

func (s *transactionService) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	tx, err := s.transactions.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return tx, nil
}

func (s *transactionService) Create(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if _, err := s.transactions.Create(ctx, &tx); err != nil {
		return nil, translate(err)
	}
	return &tx, nil
}

func (s *transactionService) Update(ctx context.Context, id int64, patch domain.TransactionPatch) (*domain.Transaction, error) {
	tx, err := s.transactions.Update(ctx, id, patch)
	if err != nil {
		return nil, translate(err)
	}
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, id int64) error {
	return translate(s.transactions.Delete(ctx, id))
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrTransactionNotFound
	case errors.Is(err, repository.ErrInvalidReference):
		return ErrCategoryNotFound
	default:
		return err
	}
}

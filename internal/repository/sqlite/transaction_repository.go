package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-api/internal/domain"
	"finance-api/internal/repository"
)

const createTransactionsTable = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	amount REAL NOT NULL DEFAULT 0,
	category_id INTEGER NOT NULL REFERENCES categories(id),
	trans_date INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_category_id ON transactions(category_id);
`

const selectTransaction = `
SELECT id, name, description, amount, category_id, trans_date, created_at, updated_at
FROM transactions`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTransactionsTable); err != nil {
		return fmt.Errorf("create transactions table: %w", err)
	}
	return nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (int64, error) {
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO transactions (name, description, amount, category_id, trans_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.Name,
		tx.Description,
		tx.Amount,
		tx.CategoryID,
		tx.TransDate,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return 0, translateError(err, "insert transaction")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction last insert id: %w", err)
	}
	tx.ID = id
	return id, nil
}

func (r *TransactionRepository) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, selectTransaction+`
WHERE id = ?`,
		id,
	)
	return scanTransaction(row)
}

func (r *TransactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectTransaction+`
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// Update applies the non-nil fields of patch in one statement and returns the stored row.
func (r *TransactionRepository) Update(ctx context.Context, id int64, patch domain.TransactionPatch) (*domain.Transaction, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	if patch.TransDate != nil {
		sets = append(sets, "trans_date = ?")
		args = append(args, *patch.TransDate)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE transactions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, translateError(err, "update transaction")
	}
	if err := requireAffected(res, "update transaction"); err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireAffected(res, "delete transaction")
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := row.Scan(
		&tx.ID,
		&tx.Name,
		&tx.Description,
		&tx.Amount,
		&tx.CategoryID,
		&tx.TransDate,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return &tx, nil
}

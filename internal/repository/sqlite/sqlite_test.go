package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-api/internal/domain"
	"finance-api/internal/repository"
)

type testStore struct {
	db           *sql.DB
	users        repository.UserRepository
	categories   repository.CategoryRepository
	transactions repository.TransactionRepository
}

func newTestStore(t *testing.T) testStore {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "finance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := testStore{
		db:           db,
		users:        NewUserRepository(db),
		categories:   NewCategoryRepository(db),
		transactions: NewTransactionRepository(db),
	}
	ctx := context.Background()
	require.NoError(t, s.users.Init(ctx))
	require.NoError(t, s.categories.Init(ctx))
	require.NoError(t, s.transactions.Init(ctx))
	return s
}

var testTaxonomy = []domain.Category{
	{ID: 1, Name: "Food", Color: "#ff0000", Children: []domain.Category{
		{ID: 11, Name: "Groceries"},
		{ID: 12, Name: "Restaurant"},
	}},
	{ID: 2, Name: "Income", Color: "#00ff00"},
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{Username: "u1", Name: "U One", Email: "u1@x.com", PasswordHash: "hash"}
	id, err := s.users.Create(ctx, user)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, user.ID)

	byEmail, err := s.users.GetByEmail(ctx, "u1@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.Username)
	assert.Equal(t, "U One", byEmail.Name)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	assert.False(t, byEmail.CreatedAt.IsZero())

	byName, err := s.users.GetByUsername(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	_, err = s.users.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.users.Create(ctx, &domain.User{Username: "u1", Name: "a", Email: "u1@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = s.users.Create(ctx, &domain.User{Username: "u2", Name: "b", Email: "u1@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	_, err = s.users.Create(ctx, &domain.User{Username: "u1", Name: "c", Email: "other@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func TestCategoryRepositorySeedAndTree(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.categories.Seed(ctx, testTaxonomy))
	// seeding twice must be a no-op
	require.NoError(t, s.categories.Seed(ctx, testTaxonomy))

	tree, err := s.categories.ListTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	food := tree[0]
	assert.Equal(t, "Food", food.Name)
	assert.Nil(t, food.ParentID)
	require.Len(t, food.Children, 2)
	assert.Equal(t, "Groceries", food.Children[0].Name)
	assert.Equal(t, "#ff0000", food.Children[0].Color)
	assert.Equal(t, "Food_Groceries", food.Children[0].UniqueIdentifier)
	require.NotNil(t, food.Children[0].ParentID)
	assert.Equal(t, int64(1), *food.Children[0].ParentID)

	assert.Empty(t, tree[1].Children)
	assert.NotNil(t, tree[1].Children)
}

func TestCategoryRepositoryEmptyTree(t *testing.T) {
	s := newTestStore(t)

	tree, err := s.categories.ListTree(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestTransactionRepositoryLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.categories.Seed(ctx, testTaxonomy))

	tx := &domain.Transaction{Name: "Coffee", Description: "flat white", Amount: 4.5, CategoryID: 12, TransDate: 1700000000000}
	id, err := s.transactions.Create(ctx, tx)
	require.NoError(t, err)

	got, err := s.transactions.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", got.Name)
	assert.Equal(t, 4.5, got.Amount)
	assert.Equal(t, int64(1700000000000), got.TransDate)

	name := "Espresso"
	amount := 3.0
	updated, err := s.transactions.Update(ctx, id, domain.TransactionPatch{Name: &name, Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, "Espresso", updated.Name)
	assert.Equal(t, 3.0, updated.Amount)
	assert.Equal(t, "flat white", updated.Description)
	assert.Equal(t, int64(12), updated.CategoryID)

	list, err := s.transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.transactions.Delete(ctx, id))
	assert.ErrorIs(t, s.transactions.Delete(ctx, id), repository.ErrNotFound)

	_, err = s.transactions.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTransactionRepositoryMissingRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	name := "x"
	_, err := s.transactions.Update(ctx, 42, domain.TransactionPatch{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.transactions.Update(ctx, 42, domain.TransactionPatch{})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, s.transactions.Delete(ctx, 42), repository.ErrNotFound)

	list, err := s.transactions.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTransactionRepositoryUnknownCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.categories.Seed(ctx, testTaxonomy))

	_, err := s.transactions.Create(ctx, &domain.Transaction{Name: "x", CategoryID: 999})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)

	id, err := s.transactions.Create(ctx, &domain.Transaction{Name: "x", CategoryID: 1})
	require.NoError(t, err)

	missing := int64(999)
	_, err = s.transactions.Update(ctx, id, domain.TransactionPatch{CategoryID: &missing})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)
}

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStorage opens a migrated database in a temp directory.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func txn(id string, typ model.TransactionType, amount float64, category, date string) model.Transaction {
	return model.Transaction{ID: id, Type: typ, Amount: amount, Category: category, Date: date}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrate_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(context.Background()))
	count, err := store.GetTransactionCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSettings_RoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.GetValue(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.SetValue(ctx, "goal", `{"amount":5000}`))
	require.NoError(t, store.SetValue(ctx, "goal", `{"amount":7500}`))

	value, err := store.GetValue(ctx, "goal")
	require.NoError(t, err)
	assert.Equal(t, `{"amount":7500}`, value)

	assert.ErrorIs(t, store.SetValue(ctx, "", "x"), ErrEmptyString)
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprint.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	first := txn("a", model.TypeIncome, 100, "Salary", "2024-01-02")
	require.NoError(t, store.AddTransaction(ctx, &first))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	got, err := reopened.GetTransaction(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, first, *got)
}

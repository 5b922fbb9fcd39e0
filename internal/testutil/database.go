// Package testutil provides shared fixtures for the sprint test suites.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/storage"
)

// TestDB is a migrated in-memory database owned by one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory database, runs migrations and seeds
// the given transactions. Cleanup is registered on t.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.Income("2024-01-02", 1000),
//		testutil.Expense("2024-01-03", 250),
//	)
func SetupTestDB(t *testing.T, seed ...model.Transaction) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(seed) > 0 {
		if _, err := store.SaveTransactions(ctx, seed); err != nil {
			t.Fatalf("failed to seed transactions: %v", err)
		}
	}

	return &TestDB{Storage: store, t: t}
}

// MustList returns every stored transaction or fails the test.
func (db *TestDB) MustList() []model.Transaction {
	db.t.Helper()
	txns, err := db.Storage.ListTransactions(context.Background(), storageFilterAll)
	if err != nil {
		db.t.Fatalf("failed to list transactions: %v", err)
	}
	return txns
}

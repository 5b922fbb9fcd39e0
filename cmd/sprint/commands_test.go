package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/config"
	"github.com/Veraticus/savings-sprint/internal/goal"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/service"
	"github.com/Veraticus/savings-sprint/internal/sheets"
	"github.com/Veraticus/savings-sprint/internal/storage"
	"github.com/Veraticus/savings-sprint/internal/testutil"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// setupCLI points the commands at a fresh database file and a fixed clock.
func setupCLI(t *testing.T) string {
	t.Helper()

	viper.Reset()
	config.SetDefaults(viper.GetViper())
	dbPath := filepath.Join(t.TempDir(), "sprint.db")
	viper.Set("database.path", dbPath)

	prev := timeNow
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() {
		viper.Reset()
		timeNow = prev
	})
	return dbPath
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func openStore(t *testing.T, path string) *storage.SQLiteStorage {
	t.Helper()
	store, err := initStorage(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndList(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := execute(t, addCmd(), "", "--type", "income", "--amount", "65000", "--category", "Salary", "--date", "2024-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Added income")

	out, err = execute(t, addCmd(), "", "-t", "expense", "-a", "450,50", "-c", "Food & Dining", "-n", "lunch")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-10", "date defaults to today")

	txns, err := openStore(t, dbPath).ListTransactions(context.Background(), service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.InDelta(t, 450.5, txns[0].Amount, 1e-9)

	out, err = execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "lunch")
	assert.Contains(t, out, "Showing 1-2 of 2")

	out, err = execute(t, listCmd(), "", "--type", "expense")
	require.NoError(t, err)
	assert.NotContains(t, out, "Salary")

	out, err = execute(t, listCmd(), "", "--query", "nothing-like-this")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions match")

	_, err = execute(t, listCmd(), "", "--page-size", "7")
	assert.Error(t, err)
}

func TestAdd_Rejects(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown type", []string{"-t", "transfer", "-a", "10"}},
		{"zero amount", []string{"-t", "expense", "-a", "0"}},
		{"negative amount", []string{"-t", "expense", "-a", "-5"}},
		{"wrong category for type", []string{"-t", "income", "-a", "10", "-c", "Housing"}},
		{"bad date", []string{"-t", "expense", "-a", "10", "-d", "10/03/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, addCmd(), "", tt.args...)
			require.Error(t, err)
			var userErr *common.UserError
			assert.True(t, errors.As(err, &userErr))
		})
	}
}

func TestAdd_CategorizesFromNote(t *testing.T) {
	dbPath := setupCLI(t)
	viper.Set("rules", []map[string]any{
		{"name": "chai", "type": "expense", "category": "Food & Dining", "pattern": `chai\s+point`},
	})

	out, err := execute(t, addCmd(), "", "-t", "expense", "-a", "300", "-n", "Swiggy order")
	require.NoError(t, err)
	assert.Contains(t, out, "Food & Dining")

	_, err = execute(t, addCmd(), "", "-t", "expense", "-a", "80", "-n", "CHAI  POINT koramangala")
	require.NoError(t, err)

	_, err = execute(t, addCmd(), "", "-t", "expense", "-a", "999", "-n", "Netflix", "-c", "Shopping")
	require.NoError(t, err)

	txns, err := openStore(t, dbPath).ListTransactions(context.Background(), service.TransactionFilter{})
	require.NoError(t, err)
	byNote := make(map[string]string)
	for _, txn := range txns {
		byNote[txn.Note] = txn.Category
	}
	assert.Equal(t, "Food & Dining", byNote["Swiggy order"])
	assert.Equal(t, "Food & Dining", byNote["CHAI  POINT koramangala"], "configured rules apply")
	assert.Equal(t, "Shopping", byNote["Netflix"], "an explicit category wins")
}

func TestNewDetector_RejectsBadRules(t *testing.T) {
	setupCLI(t)
	viper.Set("rules", []map[string]any{
		{"name": "broken", "type": "expense", "category": "Shopping", "pattern": "(["},
	})

	_, err := newDetector()
	assert.Error(t, err)
}

func TestTransactionFlags_BuildOnlyChanged(t *testing.T) {
	base := model.Transaction{
		ID:       "t1",
		Type:     model.TypeExpense,
		Amount:   100,
		Category: "Travel",
		Note:     "train",
		Date:     "2024-03-01",
	}
	flags := transactionFlags{amount: "120", note: "ignored"}
	changed := func(name string) bool { return name == "amount" }

	got, err := flags.build(base, changed, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 120, got.Amount, 1e-9)
	assert.Equal(t, "train", got.Note)
	assert.Equal(t, "2024-03-01", got.Date)
	assert.Equal(t, "Travel", got.Category)
}

func TestEditAndDelete(t *testing.T) {
	dbPath := setupCLI(t)
	store := openStore(t, dbPath)
	ctx := context.Background()

	entry := testutil.Expense("2024-03-02", 300)
	require.NoError(t, store.AddTransaction(ctx, &entry))

	_, err := execute(t, editCmd(), "", entry.ID, "--amount", "320", "--note", "groceries")
	require.NoError(t, err)
	got, err := store.GetTransaction(ctx, entry.ID)
	require.NoError(t, err)
	assert.InDelta(t, 320, got.Amount, 1e-9)
	assert.Equal(t, "groceries", got.Note)
	assert.Equal(t, "Food & Dining", got.Category)

	_, err = execute(t, editCmd(), "", "missing", "--amount", "1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	out, err := execute(t, deleteCmd(), "n\n", entry.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted")
	_, err = store.GetTransaction(ctx, entry.ID)
	require.NoError(t, err)

	out, err = execute(t, deleteCmd(), "y\n", entry.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	_, err = store.GetTransaction(ctx, entry.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGoalCommands(t *testing.T) {
	dbPath := setupCLI(t)
	ctx := context.Background()
	load := func() model.SavingsGoal {
		return goal.NewStore(openStore(t, dbPath), nil).Load(ctx)
	}

	_, err := execute(t, goalCmd(), "", "set", "₹7,500")
	require.NoError(t, err)
	assert.InDelta(t, 7500, load().Amount, 1e-9)

	_, err = execute(t, goalCmd(), "", "adjust", "--", "-500")
	require.NoError(t, err)
	assert.InDelta(t, 7000, load().Amount, 1e-9)

	_, err = execute(t, goalCmd(), "", "adjust", "1000000")
	require.NoError(t, err)
	assert.InDelta(t, model.MaxGoalAmount, load().Amount, 1e-9)

	_, err = execute(t, goalCmd(), "", "period", "custom", "--days", "10")
	require.NoError(t, err)
	g := load()
	assert.Equal(t, model.PeriodCustom, g.Period)
	assert.Equal(t, 10, g.CustomDays)
	assert.True(t, g.StartDate.Equal(testNow))

	_, err = execute(t, goalCmd(), "", "period", "yearly")
	assert.Error(t, err)

	_, err = execute(t, goalCmd(), "", "adjust", "lots")
	assert.Error(t, err)

	out, err := execute(t, goalCmd(), "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Custom (10 days)")
	assert.Contains(t, out, "10 days left")
}

func TestGoalShow_Achieved(t *testing.T) {
	dbPath := setupCLI(t)
	store := openStore(t, dbPath)
	ctx := context.Background()

	require.NoError(t, goal.NewStore(store, nil).Save(ctx, model.SavingsGoal{
		Amount:     1000,
		Period:     model.PeriodMonthly,
		CustomDays: 30,
		StartDate:  testutil.Date(2024, 3, 1),
	}))
	_, err := store.SaveTransactions(ctx, []model.Transaction{testutil.Income("2024-03-05", 1500)})
	require.NoError(t, err)

	out, err := execute(t, goalCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal reached")
	assert.Contains(t, out, "100%")
}

func TestReset(t *testing.T) {
	dbPath := setupCLI(t)
	store := openStore(t, dbPath)
	ctx := context.Background()

	_, err := store.SaveTransactions(ctx, []model.Transaction{
		testutil.Income("2024-03-01", 100),
		testutil.Expense("2024-03-02", 50),
	})
	require.NoError(t, err)

	out, err := execute(t, resetCmd(), "\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted")

	out, err = execute(t, resetCmd(), "", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 transactions")

	count, err := store.GetTransactionCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImportJSON(t *testing.T) {
	dbPath := setupCLI(t)
	file := filepath.Join(t.TempDir(), "transactions.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"id": "a", "type": "income", "amount": 65000, "category": "Salary", "note": "March", "date": "2024-03-01"},
		{"id": "b", "type": "expense", "amount": "450.50", "category": "Food & Dining", "date": "2024-03-02T10:00:00.000Z"},
		{"type": "expense", "amount": 99, "category": "Made Up", "date": "2024-03-03"},
		{"id": "d", "type": "transfer", "amount": 10, "category": "Other", "date": "2024-03-03"},
		{"id": "e", "type": "expense", "amount": 0, "category": "Other", "date": "2024-03-03"},
		{"id": "f", "type": "expense", "category": "Other", "date": "2024-03-03"},
		{"id": "a", "type": "income", "amount": 1, "category": "Salary", "date": "2024-03-04"}
	]`), 0o600))

	out, err := execute(t, importJSONCmd(), "", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 new transactions")
	assert.Contains(t, out, "2 rejected", "unknown type and missing amount")

	store := openStore(t, dbPath)
	ctx := context.Background()

	b, err := store.GetTransaction(ctx, "b")
	require.NoError(t, err)
	assert.InDelta(t, 450.5, b.Amount, 1e-9)
	assert.Equal(t, "2024-03-02", b.Date)

	a, err := store.GetTransaction(ctx, "a")
	require.NoError(t, err)
	assert.InDelta(t, 65000, a.Amount, 1e-9, "first entry with a repeated id wins")

	txns, err := store.ListTransactions(ctx, service.TransactionFilter{Type: model.TypeExpense})
	require.NoError(t, err)
	var categories []string
	for _, txn := range txns {
		categories = append(categories, txn.Category)
	}
	assert.Contains(t, categories, model.OtherCategory, "unknown categories become Other")

	e, err := store.GetTransaction(ctx, "e")
	require.NoError(t, err, "zero amounts are kept")
	assert.Zero(t, e.Amount)

	out, err = execute(t, importJSONCmd(), "", file)
	require.NoError(t, err)
	// The entry without an id gets a fresh one on every import.
	assert.Contains(t, out, "Imported 1 new transactions (3 already present")
}

func TestImportJSON_NotAnArray(t *testing.T) {
	setupCLI(t)
	_, err := execute(t, importJSONCmd(), `{"transactions": []}`, "-")
	require.Error(t, err)
	var userErr *common.UserError
	assert.True(t, errors.As(err, &userErr))
}

func TestExportJSON(t *testing.T) {
	dbPath := setupCLI(t)
	_, err := openStore(t, dbPath).SaveTransactions(context.Background(), []model.Transaction{
		{ID: "x", Type: model.TypeIncome, Amount: 10, Category: "Gifts", Date: "2024-03-01"},
	})
	require.NoError(t, err)

	out, err := execute(t, exportJSONCmd(), "")
	require.NoError(t, err)

	txns, rejected, err := decodeTransactions(strings.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, txns, 1)
	assert.Equal(t, "x", txns[0].ID)
	assert.Equal(t, "Gifts", txns[0].Category)
}

func TestSummaryAndCategories(t *testing.T) {
	dbPath := setupCLI(t)
	_, err := openStore(t, dbPath).SaveTransactions(context.Background(), []model.Transaction{
		testutil.Income("2024-03-01", 1000),
		testutil.Expense("2024-03-02", 400),
		{ID: "travel", Type: model.TypeExpense, Amount: 200, Category: "Travel", Date: "2024-02-20"},
	})
	require.NoError(t, err)

	out, err := execute(t, summaryCmd(), "", "--month", "3", "--year", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Food & Dining")
	assert.NotContains(t, out, "Travel", "February spending is outside the month")

	out, err = execute(t, summaryCmd(), "", "--month", "3", "--year", "2024", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Travel")

	_, err = execute(t, summaryCmd(), "", "--month", "13")
	assert.Error(t, err)

	out, err = execute(t, categoriesCmd(), "", "--type", "income")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary")
	assert.NotContains(t, out, "Housing")
}

func TestMigrateStatus(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, migrateCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated database")

	out, err = execute(t, migrateCmd(), "", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema version 3 of 3")
}

func TestPublish(t *testing.T) {
	writer := sheets.NewMockWriter()
	report := &service.SavingsReport{Daily: make([]model.DailyPoint, 14)}

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	require.NoError(t, publish(cmd, writer, report))
	assert.Equal(t, 1, writer.Calls())
	assert.Same(t, report, writer.LastReport)
	assert.Contains(t, out.String(), "14 days")

	writer.SetWriteError(common.ErrRateLimit)
	err := publish(cmd, writer, report)
	assert.ErrorIs(t, err, common.ErrRateLimit)
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Contains(t, userErr.UserMessage, "try again")

	writer.SetWriteError(errors.New("permission denied"))
	err = publish(cmd, writer, report)
	require.Error(t, err)
	assert.False(t, errors.As(err, &userErr))
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/ofx"
	"github.com/Veraticus/savings-sprint/internal/testutil"
)

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ofx", "b.ofx", "c.qfx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	files, err := expandPatterns([]string{
		filepath.Join(dir, "*.ofx"),
		filepath.Join(dir, "a.ofx"),
		filepath.Join(dir, "c.qfx"),
		filepath.Join(dir, "missing.ofx"),
	})
	require.NoError(t, err)
	assert.Len(t, files, 3, "duplicates and missing files are dropped")

	_, err = expandPatterns([]string{filepath.Join(dir, "*.csv")})
	assert.Error(t, err)
}

func TestParseFiles_BadFileDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ofx")
	require.NoError(t, os.WriteFile(bad, []byte("not an ofx document"), 0o600))

	results, err := parseFiles(context.Background(), ofx.NewParser(), []string{bad, filepath.Join(dir, "gone.ofx")}, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Error(t, results[0].err)
	assert.Error(t, results[1].err)

	var out bytes.Buffer
	assert.Empty(t, collectTransactions(&out, results))
	assert.Contains(t, out.String(), "bad.ofx")
}

func TestParseFiles_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parseFiles(ctx, ofx.NewParser(), []string{"whatever.ofx"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectTransactions_DedupesAcrossFiles(t *testing.T) {
	shared := testutil.Income("2024-03-01", 100)
	results := []fileResult{
		{path: "one.ofx", statement: &ofx.Statement{Transactions: []model.Transaction{shared, testutil.Expense("2024-03-02", 5)}}},
		{path: "two.ofx", statement: &ofx.Statement{Transactions: []model.Transaction{shared}, Skipped: 2}},
	}

	var out bytes.Buffer
	txns := collectTransactions(&out, results)
	assert.Len(t, txns, 2)
	assert.Contains(t, out.String(), "one.ofx: 2 transactions")
	assert.Contains(t, out.String(), "two.ofx: 0 transactions, 2 zero-amount skipped")
}

func TestSaveInBatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	txns := make([]model.Transaction, saveBatchSize+25)
	for i := range txns {
		txns[i] = testutil.Expense("2024-03-01", float64(i+1))
	}

	handler := cli.NewInterruptHandler(&bytes.Buffer{}, "Import")
	n, err := saveInBatches(ctx, db.Storage, txns, handler)
	require.NoError(t, err)
	assert.Equal(t, len(txns), n)

	n, err = saveInBatches(ctx, db.Storage, txns[:10], nil)
	require.NoError(t, err)
	assert.Zero(t, n, "existing ids are skipped")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = saveInBatches(cancelled, db.Storage, txns, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/service"
)

const transactionColumns = `id, type, amount, category, note, date`

// AddTransaction inserts a new transaction. An empty ID is filled in.
func (s *SQLiteStorage) AddTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if txn != nil && txn.ID == "" {
		txn.ID = model.NewTransactionID()
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, txn.ID, string(txn.Type), txn.Amount, txn.Category, txn.Note, txn.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", common.ErrDuplicateEntry, txn.ID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
	}
	return nil
}

// UpdateTransaction replaces every mutable field of an existing transaction.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET type = ?, amount = ?, category = ?, note = ?, date = ?
		WHERE id = ?
	`, string(txn.Type), txn.Amount, txn.Category, txn.Note, txn.Date, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.ID, err)
	}

	return expectOneRow(result, txn.ID)
}

// DeleteTransaction removes a transaction by ID.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}

	return expectOneRow(result, id)
}

// ClearTransactions deletes every transaction and returns how many were removed.
func (s *SQLiteStorage) ClearTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear transactions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared transactions: %w", err)
	}
	return int(n), nil
}

// GetTransaction returns a single transaction or common.ErrNotFound.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return &txn, nil
}

// ListTransactions returns transactions newest first.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(filter.From, filter.To); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.From != "" {
		where = append(where, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		where = append(where, "date <= ?")
		args = append(args, filter.To)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// SaveTransactions bulk-inserts transactions, skipping IDs that already exist.
// It returns how many rows were actually inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	inserted := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO transactions (`+transactionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, txn := range transactions {
			result, execErr := stmt.ExecContext(ctx,
				txn.ID,
				string(txn.Type),
				txn.Amount,
				txn.Category,
				txn.Note,
				txn.Date,
			)
			if execErr != nil {
				return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, execErr)
			}
			if n, _ := result.RowsAffected(); n > 0 {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// GetTransactionCount returns the total number of stored transactions.
func (s *SQLiteStorage) GetTransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var (
		txn     model.Transaction
		txnType string
	)
	if err := row.Scan(&txn.ID, &txnType, &txn.Amount, &txn.Category, &txn.Note, &txn.Date); err != nil {
		return model.Transaction{}, err
	}
	txn.Type = model.TransactionType(txnType)
	return txn, nil
}

func expectOneRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

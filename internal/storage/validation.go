package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidDateRange   = errors.New("start date must be before end date")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if strings.TrimSpace(txn.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if !txn.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	if txn.Amount < 0 || math.IsNaN(txn.Amount) || math.IsInf(txn.Amount, 0) {
		return fmt.Errorf("%w: amount %v", ErrInvalidTransaction, txn.Amount)
	}
	if strings.TrimSpace(txn.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidTransaction)
	}
	if _, ok := txn.ParsedDate(); !ok {
		return fmt.Errorf("%w: date %q is not yyyy-mm-dd", ErrInvalidTransaction, txn.Date)
	}
	return nil
}

// validateDateRange checks optional yyyy-mm-dd bounds.
func validateDateRange(from, to string) error {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = time.Parse(model.DateLayout, from); err != nil {
			return fmt.Errorf("%w: from %q", ErrInvalidDateRange, from)
		}
	}
	if to != "" {
		if end, err = time.Parse(model.DateLayout, to); err != nil {
			return fmt.Errorf("%w: to %q", ErrInvalidDateRange, to)
		}
	}
	if from != "" && to != "" && end.Before(start) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, from, to)
	}
	return nil
}

// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical calendar-date layout for transaction dates.
const DateLayout = "2006-01-02"

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense entry.
//
// Date is kept as the stored yyyy-mm-dd string. Aggregation matches and
// compares it without ever rewriting it.
type Transaction struct {
	ID       string          `json:"id"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
	Date     string          `json:"date"`
	Amount   float64         `json:"amount"`
}

// NewTransactionID returns a fresh random identifier for a transaction.
func NewTransactionID() string {
	return uuid.NewString()
}

// ParsedDate parses the transaction date. The second return value is false
// when the stored date is not a valid calendar date.
func (t Transaction) ParsedDate() (time.Time, bool) {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// FormatDate renders a time as a transaction date string in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

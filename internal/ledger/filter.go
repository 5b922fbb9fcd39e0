// Package ledger holds the pure queries the presentation layer runs over the
// transaction list: filtering, sorting, pagination and summaries.
package ledger

import (
	"fmt"
	"strings"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// TypeAll matches both income and expense transactions.
const TypeAll = "all"

// Filter selects transactions. Zero values match everything.
type Filter struct {
	Type  string // "all", "income" or "expense"
	Query string // case-insensitive substring of note or category
	Month string // "01".."12" or "all"
	From  string // yyyy-mm-dd, inclusive
	To    string // yyyy-mm-dd, inclusive
}

// Validate checks the filter's enumerated fields.
func (f Filter) Validate() error {
	switch f.Type {
	case "", TypeAll, string(model.TypeIncome), string(model.TypeExpense):
	default:
		return fmt.Errorf("unknown transaction type %q", f.Type)
	}

	if f.Month != "" && f.Month != TypeAll {
		if len(f.Month) != 2 || f.Month < "01" || f.Month > "12" {
			return fmt.Errorf("month must be 01..12, got %q", f.Month)
		}
	}
	return nil
}

// Match reports whether txn passes the filter.
func (f Filter) Match(txn model.Transaction) bool {
	if f.Type != "" && f.Type != TypeAll && string(txn.Type) != f.Type {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(txn.Note), q) &&
			!strings.Contains(strings.ToLower(txn.Category), q) {
			return false
		}
	}

	if f.Month != "" && f.Month != TypeAll {
		d, ok := txn.ParsedDate()
		if !ok || fmt.Sprintf("%02d", int(d.Month())) != f.Month {
			return false
		}
	}

	// yyyy-mm-dd compares correctly as a string.
	if f.From != "" && txn.Date < f.From {
		return false
	}
	if f.To != "" && txn.Date > f.To {
		return false
	}
	return true
}

// Apply returns the transactions matching f, preserving order.
func Apply(txns []model.Transaction, f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if f.Match(txn) {
			out = append(out, txn)
		}
	}
	return out
}

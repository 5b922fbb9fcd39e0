package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// SortField names a sortable transaction column.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"
	SortByType     SortField = "type"
)

// ParseSortField converts user input into a SortField.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByDate, SortByAmount, SortByCategory, SortByType:
		return f, nil
	case "":
		return SortByDate, nil
	default:
		return "", fmt.Errorf("cannot sort by %q (want date, amount, category or type)", s)
	}
}

// Sort returns a sorted copy of txns. Ties keep their input order.
func Sort(txns []model.Transaction, field SortField, desc bool) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	copy(out, txns)

	less := lessFunc(field)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field SortField) func(a, b model.Transaction) bool {
	switch field {
	case SortByAmount:
		return func(a, b model.Transaction) bool { return a.Amount < b.Amount }
	case SortByCategory:
		return func(a, b model.Transaction) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case SortByType:
		return func(a, b model.Transaction) bool { return a.Type < b.Type }
	default:
		return func(a, b model.Transaction) bool { return a.Date < b.Date }
	}
}

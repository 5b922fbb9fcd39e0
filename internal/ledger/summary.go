package ledger

import (
	"sort"
	"time"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// Totals is the income, expense and balance of a set of transactions.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Summarize totals every transaction.
func Summarize(txns []model.Transaction) Totals {
	var t Totals
	for _, txn := range txns {
		switch txn.Type {
		case model.TypeIncome:
			t.Income += txn.Amount
		case model.TypeExpense:
			t.Expense += txn.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// MonthTotals totals the transactions dated in the given calendar month.
func MonthTotals(txns []model.Transaction, year int, month time.Month) Totals {
	in := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		d, ok := txn.ParsedDate()
		if ok && d.Year() == year && d.Month() == month {
			in = append(in, txn)
		}
	}
	return Summarize(in)
}

// CategoryTotal is the income and expense recorded against one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
}

// CategoryBreakdown groups txns by category, largest expense first, then by name.
func CategoryBreakdown(txns []model.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, txn := range txns {
		i, ok := index[txn.Category]
		if !ok {
			i = len(out)
			index[txn.Category] = i
			out = append(out, CategoryTotal{Category: txn.Category})
		}
		if txn.Type == model.TypeIncome {
			out[i].Income += txn.Amount
		} else {
			out[i].Expense += txn.Amount
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Expense != out[j].Expense {
			return out[i].Expense > out[j].Expense
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ExpenseCategories keeps only the categories with some expense, as charted.
func ExpenseCategories(breakdown []CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(breakdown))
	for _, c := range breakdown {
		if c.Expense > 0 {
			out = append(out, c)
		}
	}
	return out
}

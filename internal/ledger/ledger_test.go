package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/savings-sprint/internal/model"
)

func sample() []model.Transaction {
	return []model.Transaction{
		{ID: "1", Type: model.TypeIncome, Amount: 50000, Category: "Salary", Note: "March pay", Date: "2024-03-01"},
		{ID: "2", Type: model.TypeExpense, Amount: 1200, Category: "Food & Dining", Note: "Groceries", Date: "2024-03-03"},
		{ID: "3", Type: model.TypeExpense, Amount: 15000, Category: "Housing", Note: "Rent", Date: "2024-03-05"},
		{ID: "4", Type: model.TypeExpense, Amount: 450, Category: "Food & Dining", Note: "", Date: "2024-04-02"},
		{ID: "5", Type: model.TypeIncome, Amount: 8000, Category: "Freelance / Contract", Note: "Logo work", Date: "2024-04-10"},
		{ID: "6", Type: model.TypeIncome, Amount: 300, Category: "Other", Note: "cashback on groceries", Date: "2024-04-11"},
	}
}

func ids(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter matches all", Filter{}, []string{"1", "2", "3", "4", "5", "6"}},
		{"type all", Filter{Type: TypeAll}, []string{"1", "2", "3", "4", "5", "6"}},
		{"income only", Filter{Type: "income"}, []string{"1", "5", "6"}},
		{"expense only", Filter{Type: "expense"}, []string{"2", "3", "4"}},
		{"query matches note case-insensitively", Filter{Query: "GROCER"}, []string{"2", "6"}},
		{"query matches category", Filter{Query: "dining"}, []string{"2", "4"}},
		{"whitespace query ignored", Filter{Query: "   "}, []string{"1", "2", "3", "4", "5", "6"}},
		{"month", Filter{Month: "04"}, []string{"4", "5", "6"}},
		{"month all", Filter{Month: TypeAll}, []string{"1", "2", "3", "4", "5", "6"}},
		{"date range inclusive", Filter{From: "2024-03-03", To: "2024-04-02"}, []string{"2", "3", "4"}},
		{"combined", Filter{Type: "expense", Month: "03", Query: "rent"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.filter)))
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{Type: "income", Month: "12"}.Validate())
	assert.Error(t, Filter{Type: "transfer"}.Validate())
	assert.Error(t, Filter{Month: "13"}.Validate())
	assert.Error(t, Filter{Month: "3"}.Validate())
}

func TestSort(t *testing.T) {
	txns := sample()

	byAmount := Sort(txns, SortByAmount, true)
	assert.Equal(t, []string{"1", "3", "5", "2", "4", "6"}, ids(byAmount))

	byDate := Sort(txns, SortByDate, true)
	assert.Equal(t, []string{"6", "5", "4", "3", "2", "1"}, ids(byDate))

	byCategory := Sort(txns, SortByCategory, false)
	assert.Equal(t, []string{"2", "4", "5", "3", "6", "1"}, ids(byCategory))

	byType := Sort(txns, SortByType, false)
	assert.Equal(t, []string{"2", "3", "4", "1", "5", "6"}, ids(byType), "stable within a type")

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(txns), "input untouched")
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByDate, f)

	f, err = ParseSortField("Amount")
	require.NoError(t, err)
	assert.Equal(t, SortByAmount, f)

	_, err = ParseSortField("note")
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	txns := sample()

	page := Paginate(txns, 2, 5)
	assert.Equal(t, []string{"6"}, ids(page.Items))
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 6, page.TotalItems)
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())
	assert.Equal(t, 6, page.FirstIndex())
	assert.Equal(t, 6, page.LastIndex())

	page = Paginate(txns, 99, 5)
	assert.Equal(t, 2, page.Number)

	page = Paginate(txns, 0, 0)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Len(t, page.Items, 6)
	assert.False(t, page.HasNext())

	empty := Paginate(nil, 1, 10)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Zero(t, empty.FirstIndex())
}

func TestValidatePageSize(t *testing.T) {
	size, err := ValidatePageSize(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, size)

	size, err = ValidatePageSize(20)
	require.NoError(t, err)
	assert.Equal(t, 20, size)

	_, err = ValidatePageSize(15)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	totals := Summarize(sample())

	assert.InDelta(t, 58300, totals.Income, 1e-9)
	assert.InDelta(t, 16650, totals.Expense, 1e-9)
	assert.InDelta(t, 41650, totals.Balance, 1e-9)
}

func TestMonthTotals(t *testing.T) {
	totals := MonthTotals(sample(), 2024, time.April)

	assert.InDelta(t, 8300, totals.Income, 1e-9)
	assert.InDelta(t, 450, totals.Expense, 1e-9)
	assert.InDelta(t, 7850, totals.Balance, 1e-9)

	assert.Equal(t, Totals{}, MonthTotals(sample(), 2023, time.April))
}

func TestCategoryBreakdown(t *testing.T) {
	breakdown := CategoryBreakdown(sample())

	require.Len(t, breakdown, 5)
	assert.Equal(t, CategoryTotal{Category: "Housing", Expense: 15000}, breakdown[0])
	assert.Equal(t, CategoryTotal{Category: "Food & Dining", Expense: 1650}, breakdown[1])
	assert.Equal(t, "Freelance / Contract", breakdown[2].Category)

	charted := ExpenseCategories(breakdown)
	require.Len(t, charted, 2)
	assert.Equal(t, "Housing", charted[0].Category)
	assert.Equal(t, "Food & Dining", charted[1].Category)
}

package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/testutil"
)

func TestDailySeries_EmptyLedger(t *testing.T) {
	ref := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	points := DailySeries(nil, 7, ref)

	require.Len(t, points, 7)
	assert.Equal(t, "2024-03-04", points[0].Date)
	assert.Equal(t, "4 Mar", points[0].Label)
	assert.Equal(t, "2024-03-10", points[6].Date)
	for _, p := range points {
		assert.Zero(t, p.Income)
		assert.Zero(t, p.Expenses)
		assert.Zero(t, p.Savings)
	}
}

func TestDailySeries_NonPositiveWindow(t *testing.T) {
	ref := testutil.Date(2024, 3, 10)

	assert.Empty(t, DailySeries(nil, 0, ref))
	assert.Empty(t, DailySeries(nil, -3, ref))
	assert.NotNil(t, DailySeries(nil, 0, ref))
}

func TestDailySeries_BucketsByExactDate(t *testing.T) {
	ref := testutil.Date(2024, 3, 10)
	txns := []model.Transaction{
		testutil.Income("2024-03-10", 1000),
		testutil.Expense("2024-03-10", 300),
		testutil.Expense("2024-03-08", 50),
		testutil.Income("2024-03-01", 999), // outside the window
		testutil.Income("2024-3-9", 42),    // not in canonical form
	}

	points := DailySeries(txns, 3, ref)

	require.Len(t, points, 3)
	assert.Equal(t, model.DailyPoint{Date: "2024-03-08", Label: "8 Mar", Expenses: 50, Savings: -50}, points[0])
	assert.Equal(t, model.DailyPoint{Date: "2024-03-09", Label: "9 Mar"}, points[1])
	assert.Equal(t, model.DailyPoint{Date: "2024-03-10", Label: "10 Mar", Income: 1000, Expenses: 300, Savings: 700}, points[2])
}

func TestDailySeries_CrossesMonthBoundary(t *testing.T) {
	points := DailySeries(nil, 3, testutil.Date(2024, 3, 1))

	require.Len(t, points, 3)
	assert.Equal(t, "2024-02-28", points[0].Date)
	assert.Equal(t, "2024-02-29", points[1].Date)
	assert.Equal(t, "2024-03-01", points[2].Date)
}

func TestPeriodTotals_InclusiveBounds(t *testing.T) {
	start := time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		testutil.Income("2024-01-14", 10),
		testutil.Income("2024-01-15", 100),
		testutil.Expense("2024-01-17", 40),
		testutil.Income("2024-01-20", 200),
		testutil.Expense("2024-01-21", 1),
		testutil.Income("not-a-date", 5000),
	}

	totals := PeriodTotals(txns, start, end)

	assert.InDelta(t, 300, totals.TotalIncome, 1e-9)
	assert.InDelta(t, 40, totals.TotalExpenses, 1e-9)
	assert.InDelta(t, 260, totals.Savings(), 1e-9)
}

func TestPeriodTotals_MatchesDailySeries(t *testing.T) {
	ref := testutil.Date(2024, 5, 14)
	txns := []model.Transaction{
		testutil.Income("2024-05-01", 1200),
		testutil.Expense("2024-05-03", 180.5),
		testutil.Expense("2024-05-09", 75),
		testutil.Income("2024-05-14", 300),
		testutil.Expense("2024-04-30", 999),
	}

	points := DailySeries(txns, 14, ref)
	totals := PeriodTotals(txns, ref.AddDate(0, 0, -13), ref)

	var income, expenses float64
	for _, p := range points {
		income += p.Income
		expenses += p.Expenses
	}
	assert.InDelta(t, totals.TotalIncome, income, 1e-9)
	assert.InDelta(t, totals.TotalExpenses, expenses, 1e-9)
}

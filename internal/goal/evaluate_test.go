package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/testutil"
)

func monthlyGoal(amount float64) model.SavingsGoal {
	return model.SavingsGoal{
		Period:     model.PeriodMonthly,
		Amount:     amount,
		CustomDays: model.DefaultCustomDays,
		StartDate:  testutil.Date(2024, 1, 1),
	}
}

func TestEvaluate_ExactlyAtTarget(t *testing.T) {
	txns := []model.Transaction{
		testutil.Income("2024-01-05", 1500),
		testutil.Expense("2024-01-06", 500),
	}

	stats := Evaluate(txns, monthlyGoal(1000), testutil.Date(2024, 1, 10))

	assert.True(t, stats.Achieved)
	assert.InDelta(t, 100, stats.Progress, 1e-9)
	assert.Zero(t, stats.Remaining)
	assert.InDelta(t, 1000, stats.CurrentSavings, 1e-9)
	assert.Equal(t, 31, stats.PeriodDays)
}

func TestEvaluate_NegativeSavings(t *testing.T) {
	txns := []model.Transaction{
		testutil.Income("2024-01-02", 500),
		testutil.Expense("2024-01-03", 2000),
	}

	stats := Evaluate(txns, monthlyGoal(1000), testutil.Date(2024, 1, 10))

	assert.False(t, stats.Achieved)
	assert.InDelta(t, -1500, stats.CurrentSavings, 1e-9)
	assert.InDelta(t, -150, stats.Progress, 1e-9)
	assert.InDelta(t, 2500, stats.Remaining, 1e-9)
}

func TestEvaluate_ProgressCappedAt100(t *testing.T) {
	txns := []model.Transaction{testutil.Income("2024-01-02", 5000)}

	stats := Evaluate(txns, monthlyGoal(1000), testutil.Date(2024, 1, 10))

	assert.True(t, stats.Achieved)
	assert.InDelta(t, 100, stats.Progress, 1e-9)
	assert.InDelta(t, 5000, stats.CurrentSavings, 1e-9)
}

func TestEvaluate_PartialProgress(t *testing.T) {
	txns := []model.Transaction{
		testutil.Income("2024-01-02", 2000),
		testutil.Expense("2024-01-03", 500),
		testutil.Income("2023-12-31", 10000), // before the period
	}

	stats := Evaluate(txns, monthlyGoal(5000), testutil.Date(2024, 1, 10))

	assert.False(t, stats.Achieved)
	assert.InDelta(t, 30, stats.Progress, 1e-9)
	assert.InDelta(t, 3500, stats.Remaining, 1e-9)
	assert.InDelta(t, 2000, stats.TotalIncome, 1e-9)
	assert.InDelta(t, 500, stats.TotalExpenses, 1e-9)
	assert.InDelta(t, 5000, stats.GoalAmount, 1e-9)
}

func TestEvaluate_NonPositiveTarget(t *testing.T) {
	now := testutil.Date(2024, 1, 10)

	stats := Evaluate(nil, monthlyGoal(0), now)
	assert.True(t, stats.Achieved)
	assert.InDelta(t, 100, stats.Progress, 1e-9)

	stats = Evaluate([]model.Transaction{testutil.Expense("2024-01-02", 10)}, monthlyGoal(0), now)
	assert.False(t, stats.Achieved)
	assert.Zero(t, stats.Progress)
}

func TestEvaluate_Idempotent(t *testing.T) {
	txns := []model.Transaction{
		testutil.Income("2024-01-02", 700),
		testutil.Expense("2024-01-04", 120),
	}
	goal := monthlyGoal(2000)
	now := testutil.Date(2024, 1, 10)

	assert.Equal(t, Evaluate(txns, goal, now), Evaluate(txns, goal, now))
}

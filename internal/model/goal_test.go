package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGoal(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	goal := DefaultGoal(now)

	assert.Equal(t, float64(5000), goal.Amount)
	assert.Equal(t, PeriodMonthly, goal.Period)
	assert.Equal(t, 30, goal.CustomDays)
	assert.True(t, goal.StartDate.Equal(now))
}

func TestClampGoalAmount(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below floor", 100, 500},
		{"at floor", 500, 500},
		{"inside range", 12500, 12500},
		{"at ceiling", 100000, 100000},
		{"above ceiling", 250000, 100000},
		{"negative", -10, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampGoalAmount(tt.in))
		})
	}
}

func TestParseGoalAmountInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain digits", "7500", 7500},
		{"currency symbols stripped", "₹ 8,000", 8000},
		{"no digits falls back to floor", "abc", 500},
		{"empty falls back to floor", "", 500},
		{"zero falls back to floor", "0", 500},
		{"small value clamped up", "20", 500},
		{"large value clamped down", "999999", 100000},
		{"overflow clamped down", "99999999999999999999999", 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGoalAmountInput(tt.raw))
		})
	}
}

func TestParseGoalPeriod(t *testing.T) {
	p, err := ParseGoalPeriod(" Weekly ")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeekly, p)

	p, err = ParseGoalPeriod("custom")
	require.NoError(t, err)
	assert.Equal(t, PeriodCustom, p)

	_, err = ParseGoalPeriod("yearly")
	assert.Error(t, err)
}

func TestCategoriesByType(t *testing.T) {
	assert.Contains(t, CategoriesByType(TypeIncome), "Salary")
	assert.NotContains(t, CategoriesByType(TypeIncome), "Housing")
	assert.Contains(t, CategoriesByType(TypeExpense), "Housing")

	assert.True(t, IsValidCategory(TypeExpense, "Food & Dining"))
	assert.True(t, IsValidCategory(TypeIncome, OtherCategory))
	assert.False(t, IsValidCategory(TypeIncome, "Food & Dining"))
}

func TestSavingsGoal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", `{"startDate":"2024-03-01T10:15:00Z"}`, time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), false},
		{"milliseconds", `{"startDate":"2024-03-01T10:15:00.250Z"}`, time.Date(2024, 3, 1, 10, 15, 0, 250e6, time.UTC), false},
		{"date only", `{"startDate":"2024-03-01"}`, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"missing", `{}`, time.Time{}, false},
		{"words", `{"startDate":"yesterday"}`, time.Time{}, true},
		{"number", `{"startDate":1709251200}`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var goal SavingsGoal
			err := json.Unmarshal([]byte(tt.raw), &goal)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, goal.StartDate.Equal(tt.want), "got %v", goal.StartDate)
		})
	}
}

func TestSavingsGoal_JSONRoundTripKeepsFields(t *testing.T) {
	goal := SavingsGoal{
		StartDate:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Period:     PeriodCustom,
		Amount:     1500,
		CustomDays: 12,
	}
	data, err := json.Marshal(goal)
	require.NoError(t, err)

	var decoded SavingsGoal
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, goal.Period, decoded.Period)
	assert.Equal(t, goal.CustomDays, decoded.CustomDays)
	assert.InDelta(t, goal.Amount, decoded.Amount, 1e-9)
	assert.True(t, goal.StartDate.Equal(decoded.StartDate))
}

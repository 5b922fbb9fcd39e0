package model

// PeriodStats is the derived state of the savings goal for the active period.
type PeriodStats struct {
	TotalIncome    float64 `json:"totalIncome"`
	TotalExpenses  float64 `json:"totalExpenses"`
	CurrentSavings float64 `json:"currentSavings"`
	GoalAmount     float64 `json:"goalAmount"`
	Progress       float64 `json:"progress"`
	Remaining      float64 `json:"remaining"`
	PeriodDays     int     `json:"periodDays"`
	Achieved       bool    `json:"achieved"`
}

// DailyPoint is one day of a dense savings time series.
type DailyPoint struct {
	Date     string  `json:"date"`
	Label    string  `json:"day"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

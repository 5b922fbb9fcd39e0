package goal

import (
	"math"
	"time"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// Evaluate derives the goal's progress for the period from goal.StartDate to now.
// Progress is capped at 100 but may go negative when expenses exceed income.
func Evaluate(transactions []model.Transaction, goal model.SavingsGoal, now time.Time) model.PeriodStats {
	totals := PeriodTotals(transactions, goal.StartDate, now)
	savings := totals.Savings()
	achieved := savings >= goal.Amount

	return model.PeriodStats{
		TotalIncome:    totals.TotalIncome,
		TotalExpenses:  totals.TotalExpenses,
		CurrentSavings: savings,
		GoalAmount:     goal.Amount,
		Progress:       progress(savings, goal.Amount, achieved),
		Remaining:      math.Max(goal.Amount-savings, 0),
		Achieved:       achieved,
		PeriodDays:     PeriodLengthDays(goal, now),
	}
}

func progress(savings, target float64, achieved bool) float64 {
	if target <= 0 {
		if achieved {
			return 100
		}
		return 0
	}
	return math.Min(savings/target*100, 100)
}

package goal

import (
	"math"
	"time"

	"github.com/Veraticus/savings-sprint/internal/model"
)

const day = 24 * time.Hour

// PeriodLengthDays returns the length of the goal's period. Monthly periods
// use the month containing now, not the month the period started in.
func PeriodLengthDays(goal model.SavingsGoal, now time.Time) int {
	switch goal.Period {
	case model.PeriodWeekly:
		return 7
	case model.PeriodMonthly:
		return daysInMonth(now)
	default:
		return goal.CustomDays
	}
}

// ShouldReset reports whether the goal's current period has elapsed at now.
// Monthly goals reset on any change of calendar month, however few days
// have passed.
func ShouldReset(goal model.SavingsGoal, now time.Time) bool {
	switch goal.Period {
	case model.PeriodWeekly:
		return elapsedDays(goal.StartDate, now) >= 7
	case model.PeriodMonthly:
		start := goal.StartDate.In(now.Location())
		return now.Month() != start.Month() || now.Year() != start.Year()
	default:
		return elapsedDays(goal.StartDate, now) >= goal.CustomDays
	}
}

// ResetPeriod starts a fresh period at now, keeping amount and period type.
func ResetPeriod(goal model.SavingsGoal, now time.Time) model.SavingsGoal {
	goal.StartDate = now
	return goal
}

// DaysRemaining is how many whole days are left before the period rolls over.
func DaysRemaining(goal model.SavingsGoal, now time.Time) int {
	var left int
	switch goal.Period {
	case model.PeriodMonthly:
		left = daysInMonth(now) - now.Day()
	default:
		left = PeriodLengthDays(goal, now) - elapsedDays(goal.StartDate, now)
	}
	return max(left, 0)
}

// elapsedDays is the floor of whole days between start and now.
func elapsedDays(start, now time.Time) int {
	return int(math.Floor(float64(now.Sub(start)) / float64(day)))
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

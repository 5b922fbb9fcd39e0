package goal

import (
	"time"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// Totals is the income and expense sum over a window.
type Totals struct {
	TotalIncome   float64
	TotalExpenses float64
}

// Savings is income minus expenses.
func (t Totals) Savings() float64 {
	return t.TotalIncome - t.TotalExpenses
}

func (t *Totals) add(txn model.Transaction) {
	switch txn.Type {
	case model.TypeIncome:
		t.TotalIncome += txn.Amount
	case model.TypeExpense:
		t.TotalExpenses += txn.Amount
	}
}

// DailySeries returns exactly windowDays points, oldest first, ending on the
// calendar day of ref. A transaction counts toward a day only when its date
// string equals that day's yyyy-mm-dd form exactly.
func DailySeries(transactions []model.Transaction, windowDays int, ref time.Time) []model.DailyPoint {
	if windowDays <= 0 {
		return []model.DailyPoint{}
	}

	byDate := make(map[string]*Totals, windowDays)
	points := make([]model.DailyPoint, windowDays)
	for i := range points {
		d := ref.AddDate(0, 0, i-(windowDays-1))
		iso := model.FormatDate(d)
		points[i] = model.DailyPoint{
			Date:  iso,
			Label: d.Format("2 Jan"),
		}
		byDate[iso] = &Totals{}
	}

	for _, txn := range transactions {
		if totals, ok := byDate[txn.Date]; ok {
			totals.add(txn)
		}
	}

	for i := range points {
		totals := byDate[points[i].Date]
		points[i].Income = totals.TotalIncome
		points[i].Expenses = totals.TotalExpenses
		points[i].Savings = totals.Savings()
	}

	return points
}

// PeriodTotals sums transactions dated within [start, end], both inclusive,
// comparing calendar dates in end's location. Transactions with unparseable
// dates never match.
func PeriodTotals(transactions []model.Transaction, start, end time.Time) Totals {
	first := calendarDate(start.In(end.Location()))
	last := calendarDate(end)

	var totals Totals
	for _, txn := range transactions {
		d, ok := txn.ParsedDate()
		if !ok || d.Before(first) || d.After(last) {
			continue
		}
		totals.add(txn)
	}
	return totals
}

// calendarDate maps t to midnight UTC of its calendar day in t's own location,
// the same representation model.Transaction.ParsedDate produces.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

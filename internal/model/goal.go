package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GoalPeriod is the recurring window a savings goal is tracked over.
type GoalPeriod string

const (
	PeriodWeekly  GoalPeriod = "weekly"
	PeriodMonthly GoalPeriod = "monthly"
	PeriodCustom  GoalPeriod = "custom"
)

// Goal amount limits enforced at the input boundary.
const (
	MinGoalAmount     = 500
	MaxGoalAmount     = 100000
	DefaultGoalAmount = 5000
	DefaultCustomDays = 30
)

// ParseGoalPeriod converts user input into a GoalPeriod.
func ParseGoalPeriod(s string) (GoalPeriod, error) {
	switch p := GoalPeriod(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodWeekly, PeriodMonthly, PeriodCustom:
		return p, nil
	default:
		return "", fmt.Errorf("unknown goal period %q (want weekly, monthly or custom)", s)
	}
}

// SavingsGoal is the persisted definition of the current savings sprint.
type SavingsGoal struct {
	StartDate  time.Time  `json:"startDate"`
	Period     GoalPeriod `json:"period"`
	Amount     float64    `json:"amount"`
	CustomDays int        `json:"customDays"`
}

// UnmarshalJSON reads a stored goal record. startDate may be a full
// RFC 3339 timestamp or a bare yyyy-mm-dd date, taken as midnight UTC.
func (g *SavingsGoal) UnmarshalJSON(data []byte) error {
	var record struct {
		StartDate  string     `json:"startDate"`
		Period     GoalPeriod `json:"period"`
		Amount     float64    `json:"amount"`
		CustomDays int        `json:"customDays"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	var start time.Time
	if record.StartDate != "" {
		var err error
		start, err = parseStartDate(record.StartDate)
		if err != nil {
			return err
		}
	}

	*g = SavingsGoal{
		StartDate:  start,
		Period:     record.Period,
		Amount:     record.Amount,
		CustomDays: record.CustomDays,
	}
	return nil
}

func parseStartDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("start date %q is neither RFC 3339 nor yyyy-mm-dd", s)
	}
	return t, nil
}

// DefaultGoal returns the goal used when nothing has been saved yet.
func DefaultGoal(now time.Time) SavingsGoal {
	return SavingsGoal{
		Amount:     DefaultGoalAmount,
		Period:     PeriodMonthly,
		CustomDays: DefaultCustomDays,
		StartDate:  now,
	}
}

// ClampGoalAmount limits v to [MinGoalAmount, MaxGoalAmount].
func ClampGoalAmount(v float64) float64 {
	if v < MinGoalAmount {
		return MinGoalAmount
	}
	if v > MaxGoalAmount {
		return MaxGoalAmount
	}
	return v
}

// ParseGoalAmountInput turns free-form goal input into a clamped amount.
// Every non-digit is dropped first; input with no digits falls back to the
// minimum amount.
func ParseGoalAmountInput(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	v, err := strconv.Atoi(b.String())
	if errors.Is(err, strconv.ErrRange) {
		return MaxGoalAmount
	}
	if err != nil || v == 0 {
		return MinGoalAmount
	}
	return ClampGoalAmount(float64(v))
}

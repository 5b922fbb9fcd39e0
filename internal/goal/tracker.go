package goal

import (
	"context"
	"time"

	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
)

// Window sizes for the daily series.
const (
	WeeklyWindowDays  = 7
	DefaultWindowDays = 14
)

// Snapshot is the result of one evaluation of the tracker.
type Snapshot struct {
	Now        time.Time
	Goal       model.SavingsGoal
	Daily      []model.DailyPoint
	Stats      model.PeriodStats
	RolledOver bool
}

// Tracker owns the in-memory goal for a session. It is the only thing that
// mutates the goal; persistence goes through the Store.
//
// goal is the working copy the user edits. saved mirrors the stored record
// and only changes on Save, Reload or a rollover of the stored period, so
// a rollover never writes unsaved edits.
type Tracker struct {
	store *Store
	clock func() time.Time
	goal  model.SavingsGoal
	saved model.SavingsGoal
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock overrides the tracker's time source.
func WithClock(clock func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.clock = clock
	}
}

// NewTracker loads the persisted goal and returns a tracker owning it.
func NewTracker(ctx context.Context, store *Store, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store: store,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.load(ctx)
	return t
}

func (t *Tracker) load(ctx context.Context) {
	t.goal, _ = t.store.LoadOrCreate(ctx)
	t.saved = t.goal
}

// Goal returns a copy of the current goal.
func (t *Tracker) Goal() model.SavingsGoal {
	return t.goal
}

// WindowDays is the daily series length shown for the current period type.
func (t *Tracker) WindowDays() int {
	if t.goal.Period == model.PeriodWeekly {
		return WeeklyWindowDays
	}
	return DefaultWindowDays
}

// Refresh evaluates the goal against transactions at a single instant.
// An elapsed period is rolled over before anything is aggregated. The stored
// record rolls over on its own period and only its new start date is
// written; pending edits stay in memory. The returned error only reports a
// failed save; the snapshot is valid regardless.
func (t *Tracker) Refresh(ctx context.Context, transactions []model.Transaction) (Snapshot, error) {
	now := t.clock()

	var (
		rolled  bool
		saveErr error
	)
	if ShouldReset(t.goal, now) {
		t.goal = ResetPeriod(t.goal, now)
		rolled = true
		common.LogInfo("Savings period rolled over", common.Fields{
			"period": string(t.goal.Period),
			"start":  t.goal.StartDate,
		})
	}
	if ShouldReset(t.saved, now) {
		t.saved = ResetPeriod(t.saved, now)
		saveErr = t.store.Save(ctx, t.saved)
	}

	return Snapshot{
		Now:        now,
		Goal:       t.goal,
		Daily:      DailySeries(transactions, t.WindowDays(), now),
		Stats:      Evaluate(transactions, t.goal, now),
		RolledOver: rolled,
	}, saveErr
}

// AdjustAmount moves the target by delta, staying within the allowed range.
func (t *Tracker) AdjustAmount(delta float64) {
	t.goal.Amount = model.ClampGoalAmount(t.goal.Amount + delta)
}

// SetAmount replaces the target, clamped to the allowed range.
func (t *Tracker) SetAmount(amount float64) {
	t.goal.Amount = model.ClampGoalAmount(amount)
}

// SetAmountInput sets the target from raw text input.
func (t *Tracker) SetAmountInput(raw string) {
	t.goal.Amount = model.ParseGoalAmountInput(raw)
}

// ChangePeriod switches the period type and starts a new period now.
// customDays is only applied to custom periods and ignored when not positive.
func (t *Tracker) ChangePeriod(period model.GoalPeriod, customDays int) {
	t.goal.Period = period
	if period == model.PeriodCustom && customDays > 0 {
		t.goal.CustomDays = customDays
	}
	t.goal.StartDate = t.clock()
}

// Save persists the current goal.
func (t *Tracker) Save(ctx context.Context) error {
	if err := t.store.Save(ctx, t.goal); err != nil {
		return err
	}
	t.saved = t.goal
	return nil
}

// Reload replaces the in-memory goal with the persisted one, for use after
// the record was changed by someone else.
func (t *Tracker) Reload(ctx context.Context) {
	t.load(ctx)
}

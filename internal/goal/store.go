// Package goal implements the savings sprint: a periodic savings target that
// rolls over when its period elapses and is evaluated against the ledger.
package goal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/service"
)

// StorageKey is the key the goal record is persisted under.
const StorageKey = "expense_tracker_savings_goal"

// Store loads and saves the goal record through a key-value store.
type Store struct {
	kv    service.KeyValueStore
	clock func() time.Time
}

// NewStore creates a goal store. A nil clock means time.Now.
func NewStore(kv service.KeyValueStore, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{kv: kv, clock: clock}
}

// recordState describes what Load found under StorageKey.
type recordState int

const (
	recordFound recordState = iota
	recordMissing
	recordUnreadable
)

// Load returns the persisted goal. Missing or unreadable records yield the
// default goal starting now; Load never fails.
func (s *Store) Load(ctx context.Context) model.SavingsGoal {
	goal, _ := s.load(ctx)
	return goal
}

// LoadOrCreate is Load that also writes the default goal when no usable
// record exists, so the first period keeps its start date across sessions.
// It reports whether the returned goal is what the store now holds. A read
// error never overwrites the stored record.
func (s *Store) LoadOrCreate(ctx context.Context) (model.SavingsGoal, bool) {
	goal, state := s.load(ctx)
	switch state {
	case recordFound:
		return goal, true
	case recordMissing:
		return goal, s.Save(ctx, goal) == nil
	default:
		return goal, false
	}
}

func (s *Store) load(ctx context.Context) (model.SavingsGoal, recordState) {
	raw, err := s.kv.GetValue(ctx, StorageKey)
	if errors.Is(err, common.ErrNotFound) {
		return model.DefaultGoal(s.clock()), recordMissing
	}
	if err != nil {
		common.LogError(err, "Failed to read savings goal, using default", nil)
		return model.DefaultGoal(s.clock()), recordUnreadable
	}

	goal, err := decodeGoal(raw)
	if err != nil {
		common.LogWarn("Ignoring malformed savings goal", common.Fields{"error": err.Error()})
		return model.DefaultGoal(s.clock()), recordMissing
	}
	return goal, recordFound
}

// Save persists the goal. A failure is logged and returned; callers keep
// their in-memory goal either way.
func (s *Store) Save(ctx context.Context, goal model.SavingsGoal) error {
	data, err := json.Marshal(goal)
	if err != nil {
		return fmt.Errorf("failed to encode savings goal: %w", err)
	}

	if err := s.kv.SetValue(ctx, StorageKey, string(data)); err != nil {
		common.LogError(err, "Failed to save savings goal", common.Fields{
			"amount": goal.Amount,
			"period": string(goal.Period),
		})
		return fmt.Errorf("failed to save savings goal: %w", err)
	}
	common.LogDebug("Saved savings goal", common.Fields{"amount": goal.Amount, "period": string(goal.Period)})
	return nil
}

// decodeGoal parses a stored record, filling fields older records lack.
func decodeGoal(raw string) (model.SavingsGoal, error) {
	var goal model.SavingsGoal
	if err := json.Unmarshal([]byte(raw), &goal); err != nil {
		return model.SavingsGoal{}, err
	}

	if _, err := model.ParseGoalPeriod(string(goal.Period)); err != nil {
		return model.SavingsGoal{}, err
	}
	if goal.Amount <= 0 {
		return model.SavingsGoal{}, fmt.Errorf("goal amount %v is not positive", goal.Amount)
	}
	if goal.StartDate.IsZero() {
		return model.SavingsGoal{}, errors.New("goal has no start date")
	}
	if goal.CustomDays <= 0 {
		goal.CustomDays = model.DefaultCustomDays
	}
	return goal, nil
}

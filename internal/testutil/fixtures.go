package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/service"
)

var (
	storageFilterAll = service.TransactionFilter{}
	idCounter        atomic.Int64
)

// Errors returned by MemoryKV when reads or writes are switched off.
var (
	ErrReadFailed  = errors.New("storage unavailable")
	ErrWriteFailed = errors.New("storage quota exceeded")
)

// Income builds an income transaction on date.
func Income(date string, amount float64) model.Transaction {
	return newTxn(model.TypeIncome, "Salary", date, amount)
}

// Expense builds an expense transaction on date.
func Expense(date string, amount float64) model.Transaction {
	return newTxn(model.TypeExpense, "Food & Dining", date, amount)
}

func newTxn(typ model.TransactionType, category, date string, amount float64) model.Transaction {
	return model.Transaction{
		ID:       fmt.Sprintf("txn-%d", idCounter.Add(1)),
		Type:     typ,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Date is a terse time.Date for UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MemoryKV is an in-memory service.KeyValueStore with switchable read and
// write failures.
type MemoryKV struct {
	values    map[string]string
	mu        sync.Mutex
	failRead  bool
	failWrite bool
	writes    int
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// GetValue implements service.KeyValueStore.
func (m *MemoryKV) GetValue(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failRead {
		return "", ErrReadFailed
	}
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	return v, nil
}

// SetValue implements service.KeyValueStore.
func (m *MemoryKV) SetValue(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrite {
		return ErrWriteFailed
	}
	m.values[key] = value
	m.writes++
	return nil
}

// FailWrites makes subsequent writes fail until called with false.
func (m *MemoryKV) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = fail
}

// FailReads makes subsequent reads fail until called with false.
func (m *MemoryKV) FailReads(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRead = fail
}

// Put stores a raw value, bypassing failure injection.
func (m *MemoryKV) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Raw returns the stored value and whether it exists.
func (m *MemoryKV) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Writes returns how many successful writes happened.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

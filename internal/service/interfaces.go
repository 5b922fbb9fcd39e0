// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	Type  model.TransactionType
	From  string // yyyy-mm-dd, inclusive
	To    string // yyyy-mm-dd, inclusive
	Limit int
}

// TransactionStore is the persistence contract for the transaction ledger.
// Listing returns transactions newest first.
type TransactionStore interface {
	AddTransaction(ctx context.Context, txn *model.Transaction) error
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)
	GetTransactionCount(ctx context.Context) (int, error)
}

// KeyValueStore persists small serialized records such as the savings goal.
// GetValue returns common.ErrNotFound when the key has never been written.
type KeyValueStore interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	TransactionStore
	KeyValueStore

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter publishes a savings report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report *SavingsReport) error
}

// SavingsReport is everything exported about the current savings sprint.
type SavingsReport struct {
	GeneratedAt time.Time
	Goal        model.SavingsGoal
	Stats       model.PeriodStats
	Daily       []model.DailyPoint
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

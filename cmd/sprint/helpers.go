package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/savings-sprint/internal/classification"
	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/config"
	"github.com/Veraticus/savings-sprint/internal/goal"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/service"
	"github.com/Veraticus/savings-sprint/internal/storage"
)

// timeNow is the clock every command reads.
var timeNow = time.Now

// app bundles what most commands need.
type app struct {
	store *storage.SQLiteStorage
	money *cli.Money
	cfg   config.Config
}

// openApp loads configuration and opens the migrated database.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	money, err := cli.NewMoney(cfg.Currency, cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid display settings: %w", err)
	}

	store, err := initStorage(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, store: store, money: money}, nil
}

// initStorage opens the database and runs pending migrations.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func (a *app) tracker(ctx context.Context) *goal.Tracker {
	return goal.NewTracker(ctx, goal.NewStore(a.store, timeNow), goal.WithClock(timeNow))
}

func (a *app) allTransactions(ctx context.Context) ([]model.Transaction, error) {
	txns, err := a.store.ListTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txns, nil
}

// customRulePriority puts configured rules ahead of the built-in ones
// unless they set their own priority.
const customRulePriority = 200

// newDetector loads the built-in categorization rules plus any configured
// under "rules".
func newDetector() (*classification.Detector, error) {
	var custom []classification.Rule
	if err := viper.UnmarshalKey("rules", &custom); err != nil {
		return nil, fmt.Errorf("invalid rules configuration: %w", err)
	}
	for i := range custom {
		if custom[i].Priority == 0 {
			custom[i].Priority = customRulePriority
		}
	}

	detector, err := classification.NewDetector(append(custom, classification.DefaultRules()...))
	if err != nil {
		return nil, fmt.Errorf("invalid rules configuration: %w", err)
	}
	return detector, nil
}

// parseDateFlag accepts yyyy-mm-dd or "today"; empty means today.
func parseDateFlag(s string, now time.Time) (string, error) {
	if s == "" || s == "today" {
		return model.FormatDate(now), nil
	}
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("date must be yyyy-mm-dd, got %q", s)
	}
	return model.FormatDate(d), nil
}

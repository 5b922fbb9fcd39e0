package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/savings-sprint/internal/goal"
	"github.com/Veraticus/savings-sprint/internal/service"
)

// Run starts the dashboard and blocks until the user quits or ctx is
// cancelled. Unsaved goal edits are discarded on exit.
func Run(ctx context.Context, tracker *goal.Tracker, transactions service.TransactionStore, opts ...Option) error {
	if tracker == nil {
		return fmt.Errorf("tracker is required")
	}
	if transactions == nil {
		return fmt.Errorf("transaction store is required")
	}

	m, err := New(ctx, tracker, transactions, opts...)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

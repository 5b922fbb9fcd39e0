package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/savings-sprint/internal/service"
)

const loadTimeout = 10 * time.Second

// loadTransactions reads the whole ledger.
func loadTransactions(ctx context.Context, store service.TransactionStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()

		txns, err := store.ListTransactions(ctx, service.TransactionFilter{})
		return transactionsLoadedMsg{transactions: txns, err: err}
	}
}

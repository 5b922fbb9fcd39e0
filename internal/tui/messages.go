package tui

import "github.com/Veraticus/savings-sprint/internal/model"

// transactionsLoadedMsg carries a fresh copy of the ledger.
type transactionsLoadedMsg struct {
	err          error
	transactions []model.Transaction
}

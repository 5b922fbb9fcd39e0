// Package tui implements the interactive savings sprint dashboard.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/savings-sprint/internal/goal"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/service"
	"github.com/Veraticus/savings-sprint/internal/tui/components"
	"github.com/Veraticus/savings-sprint/internal/tui/themes"
)

// State represents what the dashboard is currently waiting for.
type State int

const (
	StateLoading State = iota
	StateDashboard
	StateEditAmount
	StateEditDays
)

// Model holds the dashboard state. The tracker is only touched from Update,
// so every goal mutation happens on the program's goroutine.
type Model struct {
	ctx          context.Context
	theme        themes.Theme
	lastError    error
	tracker      *goal.Tracker
	transactions service.TransactionStore
	help         help.Model
	input        textinput.Model
	goalPanel    components.GoalPanelModel
	chart        components.DailyChartModel
	status       string
	ledger       []model.Transaction
	snapshot     goal.Snapshot
	keymap       KeyMap
	config       Config
	badge        Badge
	detector     AchievementDetector
	width        int
	height       int
	state        State
	statusIsErr  bool
	dirty        bool
	quitting     bool
}

// New creates the dashboard model.
func New(ctx context.Context, tracker *goal.Tracker, transactions service.TransactionStore, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Money == nil {
		money, err := defaultMoney()
		if err != nil {
			return Model{}, err
		}
		cfg.Money = money
	}

	input := textinput.New()
	input.CharLimit = 12

	m := Model{
		ctx:          ctx,
		config:       cfg,
		theme:        cfg.Theme,
		tracker:      tracker,
		transactions: transactions,
		keymap:       DefaultKeyMap(),
		help:         help.New(),
		input:        input,
		goalPanel:    components.NewGoalPanelModel(cfg.Theme, cfg.Money),
		chart:        components.NewDailyChartModel(cfg.Theme, cfg.Money),
		state:        StateLoading,
	}
	m.resize(cfg.Width, cfg.Height)
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadTransactions(m.ctx, m.transactions)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case transactionsLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.setStatus("Failed to load transactions: "+msg.err.Error(), true)
			m.state = StateDashboard
			return m, nil
		}
		m.ledger = msg.transactions
		if m.state == StateLoading {
			m.state = StateDashboard
		}
		return m, m.recompute()

	case badgeTickMsg:
		var cmd tea.Cmd
		m.badge, cmd = m.badge.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateEditAmount, StateEditDays:
		return m.handleInputKey(msg)
	case StateLoading:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Increase):
		m.tracker.AdjustAmount(m.config.Step)
		m.dirty = true
		return m, m.recompute()

	case key.Matches(msg, m.keymap.Decrease):
		m.tracker.AdjustAmount(-m.config.Step)
		m.dirty = true
		return m, m.recompute()

	case key.Matches(msg, m.keymap.CyclePeriod):
		next := nextPeriod(m.tracker.Goal().Period)
		m.tracker.ChangePeriod(next, 0)
		m.dirty = true
		return m, m.recompute()

	case key.Matches(msg, m.keymap.CustomDays):
		return m.startInput(StateEditDays, strconv.Itoa(m.tracker.Goal().CustomDays), "Days per period: ")

	case key.Matches(msg, m.keymap.EditAmount):
		return m.startInput(StateEditAmount, strconv.FormatFloat(m.tracker.Goal().Amount, 'f', 0, 64), "New target: ")

	case key.Matches(msg, m.keymap.Save):
		if err := m.tracker.Save(m.ctx); err != nil {
			m.lastError = err
			m.setStatus("Could not save goal: "+err.Error(), true)
			return m, nil
		}
		m.dirty = false
		m.setStatus("Goal saved", false)
		return m, nil

	case key.Matches(msg, m.keymap.Reload):
		m.tracker.Reload(m.ctx)
		m.dirty = false
		m.setStatus("Reloaded", false)
		return m, loadTransactions(m.ctx, m.transactions)

	case key.Matches(msg, m.keymap.Dismiss):
		m.badge = m.badge.Dismiss()
		return m, nil
	}

	return m, nil
}

func (m Model) startInput(state State, value, prompt string) (tea.Model, tea.Cmd) {
	m.state = state
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.input.Blur()
		m.state = StateDashboard
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		value := m.input.Value()
		m.input.Blur()
		editing := m.state
		m.state = StateDashboard

		if editing == StateEditAmount {
			m.tracker.SetAmountInput(value)
			m.dirty = true
			return m, m.recompute()
		}

		days, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || days <= 0 {
			m.setStatus("Days must be a positive whole number", true)
			return m, nil
		}
		m.tracker.ChangePeriod(model.PeriodCustom, days)
		m.dirty = true
		return m, m.recompute()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recompute refreshes the snapshot and opens the badge when the goal has
// just been reached.
func (m *Model) recompute() tea.Cmd {
	snap, err := m.tracker.Refresh(m.ctx, m.ledger)
	m.snapshot = snap
	m.goalPanel.SetSnapshot(snap)
	m.chart.SetPoints(snap.Daily)

	switch {
	case err != nil:
		m.lastError = err
		m.setStatus("New period started but could not be saved: "+err.Error(), true)
	case snap.RolledOver:
		m.setStatus("A new period has started", false)
	}

	if m.detector.Observe(snap.Stats.Achieved) {
		var cmd tea.Cmd
		m.badge, cmd = m.badge.Show(snap.Stats.GoalAmount)
		return cmd
	}
	return nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	inner := max(20, width-6)
	m.goalPanel.Resize(inner)
	m.goalPanel.SetCompact(height > 0 && height < 16)
	m.chart.Resize(inner)
}

// Snapshot returns the most recent evaluation.
func (m Model) Snapshot() goal.Snapshot { return m.snapshot }

// Dirty reports whether the goal has unsaved changes.
func (m Model) Dirty() bool { return m.dirty }

func nextPeriod(p model.GoalPeriod) model.GoalPeriod {
	switch p {
	case model.PeriodWeekly:
		return model.PeriodMonthly
	case model.PeriodMonthly:
		return model.PeriodCustom
	default:
		return model.PeriodWeekly
	}
}

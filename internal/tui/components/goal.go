package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/goal"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/tui/themes"
)

const maxBarWidth = 48

// GoalPanelModel displays the goal, its progress bar and period totals.
type GoalPanelModel struct {
	theme       themes.Theme
	money       *cli.Money
	progressBar progress.Model
	snapshot    goal.Snapshot
	width       int
	compact     bool
}

// NewGoalPanelModel creates a new goal panel.
func NewGoalPanelModel(theme themes.Theme, money *cli.Money) GoalPanelModel {
	prog := progress.New(progress.WithGradient(string(theme.Secondary), string(theme.Primary)))
	prog.ShowPercentage = false
	prog.Width = maxBarWidth

	return GoalPanelModel{
		theme:       theme,
		money:       money,
		progressBar: prog,
	}
}

// SetSnapshot replaces the data the panel renders.
func (m *GoalPanelModel) SetSnapshot(s goal.Snapshot) {
	m.snapshot = s
}

// Resize adapts the panel to the available width.
func (m *GoalPanelModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = max(10, min(width-12, maxBarWidth))
}

// SetCompact toggles the single-line rendering.
func (m *GoalPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// View renders the panel.
func (m GoalPanelModel) View() string {
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

func (m GoalPanelModel) renderFull() string {
	s := m.snapshot
	stats := s.Stats

	header := fmt.Sprintf("%s  %s", m.theme.Bold.Render(PeriodLabel(s.Goal)),
		m.theme.Subtitle.Render(fmt.Sprintf("started %s · %s",
			s.Goal.StartDate.In(s.Now.Location()).Format("2 Jan 2006"),
			daysLeftText(goal.DaysRemaining(s.Goal, s.Now)))))

	bar := fmt.Sprintf("%s %s", m.progressBar.ViewAs(barFraction(stats.Progress)),
		m.theme.Bold.Render(fmt.Sprintf("%.0f%%", stats.Progress)))

	saved := m.theme.Income
	if stats.CurrentSavings < 0 {
		saved = m.theme.Expense
	}

	rows := []string{
		m.row("Target", m.theme.Bold.Render(m.money.Format(stats.GoalAmount))),
		m.row("Income", m.theme.Income.Render(m.money.Format(stats.TotalIncome))),
		m.row("Expenses", m.theme.Expense.Render(m.money.Format(stats.TotalExpenses))),
		m.row("Saved", saved.Render(m.money.Format(stats.CurrentSavings))),
		m.row("Remaining", m.theme.Normal.Render(m.money.Format(stats.Remaining))),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		bar,
		"",
		strings.Join(rows, "\n"),
	)
}

func (m GoalPanelModel) renderCompact() string {
	stats := m.snapshot.Stats
	return fmt.Sprintf("%s %.0f%% · %s / %s",
		m.theme.Bold.Render(PeriodLabel(m.snapshot.Goal)),
		stats.Progress,
		m.money.Format(stats.CurrentSavings),
		m.money.Format(stats.GoalAmount))
}

func (m GoalPanelModel) row(label, value string) string {
	return m.theme.Label.Render(label) + value
}

// PeriodLabel names the goal's period for display.
func PeriodLabel(g model.SavingsGoal) string {
	switch g.Period {
	case model.PeriodWeekly:
		return "Weekly"
	case model.PeriodCustom:
		return fmt.Sprintf("Custom (%d days)", g.CustomDays)
	default:
		return "Monthly"
	}
}

func daysLeftText(n int) string {
	switch n {
	case 0:
		return "ends today"
	case 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", n)
	}
}

// barFraction maps a progress percentage to the bar's [0, 1] range.
func barFraction(pct float64) float64 {
	return max(0, min(pct/100, 1))
}

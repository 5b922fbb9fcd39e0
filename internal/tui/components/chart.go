package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/tui/themes"
)

const labelWidth = 7

// DailyChartModel draws net savings per day as horizontal bars.
type DailyChartModel struct {
	theme  themes.Theme
	money  *cli.Money
	points []model.DailyPoint
	width  int
}

// NewDailyChartModel creates an empty chart.
func NewDailyChartModel(theme themes.Theme, money *cli.Money) DailyChartModel {
	return DailyChartModel{theme: theme, money: money, width: 60}
}

// SetPoints replaces the series, oldest day first.
func (m *DailyChartModel) SetPoints(points []model.DailyPoint) {
	m.points = points
}

// Resize adapts the chart to the available width.
func (m *DailyChartModel) Resize(width int) {
	m.width = width
}

// View renders the chart.
func (m DailyChartModel) View() string {
	if len(m.points) == 0 {
		return m.theme.Subtitle.Render("No days to show")
	}

	var peak float64
	for _, p := range m.points {
		peak = max(peak, math.Abs(p.Savings))
	}

	amounts := make([]string, len(m.points))
	amountWidth := 0
	for i, p := range m.points {
		amounts[i] = m.money.Signed(p.Savings)
		amountWidth = max(amountWidth, lipgloss.Width(amounts[i]))
	}
	barWidth := max(5, m.width-labelWidth-amountWidth-4)

	lines := make([]string, 0, len(m.points)+1)
	lines = append(lines, m.theme.Bold.Render(fmt.Sprintf("Last %d days", len(m.points))))
	for i, p := range m.points {
		style := m.theme.Income
		if p.Savings < 0 {
			style = m.theme.Expense
		}
		bar := cli.Bar(math.Abs(p.Savings), peak, barWidth)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			m.theme.Subtitle.Render(padRight(p.Label, labelWidth)),
			style.Render(padRight(bar, barWidth)),
			style.Render(amounts[i])))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

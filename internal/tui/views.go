package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/savings-sprint/internal/tui/themes"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == StateLoading {
		return m.renderLoading()
	}

	sections := []string{
		m.renderHeader(),
		m.theme.RoundedBox.Render(m.goalPanel.View()),
	}
	if m.badge.Open() {
		sections = append(sections, m.renderBadge())
	}
	sections = append(sections, m.theme.RoundedBox.Render(m.chart.View()))

	switch m.state {
	case StateEditAmount, StateEditDays:
		sections = append(sections, m.input.View())
	}

	if m.status != "" {
		sections = append(sections, m.renderStatus())
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Title.Render(themes.IconTarget+" Savings Sprint"),
		"",
		m.theme.Subtitle.Render("Loading transactions..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(themes.IconTarget + " Savings Sprint")
	if m.dirty {
		title += m.theme.Subtitle.Render("  (unsaved)")
	}
	return title
}

func (m Model) renderBadge() string {
	style := m.theme.Badge
	if m.badge.Fading() {
		style = m.theme.BadgeFading
	}
	return style.Render(fmt.Sprintf("%s Goal reached! You saved %s this period.",
		themes.IconTrophy, m.config.Money.Format(m.badge.Amount())))
}

func (m Model) renderStatus() string {
	if m.statusIsErr {
		return m.theme.StatusError.Render(m.status)
	}
	return m.theme.StatusSuccess.Render(m.status)
}

// Package themes defines the color schemes of the sprint dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Label         lipgloss.Style
	Income        lipgloss.Style
	Expense       lipgloss.Style
	RoundedBox    lipgloss.Style
	Badge         lipgloss.Style
	BadgeFading   lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

func build(primary, secondary, fg, muted, border, income, expense, info lipgloss.Color) Theme {
	return Theme{
		Primary:   primary,
		Secondary: secondary,
		Muted:     muted,
		Border:    border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(12),
		Income: lipgloss.NewStyle().
			Foreground(income),
		Expense: lipgloss.NewStyle().
			Foreground(expense),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
		Badge: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primary).
			Foreground(fg).
			Bold(true).
			Padding(1, 4).
			Align(lipgloss.Center),
		BadgeFading: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Foreground(muted).
			Padding(1, 4).
			Align(lipgloss.Center),
		StatusError: lipgloss.NewStyle().
			Foreground(expense).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(income).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#14b8a6"), // teal
	lipgloss.Color("#0891b2"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#3b82f6"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#94e2d5"),
	lipgloss.Color("#89dceb"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#89b4fa"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[string]string{
	"Food & Dining":        "🍽️",
	"Transportation":       "🚗",
	"Shopping":             "🛍️",
	"Housing":              "🏠",
	"Utilities":            "💡",
	"Entertainment":        "🎬",
	"Health & Fitness":     "💪",
	"Personal Care":        "💅",
	"Education":            "📚",
	"Travel":               "✈️",
	"Debt & Loans":         "💳",
	"Gifts & Donations":    "🎁",
	"Salary":               "💼",
	"Freelance / Contract": "🧾",
	"Business":             "🏢",
	"Investments":          "📈",
	"Gifts":                "🎁",
	"Other":                "📦",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}

// Dashboard icons.
const (
	IconTarget = "🎯"
	IconTrophy = "🏆"
)

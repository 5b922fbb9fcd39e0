package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Goal
	Increase    key.Binding
	Decrease    key.Binding
	CyclePeriod key.Binding
	CustomDays  key.Binding
	EditAmount  key.Binding
	Save        key.Binding
	Reload      key.Binding
	Dismiss     key.Binding

	// Input
	Confirm key.Binding
	Cancel  key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Increase: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+/↑", "raise target"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "_", "down", "j"),
			key.WithHelp("-/↓", "lower target"),
		),
		CyclePeriod: key.NewBinding(
			key.WithKeys("p", "tab"),
			key.WithHelp("p", "change period"),
		),
		CustomDays: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "custom days"),
		),
		EditAmount: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit target"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save goal"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss badge"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increase, k.Decrease, k.CyclePeriod, k.Save, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increase, k.Decrease, k.EditAmount},
		{k.CyclePeriod, k.CustomDays},
		{k.Save, k.Reload, k.Dismiss},
		{k.Help, k.Quit},
	}
}

package tui

import (
	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/tui/themes"
)

// DefaultStep is how much one +/- press moves the target.
const DefaultStep = 500

// Config holds TUI configuration.
type Config struct {
	Theme  themes.Theme
	Money  *cli.Money
	Step   float64
	Width  int
	Height int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Step:   DefaultStep,
		Width:  80,
		Height: 24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithMoney sets the currency formatter.
func WithMoney(money *cli.Money) Option {
	return func(c *Config) {
		c.Money = money
	}
}

// WithStep sets the +/- adjustment step.
func WithStep(step float64) Option {
	return func(c *Config) {
		if step > 0 {
			c.Step = step
		}
	}
}

func defaultMoney() (*cli.Money, error) {
	return cli.NewMoney("INR", "en-IN")
}

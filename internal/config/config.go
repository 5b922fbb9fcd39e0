// Package config provides typed access to the application's viper configuration.
package config

import (
	"fmt"

	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/spf13/viper"
)

// DefaultDatabasePath is used when database.path is not configured.
const DefaultDatabasePath = "$HOME/.local/share/sprint/sprint.db"

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	Currency     string
	Locale       string
	Theme        string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("display.currency", "INR")
	v.SetDefault("display.locale", "en-IN")
	v.SetDefault("display.theme", "default")
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		DatabasePath: ExpandPath(v.GetString("database.path")),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
		Currency:     v.GetString("display.currency"),
		Locale:       v.GetString("display.locale"),
		Theme:        v.GetString("display.theme"),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = ExpandPath(DefaultDatabasePath)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that can be checked without side effects.
func (c Config) Validate() error {
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("%w: currency %q must be an ISO 4217 code", common.ErrInvalidConfig, c.Currency)
	}
	return nil
}

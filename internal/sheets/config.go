// Package sheets exports savings sprint reports to Google Sheets.
package sheets

import (
	"errors"
	"time"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	CurrencyPattern    string
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  "Savings Sprint",
		TimeZone:         "Asia/Kolkata",
		CurrencyPattern:  "[$₹-4009]#,##,##0.00",
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		EnableFormatting: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return errors.New("no authentication method configured")
	}
	if hasOAuth && hasServiceAccount {
		return errors.New("multiple authentication methods configured; use either OAuth2 or service account")
	}
	if c.RetryAttempts < 0 {
		return errors.New("retry attempts cannot be negative")
	}
	if c.RetryDelay < 0 {
		return errors.New("retry delay cannot be negative")
	}
	return nil
}

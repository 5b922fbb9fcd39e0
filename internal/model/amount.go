package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount is not a non-negative number.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses user-entered money such as "1250", "12.50" or "12,50".
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return AmountFromDecimal(d)
}

// AmountFromDecimal converts a decimal into a transaction amount.
func AmountFromDecimal(d decimal.Decimal) (float64, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, d.String())
	}
	f, _ := d.Float64()
	return f, nil
}

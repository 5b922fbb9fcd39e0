package cli

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money formats amounts in one currency for one locale.
type Money struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewMoney builds a formatter for an ISO 4217 code and a BCP 47 locale,
// e.g. "INR" and "en-IN".
func NewMoney(code, locale string) (*Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("unknown currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q: %w", locale, err)
	}
	return &Money{printer: message.NewPrinter(tag), unit: unit}, nil
}

// Format renders v with the currency symbol and locale grouping.
func (m *Money) Format(v float64) string {
	s := m.printer.Sprint(currency.Symbol(m.unit.Amount(math.Abs(v))))
	if v < 0 {
		return "-" + s
	}
	return s
}

// Signed renders v with an explicit + for positive values.
func (m *Money) Signed(v float64) string {
	if v > 0 {
		return "+" + m.Format(v)
	}
	return m.Format(v)
}

// Code returns the ISO currency code.
func (m *Money) Code() string {
	return m.unit.String()
}

// Bar renders value as a horizontal bar scaled against maxValue.
func Bar(value, maxValue float64, width int) string {
	if width <= 0 || maxValue <= 0 || value <= 0 {
		return ""
	}
	n := int(math.Round(value / maxValue * float64(width)))
	n = max(1, min(n, width))
	return strings.Repeat("█", n)
}

// Truncate shortens s to maxLen runes, marking the cut with an ellipsis.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}

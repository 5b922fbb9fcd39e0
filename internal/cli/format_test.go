package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Format(t *testing.T) {
	money, err := NewMoney("INR", "en-IN")
	require.NoError(t, err)
	assert.Equal(t, "INR", money.Code())

	out := money.Format(1250.5)
	assert.Contains(t, out, "250")
	assert.False(t, strings.HasPrefix(out, "-"))

	neg := money.Format(-1500)
	assert.True(t, strings.HasPrefix(neg, "-"))
	assert.Equal(t, "-"+money.Format(1500), neg)

	assert.True(t, strings.HasPrefix(money.Signed(10), "+"))
	assert.Equal(t, money.Format(0), money.Signed(0))
}

func TestNewMoney_Errors(t *testing.T) {
	_, err := NewMoney("RUPEES", "en-IN")
	assert.Error(t, err)

	_, err = NewMoney("INR", "not a locale!")
	assert.Error(t, err)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "██████████", Bar(100, 100, 10))
	assert.Equal(t, "█████", Bar(50, 100, 10))
	assert.Equal(t, "█", Bar(0.1, 100, 10), "tiny values still show")
	assert.Equal(t, "██████████", Bar(500, 100, 10), "capped at width")
	assert.Empty(t, Bar(0, 100, 10))
	assert.Empty(t, Bar(10, 0, 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Food & D…", Truncate("Food & Dining", 9))
	assert.Equal(t, "₹…", Truncate("₹₹₹", 2))
}

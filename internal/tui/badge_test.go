package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAchievementDetector(t *testing.T) {
	var d AchievementDetector

	assert.True(t, d.Observe(true), "first achieved evaluation fires")
	assert.False(t, d.Observe(true), "staying achieved does not fire")
	assert.False(t, d.Observe(false))
	assert.True(t, d.Observe(true), "achieving again fires again")
}

func TestBadge_Lifecycle(t *testing.T) {
	var b Badge
	assert.False(t, b.Open())

	b, cmd := b.Show(5000)
	assert.NotNil(t, cmd)
	assert.True(t, b.Open())
	assert.False(t, b.Fading())
	assert.InDelta(t, 5000, b.Amount(), 1e-9)

	b, cmd = b.Update(badgeTickMsg{generation: b.generation, next: badgeFading})
	assert.NotNil(t, cmd)
	assert.True(t, b.Fading())

	b, cmd = b.Update(badgeTickMsg{generation: b.generation, next: badgeClosed})
	assert.Nil(t, cmd)
	assert.False(t, b.Open())
}

func TestBadge_StaleTicksIgnored(t *testing.T) {
	var b Badge
	b, _ = b.Show(5000)
	first := b.generation

	b, _ = b.Show(6000)
	b, cmd := b.Update(badgeTickMsg{generation: first, next: badgeFading})
	assert.Nil(t, cmd)
	assert.False(t, b.Fading(), "tick from an earlier show must not fade the new badge")

	b = b.Dismiss()
	assert.False(t, b.Open())

	b, cmd = b.Update(badgeTickMsg{generation: b.generation - 1, next: badgeFading})
	assert.Nil(t, cmd)
	assert.False(t, b.Open())
}

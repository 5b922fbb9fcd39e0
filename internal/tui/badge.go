package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Badge timings.
const (
	BadgeVisibleFor = 3 * time.Second
	BadgeFadeFor    = 300 * time.Millisecond
)

type badgePhase int

const (
	badgeClosed badgePhase = iota
	badgeVisible
	badgeFading
)

// badgeTickMsg advances the badge of one generation to its next phase.
type badgeTickMsg struct {
	generation int
	next       badgePhase
}

// AchievementDetector reports rising edges of the achieved flag.
type AchievementDetector struct {
	prev bool
}

// Observe records achieved and reports whether it just went false to true.
func (d *AchievementDetector) Observe(achieved bool) bool {
	fired := achieved && !d.prev
	d.prev = achieved
	return fired
}

// Badge is the transient achievement notification. Each Show starts a new
// generation; ticks from older generations are ignored, so dismissing or
// re-showing the badge cancels whatever timers were pending.
type Badge struct {
	amount     float64
	generation int
	phase      badgePhase
}

// Show opens the badge for amount and schedules its fade.
func (b Badge) Show(amount float64) (Badge, tea.Cmd) {
	b.generation++
	b.phase = badgeVisible
	b.amount = amount
	return b, b.tick(BadgeVisibleFor, badgeFading)
}

// Update advances the badge on its own ticks.
func (b Badge) Update(msg badgeTickMsg) (Badge, tea.Cmd) {
	if msg.generation != b.generation || b.phase == badgeClosed {
		return b, nil
	}

	switch msg.next {
	case badgeFading:
		b.phase = badgeFading
		return b, b.tick(BadgeFadeFor, badgeClosed)
	default:
		b.phase = badgeClosed
		return b, nil
	}
}

// Dismiss closes the badge immediately.
func (b Badge) Dismiss() Badge {
	b.generation++
	b.phase = badgeClosed
	return b
}

// Open reports whether the badge is showing, fading included.
func (b Badge) Open() bool { return b.phase != badgeClosed }

// Fading reports whether the badge is in its fade-out.
func (b Badge) Fading() bool { return b.phase == badgeFading }

// Amount is the goal amount the badge celebrates.
func (b Badge) Amount() float64 { return b.amount }

func (b Badge) tick(d time.Duration, next badgePhase) tea.Cmd {
	generation := b.generation
	return tea.Tick(d, func(time.Time) tea.Msg {
		return badgeTickMsg{generation: generation, next: next}
	})
}

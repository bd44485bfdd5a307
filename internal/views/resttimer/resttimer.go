// Package resttimer renders the between-sets countdown overlay. The bar
// position is eased with a spring so it tracks the countdown smoothly
// instead of stepping once a second.
package resttimer

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/notify"
	"github.com/ironlog/tui/internal/theme"
)

const (
	fps              = 20
	angularFrequency = 6.0
	dampingRatio     = 1.0
	barWidth         = 40
)

// TickMsg advances the countdown.
type TickMsg time.Time

// DoneMsg is sent when the countdown elapses.
type DoneMsg struct{}

// Model holds the rest timer state.
type Model struct {
	notifier notify.Notifier

	active bool
	total  time.Duration
	end    time.Time
	next   string

	spring harmonica.Spring
	pos    float64
	vel    float64

	Width int
}

// New creates an inactive rest timer.
func New(n notify.Notifier) Model {
	return Model{
		notifier: n,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), angularFrequency, dampingRatio),
	}
}

// Start begins a countdown of the given length. next names the upcoming
// exercise, shown under the bar; it may be empty.
func (m Model) Start(seconds int, next string) (Model, tea.Cmd) {
	m.active = true
	m.total = time.Duration(seconds) * time.Second
	m.end = time.Now().Add(m.total)
	m.next = next
	m.pos = 0
	m.vel = 0
	return m, tick()
}

// Skip cancels the countdown without notifying.
func (m Model) Skip() Model {
	m.active = false
	return m
}

// Active reports whether the overlay should be drawn.
func (m Model) Active() bool { return m.active }

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update advances the animation on each tick.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	t, ok := msg.(TickMsg)
	if !ok || !m.active {
		return m, nil
	}

	remaining := m.end.Sub(time.Time(t))
	if remaining <= 0 {
		m.active = false
		m.notifier.Notify("Time is up...")
		return m, func() tea.Msg { return DoneMsg{} }
	}

	target := 1 - float64(remaining)/float64(m.total)
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, target)
	return m, tick()
}

// View renders the countdown panel.
func (m Model) View() string {
	if !m.active {
		return ""
	}

	remaining := time.Until(m.end)
	if remaining < 0 {
		remaining = 0
	}
	secs := int(remaining.Round(time.Second) / time.Second)
	clock := fmt.Sprintf("%d:%02d", secs/60, secs%60)

	filled := int(m.pos * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := theme.StyleAccent.Render(strings.Repeat("█", filled)) +
		theme.StyleDimmed.Render(strings.Repeat("░", barWidth-filled))

	lines := []string{
		theme.StyleHeader.Render("REST"),
		"",
		bar,
		clock,
	}
	if m.next != "" {
		lines = append(lines, "", theme.StyleDimmed.Render("up next: "+m.next))
	}
	lines = append(lines, "", theme.StyleDimmed.Render("s:skip"))

	return theme.StyleBorder.Padding(1, 3).Render(
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

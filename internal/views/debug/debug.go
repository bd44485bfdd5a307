// Package debug provides a scrollable event log overlay: channel activity,
// navigation decisions and intent sends, for diagnosing the live session.
package debug

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/theme"
)

const maxEntries = 200

// Entry is one recorded event.
type Entry struct {
	Time    time.Time
	Kind    string // "ws", "nav", "sent", "err"
	Message string
}

// Model is the event log. Offset counts lines scrolled up from the newest
// entry, so zero always shows the live tail.
type Model struct {
	Entries []Entry
	Offset  int
}

// New creates an empty event log.
func New() Model {
	return Model{}
}

// Add records an event, trims the buffer to its cap and snaps the viewport
// back to the tail.
func (m *Model) Add(kind, message string) {
	m.Entries = append(m.Entries, Entry{Time: time.Now(), Kind: kind, Message: message})
	if n := len(m.Entries) - maxEntries; n > 0 {
		m.Entries = m.Entries[n:]
	}
	m.Offset = 0
}

// ScrollUp moves toward older entries.
func (m *Model) ScrollUp(n int) {
	m.Offset += n
	if top := len(m.Entries) - 1; m.Offset > top {
		m.Offset = top
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

// ScrollDown moves back toward the tail.
func (m *Model) ScrollDown(n int) {
	m.Offset -= n
	if m.Offset < 0 {
		m.Offset = 0
	}
}

// View renders the log panel at the given dimensions.
func (m Model) View(width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}
	rows := height - 6
	if rows < 3 {
		rows = 3
	}

	frame := lipgloss.NewStyle().
		Width(innerW).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder)

	title := theme.StyleHeader.Render(" EVENT LOG ")
	help := theme.StyleDimmed.Render(fmt.Sprintf("j/k:scroll  esc:close  %d entries", len(m.Entries)))

	if len(m.Entries) == 0 {
		placeholder := theme.StyleDimmed.Render("  No events recorded yet.")
		return frame.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", placeholder, "", help))
	}

	body := strings.Join(m.visible(rows, innerW), "\n")

	tail := ""
	if m.Offset > 0 {
		tail = theme.StyleDimmed.Render(fmt.Sprintf(" ↓ %d more", m.Offset))
	}

	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, title, body, tail, help))
}

// visible formats the window of entries ending Offset lines above the tail.
func (m Model) visible(rows, innerW int) []string {
	end := len(m.Entries) - m.Offset
	if end < 0 {
		end = 0
	}
	start := end - rows
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, end-start)
	for _, e := range m.Entries[start:end] {
		msg := e.Message
		if len(msg) > innerW-20 && innerW > 20 {
			msg = msg[:innerW-23] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			theme.StyleDimmed.Render(e.Time.Format("15:04:05.000")),
			lipgloss.NewStyle().Foreground(kindColor(e.Kind)).Width(5).Render(e.Kind),
			msg))
	}
	return lines
}

func kindColor(kind string) lipgloss.Color {
	switch kind {
	case "ws":
		return theme.ColorHealthy
	case "err":
		return theme.ColorDanger
	case "nav":
		return theme.ColorAccent
	case "sent":
		return theme.ColorWarning
	default:
		return theme.ColorDimmed
	}
}

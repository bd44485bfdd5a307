// Package status renders the one-line status bar: connection state, current
// route and live-session indicator.
package status

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/session"
	"github.com/ironlog/tui/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Connected bool
	Suspended bool
	Route     session.Route
	Session   session.Status
	Width     int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	switch {
	case m.Suspended:
		connStr = theme.StyleDimmed.Render("◌ Paused")
	case m.Connected:
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Connected")
	default:
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Connecting...")
	}

	routeStr := theme.StyleHeader.Render(m.Route.String())

	var sessionStr string
	if m.Session == session.StatusActive {
		sessionStr = theme.StyleAccent.Render("▶ workout in progress")
	}

	left := " IRONLOG  " + routeStr
	right := sessionStr + "  " + connStr + " "
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

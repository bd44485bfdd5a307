// Package history renders the list of completed workouts.
package history

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/theme"
)

// LoadedMsg carries one page of history from the API.
type LoadedMsg struct {
	Entries []client.HistoryEntry
	Page    int
	Err     error
}

// Model holds the history view state.
type Model struct {
	api *client.HTTPClient

	entries  []client.HistoryEntry
	page     int
	selected int
	err      error

	Width  int
	Height int
}

// New creates the history view.
func New(api *client.HTTPClient) Model {
	return Model{api: api, page: 1}
}

// Load fetches the current page.
func (m Model) Load() tea.Cmd {
	api := m.api
	page := m.page
	return func() tea.Msg {
		entries, err := api.GetHistory(page)
		return LoadedMsg{Entries: entries, Page: page, Err: err}
	}
}

// Update handles keys and load results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.entries = msg.Entries
			m.selected = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "j", "down":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
		case "n":
			m.page++
			return m, m.Load()
		case "p":
			if m.page > 1 {
				m.page--
				return m, m.Load()
			}
		}
	}
	return m, nil
}

// View renders the history list.
func (m Model) View() string {
	lines := []string{theme.StyleHeader.Render(fmt.Sprintf("  History  ·  page %d", m.page)), ""}

	if m.err != nil {
		lines = append(lines, theme.StyleDimmed.Render("  failed to load history: "+m.err.Error()))
	} else if len(m.entries) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("  No workouts yet."))
	}

	for i, e := range m.entries {
		prefix := "    "
		if i == m.selected {
			prefix = "  > "
		}
		label := e.Nickname
		if label == "" {
			label = fmt.Sprintf("Day %d", e.DayNumber)
		}
		dur := e.EndedAt.Sub(e.StartedAt).Round(time.Minute)
		line := fmt.Sprintf("%s%s  %s  %d exercises, %d sets  (%s)",
			prefix,
			e.StartedAt.Format("Jan 2"),
			theme.StyleSelected.Render(label),
			e.ExerciseCount,
			e.SetsCompleted,
			dur)
		lines = append(lines, line)
	}

	lines = append(lines, "", theme.StyleDimmed.Render("  j/k:move  n/p:page"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

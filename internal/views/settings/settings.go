// Package settings renders the user settings view.
package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/theme"
)

// LoadedMsg carries the fetched settings.
type LoadedMsg struct {
	Settings *client.Settings
	Err      error
}

// SavedMsg reports the result of a save.
type SavedMsg struct{ Err error }

// Model holds the settings view state.
type Model struct {
	api *client.HTTPClient

	settings *client.Settings
	dirty    bool
	err      error
}

// New creates the settings view.
func New(api *client.HTTPClient) Model {
	return Model{api: api}
}

// Load fetches settings from the API.
func (m Model) Load() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		s, err := api.GetSettings()
		return LoadedMsg{Settings: s, Err: err}
	}
}

// Update handles keys, load and save results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.settings = msg.Settings
			m.dirty = false
		}
		return m, nil

	case SavedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.dirty = false
		}
		return m, nil

	case tea.KeyMsg:
		if m.settings == nil {
			return m, nil
		}
		switch msg.String() {
		case "+", "=":
			m.settings.PoundsPerPlate += 5
			m.dirty = true
		case "-":
			if m.settings.PoundsPerPlate > 5 {
				m.settings.PoundsPerPlate -= 5
				m.dirty = true
			}
		case "s":
			if m.dirty {
				api := m.api
				s := *m.settings
				return m, func() tea.Msg {
					return SavedMsg{Err: api.SaveSettings(s)}
				}
			}
		}
	}
	return m, nil
}

// View renders the settings form.
func (m Model) View() string {
	if m.err != nil {
		return theme.StyleDimmed.Render("  failed to load settings: " + m.err.Error())
	}
	if m.settings == nil {
		return theme.StyleDimmed.Render("  Loading...")
	}

	title := "  Settings"
	if m.dirty {
		title += "  " + lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("(unsaved)")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		theme.StyleHeader.Render(title),
		"",
		fmt.Sprintf("    Pounds per plate: %s", theme.StyleSelected.Render(fmt.Sprintf("%d", m.settings.PoundsPerPlate))),
		"",
		theme.StyleDimmed.Render("  +/-:adjust  s:save"),
	)
}

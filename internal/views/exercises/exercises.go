// Package exercises renders the exercise library: a searchable, muscle-group
// filterable list of catalog entries.
package exercises

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/theme"
)

// LoadedMsg carries the catalog page fetched from the API.
type LoadedMsg struct {
	Exercises []client.Exercise
	Err       error
}

// OpenDetailMsg asks the app to open the detail view for an exercise.
type OpenDetailMsg struct{ Name string }

// Model holds the library view state.
type Model struct {
	api *client.HTTPClient

	input    textinput.Model
	filter   int // index into client.MuscleGroups, -1 for all
	items    []client.Exercise
	selected int
	err      error

	Width  int
	Height int
}

// New creates the library view.
func New(api *client.HTTPClient) Model {
	in := textinput.New()
	in.Placeholder = "search..."
	in.CharLimit = 40
	in.Width = 24
	return Model{api: api, filter: -1, input: in}
}

// Load fetches the catalog with the current search and filter applied.
func (m Model) Load() tea.Cmd {
	search := m.input.Value()
	var group client.MuscleGroup
	if m.filter >= 0 {
		group = client.MuscleGroups[m.filter]
	}
	api := m.api
	return func() tea.Msg {
		items, err := api.GetExercises(search, group)
		return LoadedMsg{Exercises: items, Err: err}
	}
}

// Update handles keys and load results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.items = msg.Exercises
			if m.selected >= len(m.items) {
				m.selected = 0
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "esc":
				m.input.Blur()
				return m, nil
			case "enter":
				m.input.Blur()
				return m, m.Load()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.input.Focus()
			return m, textinput.Blink
		case "m":
			m.filter++
			if m.filter >= len(client.MuscleGroups) {
				m.filter = -1
			}
			return m, m.Load()
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "j", "down":
			if m.selected < len(m.items)-1 {
				m.selected++
			}
		case "enter":
			if m.selected < len(m.items) {
				name := m.items[m.selected].Name
				return m, func() tea.Msg { return OpenDetailMsg{Name: name} }
			}
		}
	}
	return m, nil
}

// View renders the filter row and the list.
func (m Model) View() string {
	filterLabel := "all"
	if m.filter >= 0 {
		filterLabel = string(client.MuscleGroups[m.filter])
	}

	header := fmt.Sprintf("  %s   muscle: %s",
		m.input.View(),
		theme.StyleAccent.Render(filterLabel))

	lines := []string{header, ""}

	if m.err != nil {
		lines = append(lines, theme.StyleDimmed.Render("  failed to load exercises: "+m.err.Error()))
	} else if len(m.items) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("  No exercises found."))
	}

	for i, ex := range m.items {
		prefix := "    "
		name := ex.Name
		if i == m.selected {
			prefix = "  > "
			name = theme.StyleSelected.Render(name)
		}
		tags := " " + theme.MuscleGroupTag(string(ex.PrimaryMuscleGroup))
		for _, g := range ex.SecondaryMuscleGroups {
			tags += " " + theme.MuscleGroupTag(string(g))
		}
		lines = append(lines, prefix+name+tags)
	}

	lines = append(lines, "", theme.StyleDimmed.Render("  /:search  m:muscle filter  enter:detail"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Capturing reports whether the search box has focus.
func (m Model) Capturing() bool {
	return m.input.Focused()
}

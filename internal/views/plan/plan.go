// Package plan renders the weekly workout schedule and supports light
// editing: removing an exercise from a day and saving the result back.
package plan

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/theme"
)

// LoadedMsg carries the fetched schedule.
type LoadedMsg struct {
	Schedule *client.Schedule
	Err      error
}

// SavedMsg reports the result of a save.
type SavedMsg struct{ Err error }

// Model holds the plan view state.
type Model struct {
	api *client.HTTPClient

	schedule *client.Schedule
	catalog  []client.Exercise
	day      int
	slot     int
	dirty    bool
	err      error

	Width  int
	Height int
}

// New creates the plan view.
func New(api *client.HTTPClient) Model {
	return Model{api: api}
}

// SetCatalog supplies exercise names for display.
func (m *Model) SetCatalog(catalog []client.Exercise) {
	m.catalog = catalog
}

// Load fetches the schedule.
func (m Model) Load() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		s, err := api.GetSchedule()
		return LoadedMsg{Schedule: s, Err: err}
	}
}

// Schedule returns a copy of the view's current schedule, or nil before the
// first load.
func (m Model) Schedule() *client.Schedule {
	return cloneSchedule(m.schedule)
}

func cloneSchedule(s *client.Schedule) *client.Schedule {
	if s == nil {
		return nil
	}
	out := &client.Schedule{Days: make([]client.ScheduleDay, len(s.Days))}
	for i, d := range s.Days {
		out.Days[i] = client.ScheduleDay{
			Nickname:    d.Nickname,
			ExerciseIDs: append([]string(nil), d.ExerciseIDs...),
		}
	}
	return out
}

func (m Model) save() tea.Cmd {
	api := m.api
	s := *m.schedule
	return func() tea.Msg {
		return SavedMsg{Err: api.SaveSchedule(s)}
	}
}

// Update handles keys, load and save results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			// Own copy: unsaved edits must not leak into other views
			// holding the loaded schedule.
			m.schedule = cloneSchedule(msg.Schedule)
			m.day, m.slot = 0, 0
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
		if m.schedule == nil || len(m.schedule.Days) == 0 {
			return m, nil
		}
		day := &m.schedule.Days[m.day]
		switch msg.String() {
		case "h", "left":
			if m.day > 0 {
				m.day--
				m.slot = 0
			}
		case "l", "right":
			if m.day < len(m.schedule.Days)-1 {
				m.day++
				m.slot = 0
			}
		case "k", "up":
			if m.slot > 0 {
				m.slot--
			}
		case "j", "down":
			if m.slot < len(day.ExerciseIDs)-1 {
				m.slot++
			}
		case "x":
			if m.slot < len(day.ExerciseIDs) {
				day.ExerciseIDs = append(day.ExerciseIDs[:m.slot], day.ExerciseIDs[m.slot+1:]...)
				if m.slot >= len(day.ExerciseIDs) && m.slot > 0 {
					m.slot--
				}
				m.dirty = true
			}
		case "s":
			if m.dirty {
				return m, m.save()
			}
		}
	}
	return m, nil
}

// View renders the selected day with its exercises.
func (m Model) View() string {
	if m.err != nil {
		return theme.StyleDimmed.Render("  failed to load plan: " + m.err.Error())
	}
	if m.schedule == nil {
		return theme.StyleDimmed.Render("  Loading...")
	}
	if len(m.schedule.Days) == 0 {
		return theme.StyleDimmed.Render("  No plan configured.")
	}

	day := m.schedule.Days[m.day]
	title := fmt.Sprintf("  Day %d / %d", m.day+1, len(m.schedule.Days))
	if day.Nickname != "" {
		title += "  ·  " + day.Nickname
	}
	if m.dirty {
		title += "  " + lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("(unsaved)")
	}

	lines := []string{theme.StyleHeader.Render(title), ""}
	for i, id := range day.ExerciseIDs {
		prefix := "    "
		if i == m.slot {
			prefix = "  > "
		}
		name := id
		tag := ""
		if ex := client.FindExercise(m.catalog, id); ex != nil {
			name = ex.Name
			tag = " " + theme.MuscleGroupTag(string(ex.PrimaryMuscleGroup))
		}
		lines = append(lines, prefix+name+tag)
	}
	if len(day.ExerciseIDs) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("    rest day"))
	}

	lines = append(lines, "", theme.StyleDimmed.Render("  h/l:day  j/k:exercise  x:remove  s:save"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Package home renders the landing view: today's plan day and a summary of
// recent training.
package home

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/theme"
)

// Model holds the home view state. Data is pushed in by the app once the
// schedule and history loads complete.
type Model struct {
	Width  int
	Height int

	schedule *client.Schedule
	recent   []client.HistoryEntry
	catalog  []client.Exercise
}

// New creates the home view.
func New() Model {
	return Model{}
}

// SetSchedule stores the weekly plan.
func (m *Model) SetSchedule(s *client.Schedule) { m.schedule = s }

// SetHistory stores recent completed workouts; the next plan day is derived
// from the most recent one.
func (m *Model) SetHistory(entries []client.HistoryEntry) { m.recent = entries }

// SetCatalog supplies exercise names for the today list.
func (m *Model) SetCatalog(catalog []client.Exercise) { m.catalog = catalog }

// nextDay returns the upcoming plan day index, cycling past the last day.
func (m Model) nextDay() int {
	if m.schedule == nil || len(m.schedule.Days) == 0 {
		return -1
	}
	if len(m.recent) == 0 {
		return 0
	}
	return (m.recent[0].DayNumber + 1) % len(m.schedule.Days)
}

// View renders the landing screen.
func (m Model) View() string {
	lines := []string{
		theme.StyleHeader.Render("  Welcome back."),
		"",
	}

	if day := m.nextDay(); day >= 0 {
		d := m.schedule.Days[day]
		label := d.Nickname
		if label == "" {
			label = fmt.Sprintf("Day %d", day+1)
		}
		lines = append(lines, "  Up next: "+theme.StyleAccent.Render(label))
		for _, id := range d.ExerciseIDs {
			name := id
			if ex := client.FindExercise(m.catalog, id); ex != nil {
				name = ex.Name
			}
			lines = append(lines, theme.StyleDimmed.Render("    · "+name))
		}
		if len(d.ExerciseIDs) == 0 {
			lines = append(lines, theme.StyleDimmed.Render("    rest day"))
		}
	} else {
		lines = append(lines, theme.StyleDimmed.Render("  No plan configured. Set one up in the Plan view."))
	}

	lines = append(lines, "", m.renderStatsRow(), "")
	lines = append(lines, "  Press "+theme.StyleSelected.Render("S")+" to start a workout.")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStatsRow shows aggregate counts for the loaded history page.
func (m Model) renderStatsRow() string {
	if len(m.recent) == 0 {
		return theme.StyleDimmed.Render("  No workouts recorded yet.")
	}
	var sets int
	for _, e := range m.recent {
		sets += e.SetsCompleted
	}
	return theme.StyleDimmed.Render(fmt.Sprintf(
		"  Recent: %d workouts, %d sets  ·  last on %s",
		len(m.recent), sets, m.recent[0].StartedAt.Format("Jan 2")))
}

// Package detail renders a single catalog exercise: personal-record
// metadata plus its instructions rendered as markdown.
package detail

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/theme"
)

const (
	panelWidth = 64
	labelWidth = 16
)

var (
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1)

	styleLabel = lipgloss.NewStyle().
			Foreground(theme.ColorDimmed).
			Width(labelWidth)

	styleValue = lipgloss.NewStyle().
			Foreground(theme.ColorBright)

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorBright)
)

// LoadedMsg carries the fetched exercise.
type LoadedMsg struct {
	Exercise *client.ExerciseExtended
	Err      error
}

// Model holds the detail view state.
type Model struct {
	api *client.HTTPClient

	exercise     *client.ExerciseExtended
	instructions string
	err          error
}

// New creates an empty detail view.
func New(api *client.HTTPClient) Model {
	return Model{api: api}
}

// Load fetches the named exercise.
func (m Model) Load(name string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ex, err := api.GetExercise(name)
		return LoadedMsg{Exercise: ex, Err: err}
	}
}

// Update stores the load result and pre-renders the instructions.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	loaded, ok := msg.(LoadedMsg)
	if !ok {
		return m, nil
	}
	m.err = loaded.Err
	m.exercise = loaded.Exercise
	m.instructions = ""
	if m.exercise != nil && m.exercise.Instructions != "" {
		if out, err := glamour.Render(m.exercise.Instructions, "dark"); err == nil {
			m.instructions = strings.TrimRight(out, "\n")
		}
	}
	return m, nil
}

// View renders the detail panel.
func (m Model) View() string {
	if m.err != nil {
		return theme.StyleDimmed.Render("  failed to load exercise: " + m.err.Error())
	}
	if m.exercise == nil {
		return theme.StyleDimmed.Render("  Loading...")
	}
	ex := m.exercise

	var b strings.Builder
	b.WriteString(styleTitle.Render(ex.Name) + "\n")
	b.WriteString(strings.Repeat("─", panelWidth-4) + "\n")

	tags := theme.MuscleGroupTag(string(ex.PrimaryMuscleGroup))
	for _, g := range ex.SecondaryMuscleGroups {
		tags += " " + theme.MuscleGroupTag(string(g))
	}
	writeRow(&b, "Muscles", tags)
	writeRow(&b, "Type", string(ex.ExerciseType))
	writeRow(&b, "Sets", strconv.Itoa(ex.SetCount))
	writeRow(&b, "Break", strconv.Itoa(ex.BreakTimeInSeconds)+"s")

	if ex.BestSet != nil {
		writeRow(&b, "PR", client.FormatSet(ex.ExerciseType, *ex.BestSet)+dateSuffix(ex.BestSetDate))
	} else {
		writeRow(&b, "PR", theme.StyleDimmed.Render("None"))
	}
	if ex.LastPerformed != nil {
		writeRow(&b, "Last Performed", ex.LastPerformed.Format("Jan 2, 2006"))
	} else {
		writeRow(&b, "Last Performed", theme.StyleDimmed.Render("Never"))
	}

	if m.instructions != "" {
		b.WriteString("\n" + m.instructions + "\n")
	}

	return stylePanel.Width(panelWidth).Render(b.String())
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(styleLabel.Render(label) + styleValue.Render(value) + "\n")
}

func dateSuffix(t *time.Time) string {
	if t == nil {
		return ""
	}
	return " (" + t.Format("Jan 2, 2006") + ")"
}

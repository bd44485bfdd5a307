// Package workout renders the live session view: one exercise in focus, its
// sets, and the actions that mutate the session. Every edit is sent as an
// intent over the channel; the view renders only what the server has echoed
// back, so a keypress is not visible until the next snapshot arrives.
package workout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/session"
	"github.com/ironlog/tui/internal/theme"
)

// RestRequestedMsg asks the app to show the rest timer overlay.
type RestRequestedMsg struct {
	Seconds      int
	NextExercise string
}

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modePick
	modeConfirmEnd
)

type pickPurpose int

const (
	pickReplace pickPurpose = iota
	pickAdd
)

// Model holds the live workout view state.
type Model struct {
	svc          *session.Service
	catalog      []client.Exercise
	defaultBreak int

	focused     int // exercise index
	selectedSet int

	mode      mode
	editField client.SetField
	input     textinput.Model
	purpose   pickPurpose
	pickIdx   int

	Width  int
	Height int
}

// New creates the workout view bound to the session service.
func New(svc *session.Service, defaultBreakSeconds int) Model {
	in := textinput.New()
	in.CharLimit = 5
	in.Width = 6
	return Model{svc: svc, defaultBreak: defaultBreakSeconds, input: in}
}

// SetCatalog supplies the exercise library used for names, set formatting
// and the add/replace picker.
func (m *Model) SetCatalog(catalog []client.Exercise) {
	m.catalog = catalog
}

// Reset moves focus back to the first exercise, for a freshly started session.
func (m *Model) Reset() {
	m.focused = 0
	m.selectedSet = 0
	m.mode = modeBrowse
}

// Update handles key input. All other messages pass through untouched.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	w := m.svc.Workout()
	if w == nil {
		return m, nil
	}
	m.clamp(w)

	switch m.mode {
	case modeEdit:
		return m.updateEdit(key, w)
	case modePick:
		return m.updatePick(key, w)
	case modeConfirmEnd:
		return m.updateConfirm(key)
	default:
		return m.updateBrowse(key, w)
	}
}

func (m Model) updateBrowse(key tea.KeyMsg, w *client.Workout) (Model, tea.Cmd) {
	// A session can legally hold zero exercises (every slot deleted, or a
	// rest-day start); only adding and ending make sense then.
	if len(w.Exercises) == 0 {
		switch key.String() {
		case "a":
			m.mode = modePick
			m.purpose = pickAdd
			m.pickIdx = 0
		case "e", "esc":
			m.mode = modeConfirmEnd
		}
		return m, nil
	}

	ex := w.Exercises[m.focused]
	data := client.FindExercise(m.catalog, ex.ExerciseID)

	switch key.String() {
	case "h", "left":
		if m.focused > 0 {
			m.focused--
			m.selectedSet = 0
		}
	case "l", "right":
		if m.focused < len(w.Exercises)-1 {
			m.focused++
			m.selectedSet = 0
		}
	case "k", "up":
		if m.selectedSet > 0 {
			m.selectedSet--
		}
	case "j", "down":
		if m.selectedSet < len(ex.Sets)-1 {
			m.selectedSet++
		}
	case " ", "enter":
		if m.selectedSet >= len(ex.Sets) {
			return m, nil
		}
		completing := !ex.Sets[m.selectedSet].Complete
		m.svc.PersistSetComplete(m.focused, m.selectedSet, completing)
		if completing {
			return m, m.restCmd(w, data)
		}
	case "r":
		return m.beginEdit(client.FieldRepetitions, ex), nil
	case "w":
		return m.beginEdit(client.FieldResistance, ex), nil
	case "t":
		return m.beginEdit(client.FieldTime, ex), nil
	case "a":
		m.mode = modePick
		m.purpose = pickAdd
		m.pickIdx = 0
	case "p":
		m.mode = modePick
		m.purpose = pickReplace
		m.pickIdx = 0
	case "x":
		if len(w.Exercises) > 1 {
			m.svc.DeleteExercise(m.focused)
			if m.focused >= len(w.Exercises)-1 {
				m.focused = len(w.Exercises) - 2
			}
			m.selectedSet = 0
		}
	case "e", "esc":
		m.mode = modeConfirmEnd
	}
	return m, nil
}

func (m Model) beginEdit(field client.SetField, ex client.WorkoutExercise) Model {
	if m.selectedSet >= len(ex.Sets) {
		return m
	}
	data := client.FindExercise(m.catalog, ex.ExerciseID)
	if data != nil && !fieldAllowed(data.ExerciseType, field) {
		return m
	}
	m.mode = modeEdit
	m.editField = field
	m.input.SetValue(currentFieldValue(ex.Sets[m.selectedSet], field))
	m.input.Focus()
	return m
}

func fieldAllowed(t client.ExerciseType, field client.SetField) bool {
	for _, f := range client.SetFields(t) {
		if f == field {
			return true
		}
	}
	return false
}

func currentFieldValue(s client.WorkoutSet, field client.SetField) string {
	var v *int
	switch field {
	case client.FieldRepetitions:
		v = s.Repetitions
	case client.FieldResistance:
		v = s.ResistanceInPounds
	case client.FieldTime:
		v = s.TimeInSeconds
	}
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func (m Model) updateEdit(key tea.KeyMsg, w *client.Workout) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		m.mode = modeBrowse
		m.input.Blur()
		m.commitEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// commitEdit parses the input and persists the field. An empty input clears
// the field (sends null), which the server treats differently from zero.
func (m *Model) commitEdit() {
	var value *int
	text := strings.TrimSpace(m.input.Value())
	if text != "" {
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			return
		}
		value = &n
	}
	switch m.editField {
	case client.FieldRepetitions:
		m.svc.PersistSetRepetitions(m.focused, m.selectedSet, value)
	case client.FieldResistance:
		m.svc.PersistSetResistance(m.focused, m.selectedSet, value)
	case client.FieldTime:
		// Elapsed time is recorded by the server-side timer; no intent exists
		// for editing it directly, so the edit is dropped.
	}
}

func (m Model) updatePick(key tea.KeyMsg, w *client.Workout) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = modeBrowse
	case "k", "up":
		if m.pickIdx > 0 {
			m.pickIdx--
		}
	case "j", "down":
		if m.pickIdx < len(m.catalog)-1 {
			m.pickIdx++
		}
	case "enter":
		if m.pickIdx < len(m.catalog) {
			id := m.catalog[m.pickIdx].ID
			if m.purpose == pickReplace {
				m.svc.ReplaceExercise(m.focused, id)
			} else {
				idx := m.focused + 1
				if len(w.Exercises) == 0 {
					idx = 0
				}
				m.svc.AddExercise(id, idx)
			}
		}
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) updateConfirm(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "e":
		m.svc.EndWorkout()
		m.mode = modeBrowse
	case "d":
		m.svc.DiscardWorkout()
		m.mode = modeBrowse
	case "esc", "c":
		m.mode = modeBrowse
	}
	return m, nil
}

// restCmd emits the rest timer request after a completed set.
func (m Model) restCmd(w *client.Workout, data *client.Exercise) tea.Cmd {
	seconds := m.defaultBreak
	if data != nil && data.BreakTimeInSeconds > 0 {
		seconds = data.BreakTimeInSeconds
	}
	next := ""
	if m.focused+1 < len(w.Exercises) {
		if nd := client.FindExercise(m.catalog, w.Exercises[m.focused+1].ExerciseID); nd != nil {
			next = nd.Name
		}
	}
	return func() tea.Msg {
		return RestRequestedMsg{Seconds: seconds, NextExercise: next}
	}
}

func (m *Model) clamp(w *client.Workout) {
	if len(w.Exercises) == 0 {
		m.focused = 0
		m.selectedSet = 0
		return
	}
	if m.focused >= len(w.Exercises) {
		m.focused = len(w.Exercises) - 1
	}
	if n := len(w.Exercises[m.focused].Sets); m.selectedSet >= n {
		if n == 0 {
			m.selectedSet = 0
		} else {
			m.selectedSet = n - 1
		}
	}
}

// View renders the focused exercise and its sets.
func (m Model) View() string {
	w := m.svc.Workout()
	if w == nil {
		return theme.StyleDimmed.Render("  Waiting for session...")
	}
	mm := m
	mm.clamp(w)
	m = mm

	switch m.mode {
	case modePick:
		return m.viewPicker()
	case modeConfirmEnd:
		return m.viewConfirm()
	}

	if len(w.Exercises) == 0 {
		return theme.StyleDimmed.Render("  No exercises in this workout. Press a to add one.")
	}

	ex := w.Exercises[m.focused]
	data := client.FindExercise(m.catalog, ex.ExerciseID)

	var lines []string
	lines = append(lines, m.viewHeader(w))
	lines = append(lines, "")
	lines = append(lines, m.viewExerciseTitle(ex, data))
	lines = append(lines, "")
	lines = append(lines, m.viewSets(ex, data)...)
	lines = append(lines, "")
	lines = append(lines, m.viewPaginator(w))
	lines = append(lines, theme.StyleDimmed.Render("  space:complete  r:reps  w:weight  h/l:exercise  a:add  p:replace  x:delete  e:end"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewHeader(w *client.Workout) string {
	label := fmt.Sprintf("  Exercise %d / %d", m.focused+1, len(w.Exercises))
	if w.Nickname != "" {
		label += "  ·  " + w.Nickname
	}
	return theme.StyleHeader.Render(label)
}

func (m Model) viewExerciseTitle(ex client.WorkoutExercise, data *client.Exercise) string {
	name := ex.ExerciseID
	tag := ""
	if data != nil {
		name = data.Name
		tag = "  " + theme.MuscleGroupTag(string(data.PrimaryMuscleGroup))
		for _, g := range data.SecondaryMuscleGroups {
			tag += " " + theme.MuscleGroupTag(string(g))
		}
	}
	return "  " + theme.StyleSelected.Render(name) + tag
}

func (m Model) viewSets(ex client.WorkoutExercise, data *client.Exercise) []string {
	exType := client.ExerciseWeighted
	if data != nil {
		exType = data.ExerciseType
	}
	lines := make([]string, 0, len(ex.Sets))
	for i, s := range ex.Sets {
		prefix := "    "
		if i == m.selectedSet {
			prefix = "  > "
		}
		line := prefix + theme.SetGlyph(s.Complete) + " " + client.FormatSet(exType, s)
		if i == m.selectedSet && m.mode == modeEdit {
			line += "  " + string(m.editField) + ": " + m.input.View()
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("    no sets"))
	}
	return lines
}

func (m Model) viewPaginator(w *client.Workout) string {
	var b strings.Builder
	b.WriteString("  ")
	for i, ex := range w.Exercises {
		glyph := Classify(ex).Glyph()
		if i == m.focused {
			b.WriteString(theme.StyleSelected.Render(glyph))
		} else {
			b.WriteString(theme.StyleDimmed.Render(glyph))
		}
		b.WriteString(" ")
	}
	return b.String()
}

func (m Model) viewPicker() string {
	title := "Replace with:"
	if m.purpose == pickAdd {
		title = "Add exercise:"
	}
	lines := []string{theme.StyleHeader.Render("  " + title), ""}
	for i, ex := range m.catalog {
		prefix := "    "
		if i == m.pickIdx {
			prefix = "  > "
		}
		lines = append(lines, prefix+ex.Name+" "+theme.MuscleGroupTag(string(ex.PrimaryMuscleGroup)))
	}
	lines = append(lines, "", theme.StyleDimmed.Render("  j/k:move  enter:choose  esc:cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewConfirm() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		theme.StyleHeader.Render("  Finish this workout?"),
		"",
		"    e  save it to history",
		"    d  discard it",
		"    c  keep going",
	)
}

// Capturing reports whether the view is consuming raw key input, so the app
// suppresses global bindings while editing, picking or confirming.
func (m Model) Capturing() bool {
	return m.mode != modeBrowse
}

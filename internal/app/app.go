// Package app owns the root Bubble Tea model: route switching driven by the
// session's navigation reactor, channel lifecycle, and dispatch into the
// per-route views.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/notify"
	"github.com/ironlog/tui/internal/session"
	"github.com/ironlog/tui/internal/theme"
	"github.com/ironlog/tui/internal/views/debug"
	"github.com/ironlog/tui/internal/views/detail"
	"github.com/ironlog/tui/internal/views/exercises"
	"github.com/ironlog/tui/internal/views/history"
	"github.com/ironlog/tui/internal/views/home"
	"github.com/ironlog/tui/internal/views/plan"
	"github.com/ironlog/tui/internal/views/resttimer"
	"github.com/ironlog/tui/internal/views/settings"
	"github.com/ironlog/tui/internal/views/status"
	"github.com/ironlog/tui/internal/views/workout"
)

// catalogMsg delivers the full exercise catalog fetched at startup. The
// workout picker, plan and home views all need it.
type catalogMsg struct {
	exercises []client.Exercise
	err       error
}

// Model is the root Bubble Tea model.
type Model struct {
	channel *client.Channel
	svc     *session.Service
	api     *client.HTTPClient
	ctx     context.Context
	cancel  context.CancelFunc

	keys   KeyMap
	width  int
	height int

	route     session.Route
	debugOpen bool

	// Sub-views.
	statusBar status.Model
	home      home.Model
	workout   workout.Model
	exercises exercises.Model
	detail    detail.Model
	history   history.Model
	plan      plan.Model
	settings  settings.Model
	eventLog  debug.Model
	rest      resttimer.Model

	catalog []client.Exercise

	connected bool
	suspended bool
}

// New creates the root model. The channel and API client are constructed in
// main and injected; the session service is built here around the channel.
func New(ch *client.Channel, api *client.HTTPClient, notifier notify.Notifier, defaultBreakSeconds int) Model {
	ctx, cancel := context.WithCancel(context.Background())
	svc := session.New(ch, notifier.RequestPermission)
	return Model{
		channel:   ch,
		svc:       svc,
		api:       api,
		ctx:       ctx,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		route:     session.RouteHome,
		statusBar: status.New(),
		home:      home.New(),
		workout:   workout.New(svc, defaultBreakSeconds),
		exercises: exercises.New(api),
		detail:    detail.New(api),
		history:   history.New(api),
		plan:      plan.New(api),
		settings:  settings.New(api),
		eventLog:  debug.New(),
		rest:      resttimer.New(notifier),
	}
}

// Service exposes the session facade, for tests.
func (m Model) Service() *session.Service { return m.svc }

// Route returns the active route, for tests.
func (m Model) Route() session.Route { return m.route }

// Init starts the channel and the initial REST loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.channel.Listen(m.ctx),
		m.loadCatalog(),
		m.history.Load(),
		m.plan.Load(),
	)
}

func (m Model) loadCatalog() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		items, err := api.GetExercises("", "")
		return catalogMsg{exercises: items, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.home.Width = msg.Width
		m.workout.Width = msg.Width
		m.exercises.Width = msg.Width
		m.history.Width = msg.Width
		m.plan.Width = msg.Width
		return m, nil

	case tea.FocusMsg:
		m.suspended = false
		m.statusBar.Suspended = false
		m.channel.Resume()
		if !m.connected {
			return m, m.channel.Listen(m.ctx)
		}
		return m, nil

	case tea.BlurMsg:
		m.suspended = true
		m.connected = false
		m.statusBar.Suspended = true
		m.statusBar.Connected = false
		m.channel.Suspend()
		m.eventLog.Add("ws", "suspended (terminal unfocused)")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case client.ConnectedMsg:
		if m.suspended {
			// A dial in flight when the terminal blurred can still land;
			// close it instead of reading while unfocused.
			m.channel.Suspend()
			return m, nil
		}
		m.connected = true
		m.statusBar.Connected = true
		m.eventLog.Add("ws", "connected")
		return m, m.channel.ReadLoop(m.ctx)

	case client.DisconnectedMsg:
		m.connected = false
		m.statusBar.Connected = false
		if m.channel.Suspended() {
			return m, nil
		}
		m.eventLog.Add("ws", "disconnected, reconnecting")
		return m, m.channel.Listen(m.ctx)

	case client.FrameMsg:
		return m.handleFrame(msg)

	case catalogMsg:
		if msg.err != nil {
			m.eventLog.Add("err", "catalog load: "+msg.err.Error())
			log.Warn().Err(msg.err).Msg("catalog load failed")
			return m, nil
		}
		m.catalog = msg.exercises
		m.workout.SetCatalog(m.catalog)
		m.plan.SetCatalog(m.catalog)
		m.home.SetCatalog(m.catalog)
		var cmd tea.Cmd
		m.exercises, cmd = m.exercises.Update(exercises.LoadedMsg{Exercises: msg.exercises})
		return m, cmd

	case exercises.OpenDetailMsg:
		m.route = session.RouteExerciseDetail
		return m, m.detail.Load(msg.Name)

	case exercises.LoadedMsg:
		var cmd tea.Cmd
		m.exercises, cmd = m.exercises.Update(msg)
		return m, cmd

	case detail.LoadedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case history.LoadedMsg:
		if msg.Err == nil && msg.Page == 1 {
			m.home.SetHistory(msg.Entries)
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd

	case plan.LoadedMsg:
		if msg.Err == nil {
			m.home.SetSchedule(msg.Schedule)
		}
		var cmd tea.Cmd
		m.plan, cmd = m.plan.Update(msg)
		return m, cmd

	case plan.SavedMsg:
		var cmd tea.Cmd
		m.plan, cmd = m.plan.Update(msg)
		if msg.Err == nil {
			m.home.SetSchedule(m.plan.Schedule())
		}
		return m, cmd

	case settings.LoadedMsg, settings.SavedMsg:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	case workout.RestRequestedMsg:
		m.eventLog.Add("sent", "rest timer started")
		var cmd tea.Cmd
		m.rest, cmd = m.rest.Start(msg.Seconds, msg.NextExercise)
		return m, cmd

	case resttimer.TickMsg:
		var cmd tea.Cmd
		m.rest, cmd = m.rest.Update(msg)
		return m, cmd

	case resttimer.DoneMsg:
		m.eventLog.Add("sent", "rest timer elapsed")
		return m, nil
	}

	return m, nil
}

// handleFrame applies one inbound frame to the session and reacts to the
// resulting presence change.
func (m Model) handleFrame(msg client.FrameMsg) (tea.Model, tea.Cmd) {
	changed, err := m.svc.Apply(msg.Data)
	if err != nil {
		m.eventLog.Add("err", "decode: "+err.Error())
		log.Error().Err(err).Msg("frame decode failed")
		return m, m.channel.ReadLoop(m.ctx)
	}
	m.statusBar.Session = m.svc.Status()
	if changed {
		m.navigate()
	}
	return m, m.channel.ReadLoop(m.ctx)
}

// navigate runs the reactor once against the current (presence, route) pair.
func (m *Model) navigate() {
	target, redirect := m.svc.Evaluate(m.route)
	if !redirect {
		return
	}
	m.eventLog.Add("nav", m.route.String()+" → "+target.String())
	if target == session.RouteWorkout && m.route != session.RouteWorkout {
		m.workout.Reset()
		m.rest = m.rest.Skip()
	}
	m.route = target
	m.statusBar.Route = target
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.cancel()
		return m, tea.Quit
	}

	if m.debugOpen {
		switch msg.String() {
		case "esc":
			m.debugOpen = false
		case "k", "up":
			m.eventLog.ScrollUp(1)
		case "j", "down":
			m.eventLog.ScrollDown(1)
		}
		return m, nil
	}

	if m.rest.Active() {
		if msg.String() == "s" || msg.String() == "esc" {
			m.rest = m.rest.Skip()
		}
		return m, nil
	}

	if !m.capturing() {
		switch {
		case key.Matches(msg, m.keys.Debug):
			m.debugOpen = true
			return m, nil
		case key.Matches(msg, m.keys.Start):
			if m.svc.Status() != session.StatusActive {
				if err := m.svc.StartWorkout(); err != nil {
					m.eventLog.Add("err", "start: "+err.Error())
				} else {
					m.eventLog.Add("sent", "START")
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Home):
			return m.switchRoute(session.RouteHome, nil)
		case key.Matches(msg, m.keys.Exercises):
			return m.switchRoute(session.RouteExercises, m.exercises.Load())
		case key.Matches(msg, m.keys.History):
			return m.switchRoute(session.RouteHistory, m.history.Load())
		case key.Matches(msg, m.keys.Plan):
			return m.switchRoute(session.RoutePlan, m.plan.Load())
		case key.Matches(msg, m.keys.Settings):
			return m.switchRoute(session.RouteSettings, m.settings.Load())
		}
	}

	return m.updateRouteView(msg)
}

// switchRoute is a user-initiated navigation; the reactor still gets the
// last word, so route changes during a live session bounce back to the
// workout view.
func (m Model) switchRoute(target session.Route, load tea.Cmd) (tea.Model, tea.Cmd) {
	m.route = target
	m.statusBar.Route = target
	m.navigate()
	if m.route != target {
		// Reactor overrode the switch; skip the view's load.
		return m, nil
	}
	return m, load
}

func (m Model) capturing() bool {
	switch m.route {
	case session.RouteWorkout:
		return m.workout.Capturing()
	case session.RouteExercises:
		return m.exercises.Capturing()
	default:
		return false
	}
}

func (m Model) updateRouteView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case session.RouteWorkout:
		m.workout, cmd = m.workout.Update(msg)
	case session.RouteExercises:
		m.exercises, cmd = m.exercises.Update(msg)
	case session.RouteExerciseDetail:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.route = session.RouteExercises
			m.statusBar.Route = m.route
			return m, nil
		}
	case session.RouteHistory:
		m.history, cmd = m.history.Update(msg)
	case session.RoutePlan:
		m.plan, cmd = m.plan.Update(msg)
	case session.RouteSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

// View renders the status bar, the active route and any overlay.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.debugOpen {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.statusBar.View(),
			m.eventLog.View(m.width, m.height-1))
	}

	if m.rest.Active() {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.statusBar.View(),
			lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, m.rest.View()))
	}

	var body string
	switch m.route {
	case session.RouteWorkout:
		body = m.workout.View()
	case session.RouteExercises:
		body = m.exercises.View()
	case session.RouteExerciseDetail:
		body = m.detail.View()
	case session.RouteHistory:
		body = m.history.View()
	case session.RoutePlan:
		body = m.plan.View()
	case session.RouteSettings:
		body = m.settings.View()
	default:
		body = m.home.View()
	}

	footer := theme.StyleDimmed.Render("  1:home  2:exercises  3:history  4:plan  5:settings  S:start  D:log  ctrl+c:quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		m.statusBar.View(),
		body,
		footer)
}

package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keyboard bindings. View-local keys live in the
// view packages.
type KeyMap struct {
	Quit      key.Binding
	Home      key.Binding
	Exercises key.Binding
	History   key.Binding
	Plan      key.Binding
	Settings  key.Binding
	Start     key.Binding
	Debug     key.Binding
	Escape    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Exercises: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "exercises"),
		),
		History: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "history"),
		),
		Plan: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "plan"),
		),
		Settings: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "settings"),
		),
		Start: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "start workout"),
		),
		Debug: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "event log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close overlay"),
		),
	}
}

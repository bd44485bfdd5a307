// Package notify raises user notifications from a terminal context.
package notify

import "os"

// Notifier requests attention from the user outside the rendered UI.
type Notifier interface {
	// RequestPermission performs any one-time opt-in the platform needs.
	RequestPermission()
	// Notify signals the user, e.g. when a rest timer elapses.
	Notify(message string)
}

// Bell is a Notifier backed by the terminal bell. Terminals need no
// permission handshake, so RequestPermission only primes the tty.
type Bell struct{}

func (Bell) RequestPermission() {}

func (Bell) Notify(string) {
	os.Stdout.WriteString("\a")
}

// Silent discards all notifications.
type Silent struct{}

func (Silent) RequestPermission() {}
func (Silent) Notify(string)      {}

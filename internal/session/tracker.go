// Package session holds the live-workout session state machine: the
// tri-state snapshot decoded from the WebSocket channel, the navigation
// reactor keyed off session presence, and the facade the rest of the
// application consumes.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ironlog/tui/internal/client"
)

// Status is the presence state of the server-held session.
type Status int

const (
	// StatusUnknown means no frame has arrived yet.
	StatusUnknown Status = iota
	// StatusNone means the server explicitly broadcast null.
	StatusNone
	// StatusActive means a workout is in progress.
	StatusActive
)

// String returns a display label.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusActive:
		return "active"
	default:
		return "unknown"
	}
}

var nullLiteral = []byte("null")

// Tracker caches the latest decoded session snapshot. It is the single
// writer of the cached value; every consumer reads through it.
type Tracker struct {
	status  Status
	workout *client.Workout
}

// NewTracker creates a tracker in the unknown state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Apply decodes one inbound frame and replaces the cached snapshot.
// It reports whether the visible state changed.
//
// Frames received while the channel is not open are ignored so a stale
// buffered frame cannot clobber the last-good snapshot during a reconnect
// handshake. Identical payloads are dropped by a deep-equality check so a
// re-broadcast of the same snapshot causes no downstream re-render.
// A malformed frame returns an error and leaves the state untouched.
func (t *Tracker) Apply(raw []byte, connected bool) (bool, error) {
	if !connected {
		return false, nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false, nil
	}
	if bytes.Equal(trimmed, nullLiteral) {
		if t.status == StatusNone {
			return false, nil
		}
		t.status = StatusNone
		t.workout = nil
		return true, nil
	}

	var w client.Workout
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return false, fmt.Errorf("decoding workout frame: %w", err)
	}
	if t.status == StatusActive && equalWorkouts(t.workout, &w) {
		return false, nil
	}
	t.status = StatusActive
	t.workout = &w
	return true, nil
}

// Status returns the tri-state presence value.
func (t *Tracker) Status() Status {
	return t.status
}

// Workout returns the cached snapshot, or nil when the session is absent or
// not yet known. Callers that need to tell those two apart use Status.
func (t *Tracker) Workout() *client.Workout {
	if t.status != StatusActive {
		return nil
	}
	return t.workout
}

// equalWorkouts is the named equality step guarding redundant updates.
func equalWorkouts(a, b *client.Workout) bool {
	return reflect.DeepEqual(a, b)
}

package session

import (
	"github.com/ironlog/tui/internal/client"
)

// Service is the facade over the transport channel, the snapshot tracker and
// the intent encoder. It is created once in main and injected into the app
// model; nothing else touches the channel directly.
type Service struct {
	channel *client.Channel
	tracker *Tracker
	intents *client.Intents
}

// New wires a service to the shared channel. requestPermission runs once, on
// the first workout start (rest-timer notification opt-in); it may be nil.
func New(ch *client.Channel, requestPermission func()) *Service {
	return &Service{
		channel: ch,
		tracker: NewTracker(),
		intents: client.NewIntents(ch.Send, requestPermission),
	}
}

// NewDetached returns a service with no channel behind it: every intent is a
// silent no-op and the session stays unknown. It lets views be constructed
// and tested without a live connection.
func NewDetached() *Service {
	return &Service{
		tracker: NewTracker(),
		intents: client.NewIntents(func(any) error { return nil }, nil),
	}
}

// Apply feeds one inbound frame to the tracker, gated on the channel being
// open. It reports whether the visible session changed.
func (s *Service) Apply(raw []byte) (bool, error) {
	return s.tracker.Apply(raw, s.connected())
}

// Status returns the tri-state session presence.
func (s *Service) Status() Status { return s.tracker.Status() }

// Workout returns the current snapshot, or nil when absent or unknown.
func (s *Service) Workout() *client.Workout { return s.tracker.Workout() }

// Evaluate runs the navigation reactor against the current session presence.
func (s *Service) Evaluate(current Route) (Route, bool) {
	return Evaluate(s.tracker.Status(), current)
}

func (s *Service) connected() bool {
	return s.channel != nil && s.channel.Connected()
}

// --- intent methods, fire-and-forget per the wire contract ---

func (s *Service) StartWorkout() error   { return s.intents.StartWorkout() }
func (s *Service) EndWorkout() error     { return s.intents.EndWorkout() }
func (s *Service) DiscardWorkout() error { return s.intents.DiscardWorkout() }

func (s *Service) PersistSetComplete(exerciseIndex, setIndex int, complete bool) error {
	return s.intents.PersistSetComplete(exerciseIndex, setIndex, complete)
}

func (s *Service) PersistSetRepetitions(exerciseIndex, setIndex int, repetitions *int) error {
	return s.intents.PersistSetRepetitions(exerciseIndex, setIndex, repetitions)
}

func (s *Service) PersistSetResistance(exerciseIndex, setIndex int, resistanceInPounds *int) error {
	return s.intents.PersistSetResistance(exerciseIndex, setIndex, resistanceInPounds)
}

func (s *Service) ReplaceExercise(exerciseIndex int, newExerciseID string) error {
	return s.intents.ReplaceExercise(exerciseIndex, newExerciseID)
}

func (s *Service) AddExercise(exerciseID string, index int) error {
	return s.intents.AddExercise(exerciseID, index)
}

func (s *Service) DeleteExercise(index int) error {
	return s.intents.DeleteExercise(index)
}

package client

import (
	"fmt"
	"sync"
)

// IntentType discriminates outbound session mutation messages.
type IntentType string

const (
	IntentStart           IntentType = "START"
	IntentEnd             IntentType = "END"
	IntentDiscard         IntentType = "DISCARD"
	IntentSetComplete     IntentType = "PERSIST_SET_COMPLETE"
	IntentSetRepetitions  IntentType = "PERSIST_SET_REPETITIONS"
	IntentSetResistance   IntentType = "PERSIST_SET_RESISTANCE"
	IntentReplaceExercise IntentType = "REPLACE_EXERCISE"
	IntentAddExercise     IntentType = "ADD_EXERCISE"
	IntentDeleteExercise  IntentType = "DELETE_EXERCISE"
)

// Intent is an outbound frame requesting exactly one session mutation.
// Each variant carries only the fields its type needs; the client never
// sends a whole-session replacement.
type Intent interface {
	Validate() error
	intent()
}

// StartWorkoutIntent requests a new session.
type StartWorkoutIntent struct {
	Type IntentType `json:"type"`
}

// EndWorkoutIntent finalizes the current session into history.
type EndWorkoutIntent struct {
	Type IntentType `json:"type"`
}

// DiscardWorkoutIntent abandons the current session without persisting.
type DiscardWorkoutIntent struct {
	Type IntentType `json:"type"`
}

// SetCompleteIntent flips the completion flag of one set.
type SetCompleteIntent struct {
	Type          IntentType `json:"type"`
	ExerciseIndex int        `json:"exerciseIndex"`
	SetIndex      int        `json:"setIndex"`
	Complete      bool       `json:"complete"`
}

// SetRepetitionsIntent records the rep count of one set. A nil value clears
// the field, which is not the same as zero reps.
type SetRepetitionsIntent struct {
	Type          IntentType `json:"type"`
	ExerciseIndex int        `json:"exerciseIndex"`
	SetIndex      int        `json:"setIndex"`
	Repetitions   *int       `json:"repetitions"`
}

// SetResistanceIntent records the resistance of one set. A nil value clears
// the field.
type SetResistanceIntent struct {
	Type               IntentType `json:"type"`
	ExerciseIndex      int        `json:"exerciseIndex"`
	SetIndex           int        `json:"setIndex"`
	ResistanceInPounds *int       `json:"resistanceInPounds"`
}

// ReplaceExerciseIntent swaps the exercise at a position for a different
// catalog exercise. The server resets that position's sets.
type ReplaceExerciseIntent struct {
	Type          IntentType `json:"type"`
	ExerciseIndex int        `json:"exerciseIndex"`
	NewExerciseID string     `json:"newExerciseId"`
}

// AddExerciseIntent inserts a new exercise at a position.
type AddExerciseIntent struct {
	Type       IntentType `json:"type"`
	ExerciseID string     `json:"exerciseId"`
	Index      int        `json:"index"`
}

// DeleteExerciseIntent removes the exercise at a position.
type DeleteExerciseIntent struct {
	Type  IntentType `json:"type"`
	Index int        `json:"index"`
}

func (StartWorkoutIntent) intent()    {}
func (EndWorkoutIntent) intent()      {}
func (DiscardWorkoutIntent) intent()  {}
func (SetCompleteIntent) intent()     {}
func (SetRepetitionsIntent) intent()  {}
func (SetResistanceIntent) intent()   {}
func (ReplaceExerciseIntent) intent() {}
func (AddExerciseIntent) intent()     {}
func (DeleteExerciseIntent) intent()  {}

// Validate implementations check the invariants the type system cannot:
// the tag matches the variant and positional indices are non-negative.

func (i StartWorkoutIntent) Validate() error   { return requireType(i.Type, IntentStart) }
func (i EndWorkoutIntent) Validate() error     { return requireType(i.Type, IntentEnd) }
func (i DiscardWorkoutIntent) Validate() error { return requireType(i.Type, IntentDiscard) }

func (i SetCompleteIntent) Validate() error {
	if err := requireType(i.Type, IntentSetComplete); err != nil {
		return err
	}
	return requireIndices(i.ExerciseIndex, i.SetIndex)
}

func (i SetRepetitionsIntent) Validate() error {
	if err := requireType(i.Type, IntentSetRepetitions); err != nil {
		return err
	}
	return requireIndices(i.ExerciseIndex, i.SetIndex)
}

func (i SetResistanceIntent) Validate() error {
	if err := requireType(i.Type, IntentSetResistance); err != nil {
		return err
	}
	return requireIndices(i.ExerciseIndex, i.SetIndex)
}

func (i ReplaceExerciseIntent) Validate() error {
	if err := requireType(i.Type, IntentReplaceExercise); err != nil {
		return err
	}
	if i.NewExerciseID == "" {
		return fmt.Errorf("replace exercise: empty exercise id")
	}
	return requireIndices(i.ExerciseIndex)
}

func (i AddExerciseIntent) Validate() error {
	if err := requireType(i.Type, IntentAddExercise); err != nil {
		return err
	}
	if i.ExerciseID == "" {
		return fmt.Errorf("add exercise: empty exercise id")
	}
	return requireIndices(i.Index)
}

func (i DeleteExerciseIntent) Validate() error {
	if err := requireType(i.Type, IntentDeleteExercise); err != nil {
		return err
	}
	return requireIndices(i.Index)
}

func requireType(got, want IntentType) error {
	if got != want {
		return fmt.Errorf("intent type %q, want %q", got, want)
	}
	return nil
}

func requireIndices(indices ...int) error {
	for _, idx := range indices {
		if idx < 0 {
			return fmt.Errorf("negative index %d", idx)
		}
	}
	return nil
}

// Intents binds one constructor per mutation type to the channel's send
// function. Every method is fire-and-forget: the only acknowledgement is the
// next snapshot broadcast by the server, so callers must not expect the
// cached workout to reflect a mutation immediately after sending it.
type Intents struct {
	send func(any) error

	// requestPermission is invoked once, on the first StartWorkout, so the
	// rest timer can later notify the user. Platform concern, not protocol.
	requestPermission func()
	permissionOnce    sync.Once
}

// NewIntents creates an encoder that hands frames to send. requestPermission
// may be nil.
func NewIntents(send func(any) error, requestPermission func()) *Intents {
	return &Intents{send: send, requestPermission: requestPermission}
}

func (e *Intents) dispatch(in Intent) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return e.send(in)
}

// StartWorkout requests a new session for today's plan day.
func (e *Intents) StartWorkout() error {
	if e.requestPermission != nil {
		e.permissionOnce.Do(e.requestPermission)
	}
	return e.dispatch(StartWorkoutIntent{Type: IntentStart})
}

// EndWorkout finalizes the session and persists it to history.
func (e *Intents) EndWorkout() error {
	return e.dispatch(EndWorkoutIntent{Type: IntentEnd})
}

// DiscardWorkout abandons the session.
func (e *Intents) DiscardWorkout() error {
	return e.dispatch(DiscardWorkoutIntent{Type: IntentDiscard})
}

// PersistSetComplete marks the set at (exerciseIndex, setIndex) complete or
// incomplete.
func (e *Intents) PersistSetComplete(exerciseIndex, setIndex int, complete bool) error {
	return e.dispatch(SetCompleteIntent{
		Type:          IntentSetComplete,
		ExerciseIndex: exerciseIndex,
		SetIndex:      setIndex,
		Complete:      complete,
	})
}

// PersistSetRepetitions records reps for one set; nil clears the field.
func (e *Intents) PersistSetRepetitions(exerciseIndex, setIndex int, repetitions *int) error {
	return e.dispatch(SetRepetitionsIntent{
		Type:          IntentSetRepetitions,
		ExerciseIndex: exerciseIndex,
		SetIndex:      setIndex,
		Repetitions:   repetitions,
	})
}

// PersistSetResistance records resistance for one set; nil clears the field.
func (e *Intents) PersistSetResistance(exerciseIndex, setIndex int, resistanceInPounds *int) error {
	return e.dispatch(SetResistanceIntent{
		Type:               IntentSetResistance,
		ExerciseIndex:      exerciseIndex,
		SetIndex:           setIndex,
		ResistanceInPounds: resistanceInPounds,
	})
}

// ReplaceExercise swaps the exercise at exerciseIndex for newExerciseID.
func (e *Intents) ReplaceExercise(exerciseIndex int, newExerciseID string) error {
	return e.dispatch(ReplaceExerciseIntent{
		Type:          IntentReplaceExercise,
		ExerciseIndex: exerciseIndex,
		NewExerciseID: newExerciseID,
	})
}

// AddExercise inserts exerciseID at index.
func (e *Intents) AddExercise(exerciseID string, index int) error {
	return e.dispatch(AddExerciseIntent{
		Type:       IntentAddExercise,
		ExerciseID: exerciseID,
		Index:      index,
	})
}

// DeleteExercise removes the exercise at index.
func (e *Intents) DeleteExercise(index int) error {
	return e.dispatch(DeleteExerciseIntent{Type: IntentDeleteExercise, Index: index})
}

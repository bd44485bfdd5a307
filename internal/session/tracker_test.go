package session

import (
	"strings"
	"testing"
)

const workoutFrame = `{
	"id": "w1",
	"startedAt": "2026-08-30T18:00:00Z",
	"dayNumber": 2,
	"exercises": [
		{"exerciseId": "bench-press", "sets": [{"complete": false}, {"complete": false}]}
	]
}`

func TestTrackerStartsUnknown(t *testing.T) {
	tr := NewTracker()
	if tr.Status() != StatusUnknown {
		t.Errorf("Status() = %v, want unknown", tr.Status())
	}
	if tr.Workout() != nil {
		t.Error("Workout() should be nil before any frame")
	}
}

func TestTrackerApplyTransitions(t *testing.T) {
	tr := NewTracker()

	changed, err := tr.Apply([]byte(workoutFrame), true)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if !changed {
		t.Error("first snapshot should report a change")
	}
	if tr.Status() != StatusActive {
		t.Errorf("Status() = %v, want active", tr.Status())
	}
	w := tr.Workout()
	if w == nil || w.ID != "w1" {
		t.Fatalf("Workout() = %+v, want id w1", w)
	}
	if len(w.Exercises) != 1 || len(w.Exercises[0].Sets) != 2 {
		t.Errorf("decoded shape wrong: %+v", w)
	}

	changed, err = tr.Apply([]byte("null"), true)
	if err != nil {
		t.Fatalf("Apply(null) error: %v", err)
	}
	if !changed {
		t.Error("active to none should report a change")
	}
	if tr.Status() != StatusNone {
		t.Errorf("Status() = %v, want none", tr.Status())
	}
	if tr.Workout() != nil {
		t.Error("Workout() should be nil after null frame")
	}
}

func TestTrackerNullIdempotent(t *testing.T) {
	tr := NewTracker()
	if changed, _ := tr.Apply([]byte("null"), true); !changed {
		t.Error("unknown to none should report a change")
	}
	if changed, _ := tr.Apply([]byte("null"), true); changed {
		t.Error("repeated null should not report a change")
	}
}

func TestTrackerIdenticalSnapshotDropped(t *testing.T) {
	tr := NewTracker()
	if changed, _ := tr.Apply([]byte(workoutFrame), true); !changed {
		t.Fatal("first snapshot should report a change")
	}
	changed, err := tr.Apply([]byte(workoutFrame), true)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if changed {
		t.Error("re-broadcast of an identical snapshot should be dropped")
	}

	// Any field difference must get through.
	mutated := strings.Replace(workoutFrame, `"complete": false}, {"complete": false}`,
		`"complete": true}, {"complete": false}`, 1)
	if changed, _ := tr.Apply([]byte(mutated), true); !changed {
		t.Error("mutated snapshot should report a change")
	}
}

func TestTrackerIgnoresFramesWhileDisconnected(t *testing.T) {
	tr := NewTracker()
	tr.Apply([]byte(workoutFrame), true)

	changed, err := tr.Apply([]byte("null"), false)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if changed {
		t.Error("frame received while disconnected should be ignored")
	}
	if tr.Status() != StatusActive {
		t.Errorf("Status() = %v, stale frame must not clobber the snapshot", tr.Status())
	}
}

func TestTrackerMalformedFrame(t *testing.T) {
	tr := NewTracker()
	tr.Apply([]byte(workoutFrame), true)

	changed, err := tr.Apply([]byte(`{"id": 42`), true)
	if err == nil {
		t.Fatal("malformed frame should return an error")
	}
	if changed {
		t.Error("malformed frame should not report a change")
	}
	if tr.Status() != StatusActive || tr.Workout() == nil {
		t.Error("malformed frame must leave the last-good snapshot intact")
	}
}

func TestTrackerEmptyFrame(t *testing.T) {
	tr := NewTracker()
	changed, err := tr.Apply([]byte("  \n"), true)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if changed || tr.Status() != StatusUnknown {
		t.Error("blank frame should be a no-op")
	}
}

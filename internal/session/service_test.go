package session

import "testing"

func TestDetachedServiceIsInert(t *testing.T) {
	s := NewDetached()

	if s.Status() != StatusUnknown {
		t.Errorf("Status() = %v, want unknown", s.Status())
	}

	// No channel means no connection, so frames are dropped at the gate.
	changed, err := s.Apply([]byte(`{"id": "w1"}`))
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if changed || s.Status() != StatusUnknown {
		t.Error("detached service must ignore inbound frames")
	}

	// Intents are silent no-ops; invalid ones still fail validation.
	if err := s.StartWorkout(); err != nil {
		t.Errorf("StartWorkout() = %v, want nil", err)
	}
	if err := s.PersistSetComplete(0, 0, true); err != nil {
		t.Errorf("PersistSetComplete() = %v, want nil", err)
	}
	if err := s.DeleteExercise(-1); err == nil {
		t.Error("invalid intent should fail validation even when detached")
	}

	if target, redirect := s.Evaluate(RouteWorkout); redirect {
		t.Errorf("Evaluate redirected to %v with an unknown session", target)
	}
}

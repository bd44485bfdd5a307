package workout

import (
	"testing"

	"github.com/ironlog/tui/internal/client"
)

func TestClassify(t *testing.T) {
	sets := func(complete ...bool) []client.WorkoutSet {
		out := make([]client.WorkoutSet, len(complete))
		for i, c := range complete {
			out[i] = client.WorkoutSet{Complete: c}
		}
		return out
	}

	tests := []struct {
		name     string
		exercise client.WorkoutExercise
		want     Progress
	}{
		{"no sets", client.WorkoutExercise{}, ProgressPending},
		{"none complete", client.WorkoutExercise{Sets: sets(false, false, false)}, ProgressPending},
		{"some complete", client.WorkoutExercise{Sets: sets(true, false)}, ProgressStarted},
		{"all complete", client.WorkoutExercise{Sets: sets(true, true)}, ProgressDone},
		{"single set done", client.WorkoutExercise{Sets: sets(true)}, ProgressDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.exercise); got != tt.want {
				t.Errorf("Classify() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgressGlyph(t *testing.T) {
	if ProgressDone.Glyph() == ProgressPending.Glyph() {
		t.Error("done and pending glyphs must differ")
	}
	if ProgressStarted.Glyph() == ProgressPending.Glyph() {
		t.Error("started and pending glyphs must differ")
	}
}

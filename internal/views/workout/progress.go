package workout

import "github.com/ironlog/tui/internal/client"

// Progress classifies how far along one exercise slot of the live workout is.
type Progress int

const (
	ProgressPending Progress = iota
	ProgressStarted
	ProgressDone
)

// Classify returns the progress of an exercise slot based on its sets.
func Classify(e client.WorkoutExercise) Progress {
	if len(e.Sets) == 0 {
		return ProgressPending
	}
	complete := 0
	for _, s := range e.Sets {
		if s.Complete {
			complete++
		}
	}
	switch complete {
	case 0:
		return ProgressPending
	case len(e.Sets):
		return ProgressDone
	default:
		return ProgressStarted
	}
}

// Glyph returns the paginator glyph for a progress state.
func (p Progress) Glyph() string {
	switch p {
	case ProgressDone:
		return "●"
	case ProgressStarted:
		return "◐"
	default:
		return "○"
	}
}

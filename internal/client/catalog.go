package client

import "fmt"

// SetField identifies one editable field of a workout set.
type SetField string

const (
	FieldRepetitions SetField = "repetitions"
	FieldResistance  SetField = "resistance"
	FieldTime        SetField = "time"
)

// SetFields returns the editable fields for an exercise type, in display
// order. Weighted sets track resistance and reps, rep-based sets only reps,
// timed sets only elapsed time.
func SetFields(t ExerciseType) []SetField {
	switch t {
	case ExerciseTimed:
		return []SetField{FieldTime}
	case ExerciseRepBased:
		return []SetField{FieldRepetitions}
	default:
		return []SetField{FieldResistance, FieldRepetitions}
	}
}

// FormatSet renders a set's recorded values for the given exercise type,
// e.g. "25 lbs × 10" or "0:45".
func FormatSet(t ExerciseType, s WorkoutSet) string {
	switch t {
	case ExerciseTimed:
		if s.TimeInSeconds == nil {
			return "--:--"
		}
		return fmt.Sprintf("%d:%02d", *s.TimeInSeconds/60, *s.TimeInSeconds%60)
	case ExerciseRepBased:
		if s.Repetitions == nil {
			return "-- reps"
		}
		return fmt.Sprintf("%d reps", *s.Repetitions)
	default:
		lbs := "--"
		if s.ResistanceInPounds != nil {
			lbs = fmt.Sprintf("%d", *s.ResistanceInPounds)
		}
		reps := "--"
		if s.Repetitions != nil {
			reps = fmt.Sprintf("%d", *s.Repetitions)
		}
		return fmt.Sprintf("%s lbs × %s", lbs, reps)
	}
}

// ExercisesByMuscleGroup buckets catalog entries by primary muscle group.
func ExercisesByMuscleGroup(exercises []Exercise) map[MuscleGroup][]Exercise {
	out := make(map[MuscleGroup][]Exercise, len(MuscleGroups))
	for _, ex := range exercises {
		out[ex.PrimaryMuscleGroup] = append(out[ex.PrimaryMuscleGroup], ex)
	}
	return out
}

// FindExercise returns the catalog entry with the given id, or nil.
func FindExercise(exercises []Exercise, id string) *Exercise {
	for i := range exercises {
		if exercises[i].ID == id {
			return &exercises[i]
		}
	}
	return nil
}

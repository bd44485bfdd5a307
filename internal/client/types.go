// Package client provides the WebSocket and HTTP clients for the IronLog
// backend. Types mirror the server wire protocol without importing server
// packages.
package client

import "time"

// ExerciseType determines which set fields are meaningful for an exercise.
type ExerciseType string

const (
	ExerciseWeighted ExerciseType = "weighted"
	ExerciseTimed    ExerciseType = "timed"
	ExerciseRepBased ExerciseType = "rep_based"
)

// MuscleGroup tags an exercise with the muscle it works.
type MuscleGroup string

const (
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleChest     MuscleGroup = "chest"
	MuscleArms      MuscleGroup = "arms"
	MuscleBack      MuscleGroup = "back"
	MuscleAbs       MuscleGroup = "abs"
	MuscleLegs      MuscleGroup = "legs"
	MuscleGlutes    MuscleGroup = "glutes"
	MuscleCardio    MuscleGroup = "cardio"
)

// MuscleGroups lists every muscle group in display order.
var MuscleGroups = []MuscleGroup{
	MuscleShoulders, MuscleChest, MuscleArms, MuscleBack,
	MuscleAbs, MuscleLegs, MuscleGlutes, MuscleCardio,
}

// Exercise is a catalog entry from /api/exercises.
type Exercise struct {
	ID                            string        `json:"id"`
	Name                          string        `json:"name"`
	ExerciseType                  ExerciseType  `json:"exerciseType"`
	PrimaryMuscleGroup            MuscleGroup   `json:"primaryMuscleGroup"`
	SecondaryMuscleGroups         []MuscleGroup `json:"secondaryMuscleGroups,omitempty"`
	SetCount                      int           `json:"setCount"`
	BreakTimeInSeconds            int           `json:"breakTimeInSeconds"`
	MinimumRecommendedRepetitions *int          `json:"minimumRecommendedRepetitions,omitempty"`
	MaximumRecommendedRepetitions *int          `json:"maximumRecommendedRepetitions,omitempty"`
	TimePerSetInSeconds           *int          `json:"timePerSetInSeconds,omitempty"`
	Instructions                  string        `json:"instructions,omitempty"`
}

// ExerciseExtended is an Exercise plus the personal-record metadata returned
// by /api/exercises/{name}.
type ExerciseExtended struct {
	Exercise

	LastPerformed *time.Time  `json:"lastPerformed,omitempty"`
	BestSet       *WorkoutSet `json:"bestSet,omitempty"`
	BestSetDate   *time.Time  `json:"bestSetDate,omitempty"`
}

// WorkoutSet is one set inside an in-progress or completed workout. The
// optional fields depend on the exercise type; nil means the field was never
// recorded, which is distinct from zero.
type WorkoutSet struct {
	Complete           bool `json:"complete"`
	Repetitions        *int `json:"repetitions,omitempty"`
	ResistanceInPounds *int `json:"resistanceInPounds,omitempty"`
	TimeInSeconds      *int `json:"timeInSeconds,omitempty"`
}

// WorkoutExercise is one slot in a workout. Slots are addressed by position;
// the same exercise may legally appear more than once.
type WorkoutExercise struct {
	ExerciseID string       `json:"exerciseId"`
	Sets       []WorkoutSet `json:"sets"`
}

// Workout is the server-authoritative session snapshot broadcast over the
// WebSocket channel. The server always sends the whole value; the client
// never patches it.
type Workout struct {
	ID        string            `json:"id"`
	StartedAt time.Time         `json:"startedAt"`
	DayNumber int               `json:"dayNumber"`
	Nickname  string            `json:"nickname,omitempty"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// ScheduleDay is one day of the weekly plan.
type ScheduleDay struct {
	Nickname    string   `json:"nickname"`
	ExerciseIDs []string `json:"exerciseIds"`
}

// Schedule is the weekly workout plan returned by /api/schedule.
type Schedule struct {
	Days []ScheduleDay `json:"days"`
}

// HistoryEntry summarizes one completed workout from /api/workouts.
type HistoryEntry struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"startedAt"`
	EndedAt       time.Time `json:"endedAt"`
	DayNumber     int       `json:"dayNumber"`
	Nickname      string    `json:"nickname,omitempty"`
	ExerciseCount int       `json:"exerciseCount"`
	SetsCompleted int       `json:"setsCompleted"`
}

// Settings mirrors /api/settings.
type Settings struct {
	PoundsPerPlate int `json:"poundsPerPlate"`
}

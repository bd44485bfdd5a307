package session

// Route identifies a top-level view of the application.
type Route int

const (
	RouteHome Route = iota
	RouteWorkout
	RouteExercises
	RouteExerciseDetail
	RouteHistory
	RoutePlan
	RouteSettings
)

// String returns a display label for the route.
func (r Route) String() string {
	switch r {
	case RouteHome:
		return "Home"
	case RouteWorkout:
		return "Workout"
	case RouteExercises:
		return "Exercises"
	case RouteExerciseDetail:
		return "Exercise"
	case RouteHistory:
		return "History"
	case RoutePlan:
		return "Plan"
	case RouteSettings:
		return "Settings"
	default:
		return "?"
	}
}

// Evaluate is the navigation reactor: given the session presence and the
// current route it returns the route the app should replace the current one
// with, and whether a redirect is needed at all.
//
// A live session forces the workout route; an explicitly absent session
// forces the workout route to be left for home. The unknown state never
// moves the user, and every other (status, route) combination is a no-op, so
// one evaluation produces at most one redirect.
func Evaluate(status Status, current Route) (Route, bool) {
	switch status {
	case StatusActive:
		if current != RouteWorkout {
			return RouteWorkout, true
		}
	case StatusNone:
		if current == RouteWorkout {
			return RouteHome, true
		}
	}
	return current, false
}

// Package body models the dynamic bodies advanced by the step driver.
//
// Generalized coordinates and velocities use the Euler-parameter layout:
// velocities have the same dimension as coordinates, so positions can be
// extrapolated linearly (q = q0 + qd*h) during event search. This keeps the
// time-of-impact root search well-posed under the constant-velocity
// assumption the search relies on.
package body

// Body is the dynamics collaborator contract used by the step driver.
// Implementations own their state for the duration of one Step call and
// must not be mutated by anything else while a step is in flight.
type Body interface {
	ID() string
	NumCoords() int
	// GeneralizedCoords appends the current coordinates to dst.
	GeneralizedCoords(dst []float64) []float64
	SetGeneralizedCoords(q []float64)
	// GeneralizedVelocity appends the Euler-form velocity to dst. It has
	// the same dimension as the coordinates.
	GeneralizedVelocity(dst []float64) []float64
	SetGeneralizedVelocity(qd []float64)
	// Derivative evaluates the accumulated forces at time t and returns
	// the time derivative of the Euler-form generalized velocity.
	Derivative(t, dt float64) []float64
}

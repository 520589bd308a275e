// Package solver defines the impact-resolution collaborator contract. The
// full LCP machinery lives outside this kernel; the contract and the
// library-default impulse resolver are what the step driver needs.
package solver

import "github.com/gyaneshwarpardhi/rigidsim/internal/event"

// Status reports the outcome of processing an event set.
type Status int

const (
	// Resolved means every processed event left resolution with an
	// admissible velocity.
	Resolved Status = iota
	// NeedsRetry means a subset of events still had an inadmissible
	// (impacting) velocity after resolution; the step driver should learn
	// tolerances for that subset and retry the same set.
	NeedsRetry
)

// Result is the explicit outcome of Process. Recoverable inadmissibility
// is a value, not an error.
type Result struct {
	Status Status
	// Retry holds the offending events when Status is NeedsRetry.
	Retry []*event.Event
}

// Resolver computes and applies impulses for a resolved event set.
type Resolver interface {
	Process(events []*event.Event) Result
}

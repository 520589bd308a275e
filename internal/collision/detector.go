// Package collision defines the collision-detection collaborator contract
// and the library-default swept-pair detector.
package collision

import (
	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/event"
)

// BodyState pairs a body with a generalized coordinate snapshot, letting
// detectors probe interval endpoints without touching body state.
type BodyState struct {
	Body   body.Body
	Coords []float64
}

// Detector is the collision-detection collaborator. IsContact reports all
// candidate contact events inside the interval, each stamped with a
// normalized time in [0,1]. IsCollision reports whether any tracked pair
// currently interpenetrates beyond margin.
type Detector interface {
	IsContact(dt float64, x0, x1 []BodyState) []*event.Event
	IsCollision(margin float64) bool
}

package sim

import (
	"sort"
	"time"

	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/collision"
	"github.com/gyaneshwarpardhi/rigidsim/internal/event"
	"github.com/gyaneshwarpardhi/rigidsim/internal/metrics"
	"github.com/gyaneshwarpardhi/rigidsim/internal/tolerance"
)

// findEvents builds the candidate event set for the interval [0, dt]:
// contact events from every registered detector plus joint-limit crossings
// from the articulated bodies. The result is sorted by normalized event
// time and stamped with absolute times and per-identity tolerances.
func (s *Simulator) findEvents(dt float64) []*event.Event {
	x0 := make([]collision.BodyState, len(s.bodies))
	x1 := make([]collision.BodyState, len(s.bodies))
	for i, b := range s.bodies {
		x0[i] = collision.BodyState{Body: b, Coords: s.q0[i]}
		x1[i] = collision.BodyState{Body: b, Coords: s.qf[i]}
	}

	t0 := time.Now()
	batches := fanOut(s.conf.DetectorWorkers, s.detectors, func(d collision.Detector) []*event.Event {
		return d.IsContact(dt, x0, x1)
	})
	metrics.CollisionSeconds.Add(time.Since(t0).Seconds())

	var evs []*event.Event
	for _, batch := range batches {
		evs = append(evs, batch...)
	}

	for i, b := range s.bodies {
		ab, ok := b.(*body.Articulated)
		if !ok {
			continue
		}
		for _, c := range ab.FindLimitCrossings(s.q0[i], s.qf[i]) {
			evs = append(evs, &event.Event{
				Type:             event.TypeLimit,
				T:                c.T,
				Joint:            c.Joint,
				LimitUpper:       c.Upper,
				LimitRestitution: c.Joint.Restitution,
			})
		}
	}

	sort.SliceStable(evs, func(i, j int) bool { return event.Less(evs[i], evs[j]) })

	for _, e := range evs {
		e.TTrue = s.currentTime + e.T*dt
		e.Tol = s.conf.DefaultTolerance
		if id, ok := tolerance.IdentityOf(e); ok {
			if tol, found := s.tolerances.Lookup(id); found {
				e.Tol = tol
			}
		}
	}
	return evs
}

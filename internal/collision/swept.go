package collision

import (
	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/event"
	"github.com/gyaneshwarpardhi/rigidsim/internal/geom"
)

const (
	// DefaultThreshold is the signed distance at which a swept pair is
	// considered to have made contact.
	DefaultThreshold = 1e-6

	// Interval subdivision for bracketing the first threshold crossing,
	// and bisection depth once bracketed.
	sweepSamples   = 16
	bisectionSteps = 48
)

// SweptDetector interpolates geometry poses linearly across the interval
// and locates the earliest instant each tracked pair first reaches the
// contact threshold.
type SweptDetector struct {
	Threshold float64

	geoms    []*body.Geometry
	excluded map[[2]string]struct{}
}

// NewSweptDetector builds a detector over the geometries of all rigid
// bodies in the given set (including articulated links).
func NewSweptDetector(bodies []body.Body) *SweptDetector {
	d := &SweptDetector{
		Threshold: DefaultThreshold,
		excluded:  make(map[[2]string]struct{}),
	}
	// Links may be listed both standalone and inside their articulated
	// body; register each geometry once.
	seen := make(map[*body.Geometry]struct{})
	add := func(gs []*body.Geometry) {
		for _, g := range gs {
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			d.geoms = append(d.geoms, g)
		}
	}
	for _, b := range bodies {
		switch t := b.(type) {
		case *body.RigidBody:
			add(t.Geometries)
		case *body.Articulated:
			for _, link := range t.Links {
				add(link.Geometries)
			}
		}
	}
	return d
}

// Exclude suppresses checks between a pair of geometry ids.
func (d *SweptDetector) Exclude(a, b string) {
	d.excluded[pairKey(a, b)] = struct{}{}
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// IsContact sweeps every eligible pair through the interval and emits a
// contact event at the earliest threshold crossing, if any. A pair already
// at or inside the threshold at the interval start reports t=0.
func (d *SweptDetector) IsContact(dt float64, x0, x1 []BodyState) []*event.Event {
	start := make(map[body.Body][]float64, len(x0))
	end := make(map[body.Body][]float64, len(x1))
	for _, s := range x0 {
		start[s.Body] = s.Coords
	}
	for _, s := range x1 {
		end[s.Body] = s.Coords
	}

	var events []*event.Event
	for i := 0; i < len(d.geoms); i++ {
		for j := i + 1; j < len(d.geoms); j++ {
			ga, gb := d.geoms[i], d.geoms[j]
			if !d.eligible(ga, gb) {
				continue
			}
			q0a, q1a := start[ga.Body()], end[ga.Body()]
			q0b, q1b := start[gb.Body()], end[gb.Body()]
			if q0a == nil || q0b == nil {
				continue
			}
			if ev, ok := d.sweepPair(ga, gb, q0a, q1a, q0b, q1b); ok {
				events = append(events, ev)
			}
		}
	}
	return events
}

func (d *SweptDetector) eligible(ga, gb *body.Geometry) bool {
	if ga.Body() == gb.Body() {
		return false
	}
	if ga.Body().Static && gb.Body().Static {
		return false
	}
	if _, skip := d.excluded[pairKey(ga.ID, gb.ID)]; skip {
		return false
	}
	_, supported := geom.SignedDistance(ga.Shape, gb.Shape, geom.Identity(), geom.Identity())
	return supported
}

// sweepPair finds the earliest normalized time the pair's signed distance
// reaches the threshold.
func (d *SweptDetector) sweepPair(ga, gb *body.Geometry, q0a, q1a, q0b, q1b []float64) (*event.Event, bool) {
	dist := func(t float64) geom.DistanceResult {
		pa := ga.PoseAt(lerpCoords(q0a, q1a, t))
		pb := gb.PoseAt(lerpCoords(q0b, q1b, t))
		res, _ := geom.SignedDistance(ga.Shape, gb.Shape, pa, pb)
		return res
	}

	if r0 := dist(0); r0.Distance <= d.Threshold {
		return d.contactEvent(ga, gb, 0, r0), true
	}

	// Bracket the first crossing with a coarse sweep, then bisect.
	prev := 0.0
	for s := 1; s <= sweepSamples; s++ {
		t := float64(s) / sweepSamples
		if dist(t).Distance <= d.Threshold {
			lo, hi := prev, t
			for k := 0; k < bisectionSteps; k++ {
				mid := (lo + hi) / 2
				if dist(mid).Distance <= d.Threshold {
					hi = mid
				} else {
					lo = mid
				}
			}
			return d.contactEvent(ga, gb, hi, dist(hi)), true
		}
		prev = t
	}
	return nil, false
}

func (d *SweptDetector) contactEvent(ga, gb *body.Geometry, t float64, res geom.DistanceResult) *event.Event {
	ev := &event.Event{
		Type:   event.TypeContact,
		T:      t,
		Geom1:  ga,
		Geom2:  gb,
		Point:  res.PointA.Add(res.PointB).Mul(0.5),
		Normal: res.Normal,
	}
	ev.DetermineTangents()
	return ev
}

// IsCollision checks the current body poses for interpenetration beyond
// margin.
func (d *SweptDetector) IsCollision(margin float64) bool {
	for i := 0; i < len(d.geoms); i++ {
		for j := i + 1; j < len(d.geoms); j++ {
			ga, gb := d.geoms[i], d.geoms[j]
			if !d.eligible(ga, gb) {
				continue
			}
			res, ok := geom.SignedDistance(ga.Shape, gb.Shape, ga.WorldPose(), gb.WorldPose())
			if ok && res.Distance < -margin {
				return true
			}
		}
	}
	return false
}

func lerpCoords(q0, q1 []float64, t float64) []float64 {
	out := make([]float64, len(q0))
	for i := range q0 {
		out[i] = q0[i] + (q1[i]-q0[i])*t
	}
	return out
}

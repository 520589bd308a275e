package event

import (
	"math"
	"sort"

	"github.com/gyaneshwarpardhi/rigidsim/internal/geom"
)

// Manifold reduction tolerances. Points and normals within these bounds of
// a common plane are treated as one coplanar contact manifold.
const (
	coplanarNormalTol = 1e-6
	coplanarDistTol   = 1e-6
	duplicatePointTol = 1e-9
)

// ReduceMinimal reduces an approximately coplanar contact manifold inside a
// connected group to a structurally minimal subset: the convex-hull
// vertices of the manifold, which suffice to prevent interpenetration.
// Interior and duplicate contact points are discarded. Non-contact events
// and non-coplanar groups pass through untouched. Applying the reduction to
// an already minimal set is a no-op.
func ReduceMinimal(group []*Event) []*Event {
	var contacts []*Event
	for _, e := range group {
		if e.Type == TypeContact {
			contacts = append(contacts, e)
		}
	}
	if len(contacts) < 3 || !isCoplanar(contacts) {
		return group
	}

	keep := hullIndices(contacts)
	if len(keep) == len(contacts) {
		return group
	}

	kept := make(map[*Event]bool, len(keep))
	for _, i := range keep {
		kept[contacts[i]] = true
	}
	out := make([]*Event, 0, len(group))
	for _, e := range group {
		if e.Type != TypeContact || kept[e] {
			out = append(out, e)
		}
	}
	return out
}

// isCoplanar reports whether all contact normals agree and all contact
// points lie on a common plane, within tolerance.
func isCoplanar(contacts []*Event) bool {
	n := contacts[0].Normal
	if n.Len() <= geom.NearZero {
		n = geom.FallbackNormal
	} else {
		n = n.Normalize()
	}
	p0 := contacts[0].Point
	for _, e := range contacts[1:] {
		en := e.Normal
		if en.Len() <= geom.NearZero {
			en = geom.FallbackNormal
		} else {
			en = en.Normalize()
		}
		if en.Dot(n) < 1-coplanarNormalTol {
			return false
		}
		if math.Abs(e.Point.Sub(p0).Dot(n)) > coplanarDistTol {
			return false
		}
	}
	return true
}

// hullIndices returns the indices of contacts whose points are vertices of
// the 2D convex hull of the manifold, in ascending input order. Duplicate
// points keep only their first occurrence.
func hullIndices(contacts []*Event) []int {
	n := contacts[0].Normal
	if n.Len() <= geom.NearZero {
		n = geom.FallbackNormal
	} else {
		n = n.Normalize()
	}
	u := geom.Orthonormal(n)
	v := n.Cross(u)
	origin := contacts[0].Point

	type pt struct {
		x, y float64
		idx  int
	}
	pts := make([]pt, 0, len(contacts))
	for i, e := range contacts {
		d := e.Point.Sub(origin)
		p := pt{x: d.Dot(u), y: d.Dot(v), idx: i}
		dup := false
		for _, q := range pts {
			if math.Abs(q.x-p.x) <= duplicatePointTol && math.Abs(q.y-p.y) <= duplicatePointTol {
				dup = true
				break
			}
		}
		if !dup {
			pts = append(pts, p)
		}
	}
	if len(pts) <= 2 {
		out := make([]int, len(pts))
		for i, p := range pts {
			out[i] = p.idx
		}
		sort.Ints(out)
		return out
	}

	// Andrew's monotone chain.
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].x != pts[j].x {
			return pts[i].x < pts[j].x
		}
		return pts[i].y < pts[j].y
	})
	cross := func(o, a, b pt) float64 {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}
	var hull []pt
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	out := make([]int, 0, len(hull))
	for _, p := range hull {
		out = append(out, p.idx)
	}
	sort.Ints(out)
	return out
}

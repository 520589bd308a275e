package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var inf = math.Inf(1)

// NearZero is the threshold below which a direction is treated as degenerate.
const NearZero = 1e-12

// FallbackNormal is substituted when a contact direction is ill-defined
// (coincident centers, axis-aligned degeneracies). Degeneracy is handled
// here and never propagated to callers.
var FallbackNormal = mgl64.Vec3{0, 0, 1}

// DistanceResult is the outcome of a signed-distance query between two
// posed shapes. Normal points from shape B toward shape A.
type DistanceResult struct {
	Distance float64
	PointA   mgl64.Vec3
	PointB   mgl64.Vec3
	Normal   mgl64.Vec3
}

type distanceFunc func(a, b Shape, pa, pb Pose) DistanceResult

// distanceTable dispatches on the ordered kind pair.
var distanceTable = map[[2]Kind]distanceFunc{
	{KindSphere, KindSphere}: sphereSphere,
	{KindSphere, KindPlane}:  spherePlane,
	{KindTorus, KindPlane}:   torusPlane,
}

// SignedDistance computes the signed distance between two posed shapes,
// with closest points on each and the contact normal from b toward a.
// The second return is false when no routine exists for the kind pair.
func SignedDistance(a, b Shape, pa, pb Pose) (DistanceResult, bool) {
	if fn, ok := distanceTable[[2]Kind{a.Kind(), b.Kind()}]; ok {
		return fn(a, b, pa, pb), true
	}
	// Try the mirrored pair and swap the result back.
	if fn, ok := distanceTable[[2]Kind{b.Kind(), a.Kind()}]; ok {
		res := fn(b, a, pb, pa)
		res.PointA, res.PointB = res.PointB, res.PointA
		res.Normal = res.Normal.Mul(-1)
		return res, true
	}
	return DistanceResult{Distance: inf}, false
}

func sphereSphere(a, b Shape, pa, pb Pose) DistanceResult {
	sa := a.(*Sphere)
	sb := b.(*Sphere)
	delta := pa.Position.Sub(pb.Position)
	dist := delta.Len()
	n := FallbackNormal
	if dist > NearZero {
		n = delta.Mul(1 / dist)
	}
	return DistanceResult{
		Distance: dist - sa.Radius - sb.Radius,
		PointA:   pa.Position.Sub(n.Mul(sa.Radius)),
		PointB:   pb.Position.Add(n.Mul(sb.Radius)),
		Normal:   n,
	}
}

func spherePlane(a, b Shape, pa, pb Pose) DistanceResult {
	s := a.(*Sphere)
	n := pb.Rotate(mgl64.Vec3{0, 0, 1})
	height := pa.Position.Sub(pb.Position).Dot(n)
	d := height - s.Radius
	onSphere := pa.Position.Sub(n.Mul(s.Radius))
	return DistanceResult{
		Distance: d,
		PointA:   onSphere,
		PointB:   onSphere.Sub(n.Mul(d)),
		Normal:   n,
	}
}

func torusPlane(a, b Shape, pa, pb Pose) DistanceResult {
	t := a.(*Torus)
	n := pb.Rotate(mgl64.Vec3{0, 0, 1})
	axis := pa.Rotate(mgl64.Vec3{0, 0, 1})

	// Component of the plane normal perpendicular to the torus axis picks
	// out the lowest point of the tube circle.
	perp := n.Sub(axis.Mul(n.Dot(axis)))
	radial := perp
	if perp.Len() <= NearZero {
		// Axis parallel to the plane normal: the whole bottom circle is
		// equidistant; any radial direction serves.
		radial = Orthonormal(axis)
	} else {
		radial = perp.Mul(1 / perp.Len())
	}

	support := pa.Position.Sub(radial.Mul(t.MajorRadius)).Sub(n.Mul(t.MinorRadius))
	d := support.Sub(pb.Position).Dot(n)
	return DistanceResult{
		Distance: d,
		PointA:   support,
		PointB:   support.Sub(n.Mul(d)),
		Normal:   n,
	}
}

// Orthonormal returns a unit vector orthogonal to v.
func Orthonormal(v mgl64.Vec3) mgl64.Vec3 {
	// Cross with the axis v is least aligned with.
	ref := mgl64.Vec3{1, 0, 0}
	if math.Abs(v.X()) > math.Abs(v.Y()) {
		ref = mgl64.Vec3{0, 1, 0}
	}
	w := v.Cross(ref)
	if w.Len() <= NearZero {
		return FallbackNormal
	}
	return w.Normalize()
}

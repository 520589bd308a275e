package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxEq(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func vecApproxEq(a, b mgl64.Vec3, tol float64) bool {
	return approxEq(a.X(), b.X(), tol) && approxEq(a.Y(), b.Y(), tol) && approxEq(a.Z(), b.Z(), tol)
}

func poseAt(x, y, z float64) Pose {
	return Pose{Position: mgl64.Vec3{x, y, z}, Orientation: mgl64.QuatIdent()}
}

func TestSphereSphere(t *testing.T) {
	a := &Sphere{Radius: 1}
	b := &Sphere{Radius: 0.5}

	res, ok := SignedDistance(a, b, poseAt(0, 0, 3), poseAt(0, 0, 0))
	if !ok {
		t.Fatal("sphere/sphere should be supported")
	}
	if !approxEq(res.Distance, 1.5, 1e-12) {
		t.Errorf("Distance = %g, want 1.5", res.Distance)
	}
	// Normal points from b toward a.
	if !vecApproxEq(res.Normal, mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("Normal = %v, want +z", res.Normal)
	}
	if !vecApproxEq(res.PointA, mgl64.Vec3{0, 0, 2}, 1e-12) {
		t.Errorf("PointA = %v, want (0,0,2)", res.PointA)
	}
	if !vecApproxEq(res.PointB, mgl64.Vec3{0, 0, 0.5}, 1e-12) {
		t.Errorf("PointB = %v, want (0,0,0.5)", res.PointB)
	}
}

func TestSphereSphereOverlapNegative(t *testing.T) {
	a := &Sphere{Radius: 1}
	b := &Sphere{Radius: 1}
	res, _ := SignedDistance(a, b, poseAt(0, 0, 1.5), poseAt(0, 0, 0))
	if !approxEq(res.Distance, -0.5, 1e-12) {
		t.Errorf("Distance = %g, want -0.5", res.Distance)
	}
}

func TestSphereSphereCoincidentCentersFallback(t *testing.T) {
	a := &Sphere{Radius: 1}
	b := &Sphere{Radius: 1}
	res, _ := SignedDistance(a, b, poseAt(0, 0, 0), poseAt(0, 0, 0))
	if res.Normal != FallbackNormal {
		t.Errorf("degenerate normal = %v, want fallback %v", res.Normal, FallbackNormal)
	}
	if !approxEq(res.Normal.Len(), 1, 1e-12) {
		t.Errorf("fallback normal not unit length: %v", res.Normal)
	}
}

func TestSpherePlane(t *testing.T) {
	s := &Sphere{Radius: 0.5}
	p := &Plane{}

	res, ok := SignedDistance(s, p, poseAt(1, 2, 2), poseAt(0, 0, 0))
	if !ok {
		t.Fatal("sphere/plane should be supported")
	}
	if !approxEq(res.Distance, 1.5, 1e-12) {
		t.Errorf("Distance = %g, want 1.5", res.Distance)
	}
	if !vecApproxEq(res.PointA, mgl64.Vec3{1, 2, 1.5}, 1e-12) {
		t.Errorf("PointA = %v", res.PointA)
	}
	if !vecApproxEq(res.PointB, mgl64.Vec3{1, 2, 0}, 1e-12) {
		t.Errorf("PointB = %v", res.PointB)
	}
}

func TestMirroredDispatch(t *testing.T) {
	s := &Sphere{Radius: 0.5}
	p := &Plane{}

	// plane/sphere has no direct routine; the mirrored result must swap
	// points and negate the normal.
	res, ok := SignedDistance(p, s, poseAt(0, 0, 0), poseAt(0, 0, 2))
	if !ok {
		t.Fatal("plane/sphere should dispatch through the mirrored pair")
	}
	if !approxEq(res.Distance, 1.5, 1e-12) {
		t.Errorf("Distance = %g, want 1.5", res.Distance)
	}
	if !vecApproxEq(res.Normal, mgl64.Vec3{0, 0, -1}, 1e-12) {
		t.Errorf("Normal = %v, want -z (from sphere toward plane)", res.Normal)
	}
	if !vecApproxEq(res.PointA, mgl64.Vec3{0, 0, 0}, 1e-12) {
		t.Errorf("PointA = %v, want the plane-side point", res.PointA)
	}
}

func TestTorusPlane(t *testing.T) {
	tor := &Torus{MajorRadius: 1, MinorRadius: 0.25}
	p := &Plane{}

	// Torus tilted so its axis lies along +x: the tube's lowest point is
	// major radius down from the center, minus the minor radius.
	tilt := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	pa := Pose{Position: mgl64.Vec3{0, 0, 2}, Orientation: tilt}

	res, ok := SignedDistance(tor, p, pa, poseAt(0, 0, 0))
	if !ok {
		t.Fatal("torus/plane should be supported")
	}
	if !approxEq(res.Distance, 0.75, 1e-9) {
		t.Errorf("Distance = %g, want 0.75", res.Distance)
	}
}

func TestTorusPlaneFlat(t *testing.T) {
	tor := &Torus{MajorRadius: 1, MinorRadius: 0.25}
	p := &Plane{}

	// Axis parallel to the plane normal: the whole bottom circle is
	// equidistant, distance is center height minus the minor radius.
	res, _ := SignedDistance(tor, p, poseAt(0, 0, 1), poseAt(0, 0, 0))
	if !approxEq(res.Distance, 0.75, 1e-9) {
		t.Errorf("Distance = %g, want 0.75", res.Distance)
	}
}

func TestUnsupportedPair(t *testing.T) {
	tor := &Torus{MajorRadius: 1, MinorRadius: 0.25}
	s := &Sphere{Radius: 1}
	if _, ok := SignedDistance(tor, s, poseAt(0, 0, 0), poseAt(0, 0, 5)); ok {
		t.Error("torus/sphere should report unsupported")
	}
}

func TestOrthonormal(t *testing.T) {
	dirs := []mgl64.Vec3{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{1, 1, 1}, {-0.3, 0.2, 0.9},
	}
	for _, v := range dirs {
		u := Orthonormal(v)
		if !approxEq(u.Len(), 1, 1e-12) {
			t.Errorf("Orthonormal(%v) not unit: %v", v, u)
		}
		if !approxEq(u.Dot(v), 0, 1e-9) {
			t.Errorf("Orthonormal(%v) not orthogonal: dot=%g", v, u.Dot(v))
		}
	}
}

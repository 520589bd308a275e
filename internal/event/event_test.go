package event

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/geom"
)

// contactPair builds a contact event between a dynamic body with the given
// vertical velocity and a static ground body, normal +z.
func contactPair(t *testing.T, vz float64) *Event {
	t.Helper()
	ball := body.NewRigidBody("ball", 1)
	ball.Position = mgl64.Vec3{0, 0, 0.5}
	ball.LinVel = mgl64.Vec3{0, 0, vz}
	gb := &body.Geometry{ID: "ball_geom"}
	ball.AddGeometry(gb)

	ground := body.NewRigidBody("ground", 0)
	ground.Static = true
	gg := &body.Geometry{ID: "ground_geom"}
	ground.AddGeometry(gg)

	return &Event{
		Type:   TypeContact,
		Geom1:  gb,
		Geom2:  gg,
		Point:  mgl64.Vec3{0, 0, 0},
		Normal: mgl64.Vec3{0, 0, 1},
		Tol:    1e-6,
	}
}

func TestContactVelocitySign(t *testing.T) {
	if v := contactPair(t, -2).Velocity(); v != -2 {
		t.Errorf("approaching contact velocity = %g, want -2", v)
	}
	if v := contactPair(t, 3).Velocity(); v != 3 {
		t.Errorf("separating contact velocity = %g, want 3", v)
	}
}

func TestContactClassification(t *testing.T) {
	cases := []struct {
		name string
		vz   float64
		want Class
	}{
		{"fast approach", -1, ClassImpacting},
		{"fast separation", 1, ClassSeparating},
		{"zero velocity", 0, ClassResting},
		{"exactly at tolerance", 1e-6, ClassResting},
		{"exactly at negative tolerance", -1e-6, ClassResting},
		{"just above tolerance", 2e-6, ClassSeparating},
		{"just below negative tolerance", -2e-6, ClassImpacting},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := contactPair(t, tc.vz)
			if got := e.Class(); got != tc.want {
				t.Errorf("Class() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestZeroToleranceFallsBackToDefault(t *testing.T) {
	e := contactPair(t, -1e-7)
	e.Tol = 0
	// 1e-7 is inside the library default 1e-6.
	if got := e.Class(); got != ClassResting {
		t.Errorf("Class() = %v, want resting under default tolerance", got)
	}
}

func limitEvent(t *testing.T, qd float64, upper bool) *Event {
	t.Helper()
	j := &body.Joint{ID: "j0", Lower: -1, Upper: 1}
	a := body.NewArticulated("arm", []*body.Joint{j})
	a.SetGeneralizedVelocity([]float64{qd})
	return &Event{Type: TypeLimit, Joint: j, LimitUpper: upper, Tol: 1e-6}
}

func TestLimitVelocitySign(t *testing.T) {
	// Moving toward a limit is approaching, so the signed velocity is
	// negative regardless of which side the limit is on.
	if v := limitEvent(t, 2, true).Velocity(); v != -2 {
		t.Errorf("upper limit velocity = %g, want -2", v)
	}
	if v := limitEvent(t, -2, false).Velocity(); v != -2 {
		t.Errorf("lower limit velocity = %g, want -2", v)
	}
	if v := limitEvent(t, -2, true).Velocity(); v != 2 {
		t.Errorf("receding upper limit velocity = %g, want 2", v)
	}
}

func TestLimitClassification(t *testing.T) {
	if e := limitEvent(t, 1, true); !e.IsImpacting() {
		t.Error("joint driving into its upper limit should be impacting")
	}
	if e := limitEvent(t, -1, true); !e.IsSeparating() {
		t.Error("joint leaving its upper limit should be separating")
	}
	if e := limitEvent(t, 0, true); !e.IsResting() {
		t.Error("joint at rest on its limit should be resting")
	}
}

func TestDetermineTangents(t *testing.T) {
	e := &Event{Type: TypeContact, Normal: mgl64.Vec3{0, 0, 1}}
	e.DetermineTangents()
	if math.Abs(e.Tan1.Dot(e.Normal)) > 1e-12 || math.Abs(e.Tan2.Dot(e.Normal)) > 1e-12 {
		t.Errorf("tangents not orthogonal to normal: %v %v", e.Tan1, e.Tan2)
	}
	if math.Abs(e.Tan1.Dot(e.Tan2)) > 1e-12 {
		t.Errorf("tangents not mutually orthogonal: %v %v", e.Tan1, e.Tan2)
	}
}

func TestDetermineTangentsDegenerateNormal(t *testing.T) {
	e := &Event{Type: TypeContact, Normal: mgl64.Vec3{}}
	e.DetermineTangents()
	if e.Normal != geom.FallbackNormal {
		t.Errorf("degenerate normal = %v, want fallback", e.Normal)
	}
	if math.Abs(e.Tan1.Len()-1) > 1e-12 || math.Abs(e.Tan2.Len()-1) > 1e-12 {
		t.Errorf("fallback tangents not unit length: %v %v", e.Tan1, e.Tan2)
	}
}

func TestLess(t *testing.T) {
	a := &Event{T: 0.2}
	b := &Event{T: 0.7}
	if !Less(a, b) || Less(b, a) {
		t.Error("Less must order by occurrence time")
	}
}

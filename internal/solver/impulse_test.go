package solver

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/event"
)

// ballOnGround builds a sphere-on-plane contact with the ball approaching
// at vz and the given restitution.
func ballOnGround(t *testing.T, vz, restitution float64) (*event.Event, *body.RigidBody) {
	t.Helper()
	ball := body.NewRigidBody("ball", 1)
	ball.Position = mgl64.Vec3{0, 0, 0.5}
	ball.LinVel = mgl64.Vec3{0, 0, vz}
	gb := &body.Geometry{ID: "ball_g"}
	ball.AddGeometry(gb)

	ground := body.NewRigidBody("ground", 0)
	ground.Static = true
	gg := &body.Geometry{ID: "ground_g"}
	ground.AddGeometry(gg)

	ev := &event.Event{
		Type:        event.TypeContact,
		Geom1:       gb,
		Geom2:       gg,
		Point:       mgl64.Vec3{0, 0, 0},
		Normal:      mgl64.Vec3{0, 0, 1},
		Restitution: restitution,
		Tol:         1e-6,
	}
	return ev, ball
}

func TestBounceReversesVelocity(t *testing.T) {
	ev, ball := ballOnGround(t, -2, 0.5)

	res := NewImpulseResolver().Process([]*event.Event{ev})
	if res.Status != Resolved {
		t.Fatalf("status = %v, want Resolved", res.Status)
	}
	if math.Abs(ball.LinVel.Z()-1) > 1e-9 {
		t.Errorf("post-impact vz = %g, want +1 (restitution 0.5)", ball.LinVel.Z())
	}
	if ev.Impulse.Force.Z() <= 0 {
		t.Errorf("accumulated impulse = %v, want positive normal component", ev.Impulse.Force)
	}
}

func TestInelasticImpactComesToRest(t *testing.T) {
	ev, ball := ballOnGround(t, -1, 0)

	res := NewImpulseResolver().Process([]*event.Event{ev})
	if res.Status != Resolved {
		t.Fatalf("status = %v, want Resolved", res.Status)
	}
	if math.Abs(ball.LinVel.Z()) > 1e-9 {
		t.Errorf("post-impact vz = %g, want 0", ball.LinVel.Z())
	}
	if !ev.IsResting() {
		t.Error("zero-restitution impact should end resting")
	}
}

func TestSeparatingContactUntouched(t *testing.T) {
	ev, ball := ballOnGround(t, 2, 0.5)

	res := NewImpulseResolver().Process([]*event.Event{ev})
	if res.Status != Resolved {
		t.Fatalf("status = %v, want Resolved", res.Status)
	}
	if ball.LinVel.Z() != 2 {
		t.Errorf("separating contact changed velocity: vz = %g", ball.LinVel.Z())
	}
}

func TestNeedsRetryReportsOffenders(t *testing.T) {
	// Negative restitution leaves the post-impulse velocity approaching, so
	// the resolver must report the event for tolerance learning.
	ev, _ := ballOnGround(t, -1, -0.5)

	res := NewImpulseResolver().Process([]*event.Event{ev})
	if res.Status != NeedsRetry {
		t.Fatalf("status = %v, want NeedsRetry", res.Status)
	}
	if len(res.Retry) != 1 || res.Retry[0] != ev {
		t.Fatalf("Retry = %v, want the offending event", res.Retry)
	}

	// A widened tolerance covering the residual velocity resolves it.
	ev.Tol = math.Abs(ev.Velocity()) + 1e-12
	res = NewImpulseResolver().Process([]*event.Event{ev})
	if res.Status != Resolved {
		t.Errorf("status after widening tolerance = %v, want Resolved", res.Status)
	}
}

func TestLimitImpactReflectsJointVelocity(t *testing.T) {
	j := &body.Joint{ID: "j0", Lower: -1, Upper: 1}
	arm := body.NewArticulated("arm", []*body.Joint{j})
	arm.SetGeneralizedVelocity([]float64{2}) // driving into the upper limit

	ev := &event.Event{
		Type:             event.TypeLimit,
		Joint:            j,
		LimitUpper:       true,
		LimitRestitution: 0.5,
		Tol:              1e-6,
	}
	res := NewImpulseResolver().Process([]*event.Event{ev})
	if res.Status != Resolved {
		t.Fatalf("status = %v, want Resolved", res.Status)
	}
	if math.Abs(j.Velocity()+1) > 1e-12 {
		t.Errorf("post-impact joint velocity = %g, want -1", j.Velocity())
	}
	if ev.LimitImpulse <= 0 {
		t.Errorf("LimitImpulse = %g, want positive", ev.LimitImpulse)
	}
}

func TestManifoldReducedBeforeResolution(t *testing.T) {
	// Five coplanar contacts between one falling box-like body and the
	// ground: the interior contact must not receive an impulse.
	box := body.NewRigidBody("box", 4)
	box.Position = mgl64.Vec3{0, 0, 0.5}
	box.LinVel = mgl64.Vec3{0, 0, -1}
	ground := body.NewRigidBody("ground", 0)
	ground.Static = true
	gg := &body.Geometry{ID: "ground_g"}
	ground.AddGeometry(gg)

	mkEv := func(x, y float64, id string) *event.Event {
		g := &body.Geometry{ID: id}
		box.AddGeometry(g)
		return &event.Event{
			Type:   event.TypeContact,
			Geom1:  g,
			Geom2:  gg,
			Point:  mgl64.Vec3{x, y, 0},
			Normal: mgl64.Vec3{0, 0, 1},
			Tol:    1e-6,
		}
	}
	corner1 := mkEv(-1, -1, "c1")
	corner2 := mkEv(1, -1, "c2")
	corner3 := mkEv(1, 1, "c3")
	corner4 := mkEv(-1, 1, "c4")
	center := mkEv(0, 0, "center")

	res := NewImpulseResolver().Process([]*event.Event{corner1, corner2, corner3, corner4, center})
	if res.Status != Resolved {
		t.Fatalf("status = %v, want Resolved", res.Status)
	}
	if center.Impulse.Force.Len() != 0 {
		t.Error("interior contact received an impulse despite reduction")
	}
	if box.LinVel.Z() < -1e-9 {
		t.Errorf("box still approaching after resolution: vz = %g", box.LinVel.Z())
	}
}

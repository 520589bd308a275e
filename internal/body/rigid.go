package body

import (
	"github.com/go-gl/mathgl/mgl64"
)

// RigidBody is a six-degree-of-freedom body with unit-quaternion
// orientation. Coordinates are [px py pz qw qx qy qz]; the Euler-form
// velocity is [vx vy vz q̇w q̇x q̇y q̇z] with q̇ = ½ ω∘q.
type RigidBody struct {
	id string

	Mass    float64
	Inertia mgl64.Vec3 // body-frame principal moments
	Static  bool

	Position    mgl64.Vec3
	Orientation mgl64.Quat
	LinVel      mgl64.Vec3
	AngVel      mgl64.Vec3

	Forces     []Force
	Geometries []*Geometry

	// Parent is the articulated body this link belongs to, if any. Used
	// by contact-parameter resolution at articulated granularity.
	Parent *Articulated
}

// NewRigidBody creates a dynamic rigid body with sphere-like default
// inertia.
func NewRigidBody(id string, mass float64) *RigidBody {
	return &RigidBody{
		id:          id,
		Mass:        mass,
		Inertia:     mgl64.Vec3{mass, mass, mass},
		Orientation: mgl64.QuatIdent(),
	}
}

func (b *RigidBody) ID() string     { return b.id }
func (b *RigidBody) NumCoords() int { return 7 }

// AddGeometry attaches a collision geometry to this body.
func (b *RigidBody) AddGeometry(g *Geometry) {
	g.body = b
	b.Geometries = append(b.Geometries, g)
}

// InvMass returns 1/mass, or 0 for static bodies.
func (b *RigidBody) InvMass() float64 {
	if b.Static || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// InvInertiaWorld returns the world-frame inverse inertia tensor.
func (b *RigidBody) InvInertiaWorld() mgl64.Mat3 {
	if b.Static {
		return mgl64.Mat3{}
	}
	inv := mgl64.Diag3(mgl64.Vec3{1 / b.Inertia.X(), 1 / b.Inertia.Y(), 1 / b.Inertia.Z()})
	r := b.Orientation.Mat4().Mat3()
	return r.Mul3(inv).Mul3(r.Transpose())
}

// VelocityAt returns the velocity of the body-fixed material point
// currently at world position p.
func (b *RigidBody) VelocityAt(p mgl64.Vec3) mgl64.Vec3 {
	if b.Static {
		return mgl64.Vec3{}
	}
	return b.LinVel.Add(b.AngVel.Cross(p.Sub(b.Position)))
}

// ApplyImpulse applies an impulse at a world point, updating linear and
// angular velocity.
func (b *RigidBody) ApplyImpulse(imp, at mgl64.Vec3) {
	if b.Static {
		return
	}
	b.LinVel = b.LinVel.Add(imp.Mul(b.InvMass()))
	r := at.Sub(b.Position)
	b.AngVel = b.AngVel.Add(b.InvInertiaWorld().Mul3x1(r.Cross(imp)))
}

func (b *RigidBody) GeneralizedCoords(dst []float64) []float64 {
	q := b.Orientation
	return append(dst,
		b.Position.X(), b.Position.Y(), b.Position.Z(),
		q.W, q.V.X(), q.V.Y(), q.V.Z())
}

func (b *RigidBody) SetGeneralizedCoords(q []float64) {
	b.Position = mgl64.Vec3{q[0], q[1], q[2]}
	b.Orientation = mgl64.Quat{W: q[3], V: mgl64.Vec3{q[4], q[5], q[6]}}.Normalize()
}

func (b *RigidBody) GeneralizedVelocity(dst []float64) []float64 {
	qd := quatRate(b.AngVel, b.Orientation)
	return append(dst,
		b.LinVel.X(), b.LinVel.Y(), b.LinVel.Z(),
		qd.W, qd.V.X(), qd.V.Y(), qd.V.Z())
}

func (b *RigidBody) SetGeneralizedVelocity(qd []float64) {
	if b.Static {
		return
	}
	b.LinVel = mgl64.Vec3{qd[0], qd[1], qd[2]}
	// ω = 2 q̇ ∘ q*
	rate := mgl64.Quat{W: qd[3], V: mgl64.Vec3{qd[4], qd[5], qd[6]}}
	w := rate.Mul(b.Orientation.Conjugate()).Scale(2)
	b.AngVel = w.V
}

// Derivative evaluates all attached forces and returns the Euler-form
// acceleration [a; q̈].
func (b *RigidBody) Derivative(t, dt float64) []float64 {
	out := make([]float64, 7)
	if b.Static || b.InvMass() == 0 {
		return out
	}
	var force, torque mgl64.Vec3
	for _, f := range b.Forces {
		df, dtq := f.Apply(b, t)
		force = force.Add(df)
		torque = torque.Add(dtq)
	}
	a := force.Mul(b.InvMass())

	// α = I⁻¹(τ − ω×Iω), then q̈ = ½(α∘q + ω∘q̇).
	iw := b.InvInertiaWorld()
	inertiaW := b.Orientation.Mat4().Mat3().
		Mul3(mgl64.Diag3(b.Inertia)).
		Mul3(b.Orientation.Mat4().Mat3().Transpose())
	alpha := iw.Mul3x1(torque.Sub(b.AngVel.Cross(inertiaW.Mul3x1(b.AngVel))))

	alphaQ := mgl64.Quat{V: alpha}.Mul(b.Orientation)
	omegaQ := mgl64.Quat{V: b.AngVel}.Mul(quatRate(b.AngVel, b.Orientation))
	qdd := alphaQ.Add(omegaQ).Scale(0.5)

	out[0], out[1], out[2] = a.X(), a.Y(), a.Z()
	out[3], out[4], out[5], out[6] = qdd.W, qdd.V.X(), qdd.V.Y(), qdd.V.Z()
	return out
}

// quatRate returns q̇ = ½ ω∘q.
func quatRate(w mgl64.Vec3, q mgl64.Quat) mgl64.Quat {
	return mgl64.Quat{V: w}.Mul(q).Scale(0.5)
}

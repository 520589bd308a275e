package body

import "github.com/go-gl/mathgl/mgl64"

// Force contributes a world-frame force and torque to a body during
// derivative evaluation.
type Force interface {
	Apply(b *RigidBody, t float64) (force, torque mgl64.Vec3)
}

// Gravity applies a constant acceleration field.
type Gravity struct {
	Accel mgl64.Vec3
}

func (g Gravity) Apply(b *RigidBody, t float64) (mgl64.Vec3, mgl64.Vec3) {
	return g.Accel.Mul(b.Mass), mgl64.Vec3{}
}

// StokesDrag applies a force proportional to (and opposing) linear
// velocity.
type StokesDrag struct {
	B float64
}

func (d StokesDrag) Apply(b *RigidBody, t float64) (mgl64.Vec3, mgl64.Vec3) {
	return b.LinVel.Mul(-d.B), mgl64.Vec3{}
}

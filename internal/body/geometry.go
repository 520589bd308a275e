package body

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gyaneshwarpardhi/rigidsim/internal/geom"
)

// Geometry is a collision shape attached to a rigid body at a body-frame
// offset.
type Geometry struct {
	ID     string
	Shape  geom.Shape
	Offset mgl64.Vec3

	body *RigidBody
}

// Body returns the rigid body this geometry is attached to.
func (g *Geometry) Body() *RigidBody { return g.body }

// WorldPose returns the geometry pose from the body's current state.
func (g *Geometry) WorldPose() geom.Pose {
	return geom.Pose{
		Position:    g.body.Orientation.Rotate(g.Offset).Add(g.body.Position),
		Orientation: g.body.Orientation,
	}
}

// PoseAt returns the geometry pose for an arbitrary coordinate vector of
// the owning body, without touching body state. Used by detectors to probe
// interval endpoints and interpolated instants.
func (g *Geometry) PoseAt(q []float64) geom.Pose {
	orient := mgl64.Quat{W: q[3], V: mgl64.Vec3{q[4], q[5], q[6]}}.Normalize()
	pos := mgl64.Vec3{q[0], q[1], q[2]}
	return geom.Pose{
		Position:    orient.Rotate(g.Offset).Add(pos),
		Orientation: orient,
	}
}

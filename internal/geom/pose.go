package geom

import "github.com/go-gl/mathgl/mgl64"

// Pose is a rigid transform: rotation followed by translation.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Identity returns the identity pose.
func Identity() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// Transform maps a local point into the world frame.
func (p Pose) Transform(v mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Rotate(v).Add(p.Position)
}

// Rotate maps a local direction into the world frame.
func (p Pose) Rotate(v mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Rotate(v)
}

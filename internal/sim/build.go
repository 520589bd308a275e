package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/collision"
	"github.com/gyaneshwarpardhi/rigidsim/internal/config"
	"github.com/gyaneshwarpardhi/rigidsim/internal/geom"
	"github.com/gyaneshwarpardhi/rigidsim/internal/solver"
)

// FromConfig assembles a simulator from a validated scenario: rigid and
// articulated bodies with their forces and geometries, a swept detector
// over the whole world, the impulse resolver, and the declared contact
// parameters.
func FromConfig(cfg *config.Scenario) (*Simulator, error) {
	gravity := mgl64.Vec3{cfg.Gravity[0], cfg.Gravity[1], cfg.Gravity[2]}

	rigid := make(map[string]*body.RigidBody, len(cfg.Bodies))
	var bodies []body.Body
	for _, def := range cfg.Bodies {
		rb := body.NewRigidBody(def.ID, def.Mass)
		rb.Static = def.Static
		rb.Position = mgl64.Vec3{def.Position[0], def.Position[1], def.Position[2]}
		rb.LinVel = mgl64.Vec3{def.Velocity[0], def.Velocity[1], def.Velocity[2]}
		rb.AngVel = mgl64.Vec3{def.AngularVelocity[0], def.AngularVelocity[1], def.AngularVelocity[2]}
		if def.Inertia != [3]float64{} {
			rb.Inertia = mgl64.Vec3{def.Inertia[0], def.Inertia[1], def.Inertia[2]}
		}
		if !rb.Static {
			rb.Forces = append(rb.Forces, body.Gravity{Accel: gravity})
			if cfg.Drag > 0 {
				rb.Forces = append(rb.Forces, body.StokesDrag{B: cfg.Drag})
			}
		}
		for _, gd := range def.Geometries {
			shape, err := buildShape(gd)
			if err != nil {
				return nil, fmt.Errorf("body %s: %w", def.ID, err)
			}
			rb.AddGeometry(&body.Geometry{
				ID:     gd.ID,
				Shape:  shape,
				Offset: mgl64.Vec3{gd.Offset[0], gd.Offset[1], gd.Offset[2]},
			})
		}
		rigid[def.ID] = rb
		bodies = append(bodies, rb)
	}

	for _, def := range cfg.Articulated {
		joints := make([]*body.Joint, len(def.Joints))
		for i, jd := range def.Joints {
			joints[i] = &body.Joint{
				ID:          jd.ID,
				Lower:       jd.Lower,
				Upper:       jd.Upper,
				Restitution: jd.Restitution,
			}
		}
		ab := body.NewArticulated(def.ID, joints)
		ab.Damping = def.Damping
		for _, link := range def.Links {
			rb, ok := rigid[link]
			if !ok {
				return nil, fmt.Errorf("articulated %s: unknown link body %q", def.ID, link)
			}
			ab.AddLink(rb)
		}
		q := make([]float64, len(def.Joints))
		qd := make([]float64, len(def.Joints))
		for i, jd := range def.Joints {
			q[i] = jd.Position
			qd[i] = jd.Velocity
		}
		ab.SetGeneralizedCoords(q)
		ab.SetGeneralizedVelocity(qd)
		bodies = append(bodies, ab)
	}

	det := collision.NewSweptDetector(bodies)
	if cfg.Engine.ContactThreshold > 0 {
		det.Threshold = cfg.Engine.ContactThreshold
	}

	s := New(cfg.Engine, bodies, []collision.Detector{det}, solver.NewImpulseResolver())
	s.SwapParams(cfg.ContactParams)
	return s, nil
}

func buildShape(gd config.GeometryDef) (geom.Shape, error) {
	switch gd.Shape {
	case "sphere":
		return &geom.Sphere{Radius: gd.Radius}, nil
	case "plane":
		return &geom.Plane{}, nil
	case "torus":
		return &geom.Torus{MajorRadius: gd.MajorRadius, MinorRadius: gd.MinorRadius}, nil
	default:
		return nil, fmt.Errorf("geometry %s: unknown shape %q", gd.ID, gd.Shape)
	}
}

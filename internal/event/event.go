// Package event defines the discrete mechanical occurrences detected inside
// a time increment: contact initiations, joint-limit engagements, and
// general constraint activations.
package event

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/geom"
)

// DefaultTolerance classifies events whose identity has no learned
// tolerance yet.
const DefaultTolerance = 1e-6

// Type discriminates the payload groups of an Event.
type Type int

const (
	TypeNone Type = iota
	TypeContact
	TypeLimit
	TypeConstraint
)

func (t Type) String() string {
	switch t {
	case TypeContact:
		return "contact"
	case TypeLimit:
		return "limit"
	case TypeConstraint:
		return "constraint"
	}
	return "none"
}

// Class is the kinematic classification of an event relative to its
// tolerance.
type Class int

const (
	ClassUndetermined Class = iota
	ClassSeparating
	ClassResting
	ClassImpacting
)

func (c Class) String() string {
	switch c {
	case ClassSeparating:
		return "separating"
	case ClassResting:
		return "resting"
	case ClassImpacting:
		return "impacting"
	}
	return "undetermined"
}

// Wrench is an accumulated impulse: a force and the torque it induces
// about the first body's frame.
type Wrench struct {
	Force  mgl64.Vec3
	Torque mgl64.Vec3
}

// Event describes one discrete occurrence within a step interval. Exactly
// one payload group is meaningful, selected by Type. Events are created
// fresh by detectors each interval, mutated in place during classification
// and resolution, and discarded at step end; only the tolerance learned
// for a recurring identity outlives them.
type Event struct {
	Type Type

	// T is the normalized time of occurrence within the interval [0,1].
	T float64
	// TTrue is the absolute simulation time of occurrence.
	TTrue float64
	// Tol is the classification tolerance: the learned value for this
	// event's identity if one exists, else DefaultTolerance.
	Tol float64

	// Contact payload.
	Geom1, Geom2  *body.Geometry
	Point         mgl64.Vec3
	Normal        mgl64.Vec3 // outward from the second body toward the first
	Tan1, Tan2    mgl64.Vec3
	MuCoulomb     float64
	MuViscous     float64
	Restitution   float64
	FrictionEdges int
	Impulse       Wrench

	// Limit payload.
	Joint            *body.Joint
	LimitUpper       bool
	LimitRestitution float64
	LimitImpulse     float64

	// Constraint payload.
	ConstraintJoint    *body.Joint
	ConstraintJacobian []float64
	NormalImpulse      []float64
	FrictionImpulse    []float64
}

// Less orders events by occurrence time only. The order is total for
// sorting purposes but says nothing about identity.
func Less(a, b *Event) bool { return a.T < b.T }

// Velocity returns the signed relative velocity along the event's
// constraint direction. Negative means approaching.
func (e *Event) Velocity() float64 {
	switch e.Type {
	case TypeContact:
		v1 := e.Geom1.Body().VelocityAt(e.Point)
		v2 := e.Geom2.Body().VelocityAt(e.Point)
		return v1.Sub(v2).Dot(e.Normal)
	case TypeLimit:
		qd := e.Joint.Velocity()
		if e.LimitUpper {
			return -qd
		}
		return qd
	case TypeConstraint:
		qd := e.ConstraintJoint.Parent().GeneralizedVelocity(nil)
		var v float64
		for i := range e.ConstraintJacobian {
			v += e.ConstraintJacobian[i] * qd[i]
		}
		return v
	}
	return 0
}

// Class classifies the event from its current relative velocity. The
// resting boundary is inclusive on both sides, so a recurring contact
// sitting exactly at tolerance does not oscillate between classes.
func (e *Event) Class() Class {
	if e.Type == TypeNone {
		return ClassUndetermined
	}
	tol := e.Tol
	if tol == 0 {
		tol = DefaultTolerance
	}
	v := e.Velocity()
	switch {
	case v > tol:
		return ClassSeparating
	case v < -tol:
		return ClassImpacting
	default:
		return ClassResting
	}
}

func (e *Event) IsImpacting() bool  { return e.Class() == ClassImpacting }
func (e *Event) IsResting() bool    { return e.Class() == ClassResting }
func (e *Event) IsSeparating() bool { return e.Class() == ClassSeparating }

// DetermineTangents builds the two tangent directions orthogonal to the
// contact normal. A degenerate normal is replaced by the library fallback
// direction rather than propagated.
func (e *Event) DetermineTangents() {
	if e.Normal.Len() <= geom.NearZero {
		e.Normal = geom.FallbackNormal
	}
	e.Tan1 = geom.Orthonormal(e.Normal)
	e.Tan2 = e.Normal.Cross(e.Tan1)
}

// superBodyKeys returns the identities of the super-bodies an event
// touches: the articulated parent when a rigid body is a mechanism link,
// else the rigid body itself.
func (e *Event) superBodyKeys() []string {
	switch e.Type {
	case TypeContact:
		return []string{superKey(e.Geom1.Body()), superKey(e.Geom2.Body())}
	case TypeLimit:
		return []string{e.Joint.Parent().ID()}
	case TypeConstraint:
		return []string{e.ConstraintJoint.Parent().ID()}
	}
	return nil
}

func superKey(b *body.RigidBody) string {
	if b.Parent != nil {
		return b.Parent.ID()
	}
	return b.ID()
}

func (e *Event) String() string {
	switch e.Type {
	case TypeContact:
		return fmt.Sprintf("contact(%s,%s) t=%g v=%g", e.Geom1.ID, e.Geom2.ID, e.T, e.Velocity())
	case TypeLimit:
		side := "lower"
		if e.LimitUpper {
			side = "upper"
		}
		return fmt.Sprintf("limit(%s,%s) t=%g v=%g", e.Joint.ID, side, e.T, e.Velocity())
	case TypeConstraint:
		return fmt.Sprintf("constraint(%s) t=%g", e.ConstraintJoint.ID, e.T)
	}
	return "none"
}

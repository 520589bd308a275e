package body

// Joint is one limited degree of freedom of an articulated body.
type Joint struct {
	ID          string
	Index       int
	Lower       float64
	Upper       float64
	Restitution float64

	parent *Articulated
}

// Parent returns the articulated body owning this joint.
func (j *Joint) Parent() *Articulated { return j.parent }

// Position returns the current joint coordinate.
func (j *Joint) Position() float64 { return j.parent.q[j.Index] }

// Velocity returns the current joint velocity.
func (j *Joint) Velocity() float64 { return j.parent.qd[j.Index] }

// SetVelocity overwrites the current joint velocity.
func (j *Joint) SetVelocity(v float64) { j.parent.qd[j.Index] = v }

// LimitCrossing records a joint coordinate crossing one of its limits
// within a normalized interval.
type LimitCrossing struct {
	Joint *Joint
	Upper bool
	T     float64
}

// Articulated is a body whose generalized coordinates are its joint
// positions. Links are the rigid bodies making up the mechanism; they
// carry the collision geometry while the articulated body contributes
// joint-limit events.
type Articulated struct {
	id      string
	Joints  []*Joint
	Links   []*RigidBody
	Damping float64

	q, qd []float64
}

// NewArticulated creates an articulated body with n joints at zero
// position and velocity.
func NewArticulated(id string, joints []*Joint) *Articulated {
	a := &Articulated{
		id:     id,
		Joints: joints,
		q:      make([]float64, len(joints)),
		qd:     make([]float64, len(joints)),
	}
	for i, j := range joints {
		j.Index = i
		j.parent = a
	}
	return a
}

// AddLink registers a rigid link as part of this mechanism.
func (a *Articulated) AddLink(b *RigidBody) {
	b.Parent = a
	a.Links = append(a.Links, b)
}

func (a *Articulated) ID() string     { return a.id }
func (a *Articulated) NumCoords() int { return len(a.Joints) }

func (a *Articulated) GeneralizedCoords(dst []float64) []float64 {
	return append(dst, a.q...)
}

func (a *Articulated) SetGeneralizedCoords(q []float64) {
	copy(a.q, q)
}

func (a *Articulated) GeneralizedVelocity(dst []float64) []float64 {
	return append(dst, a.qd...)
}

func (a *Articulated) SetGeneralizedVelocity(qd []float64) {
	copy(a.qd, qd)
}

// Derivative applies joint-space viscous damping.
func (a *Articulated) Derivative(t, dt float64) []float64 {
	out := make([]float64, len(a.qd))
	for i, v := range a.qd {
		out[i] = -a.Damping * v
	}
	return out
}

// FindLimitCrossings scans each joint coordinate between the interval
// endpoints q0 and q1 and reports the earliest limit crossed per joint,
// with the crossing time normalized to [0,1]. A coordinate already at or
// past a limit at the interval start reports t=0.
func (a *Articulated) FindLimitCrossings(q0, q1 []float64) []LimitCrossing {
	var out []LimitCrossing
	for i, j := range a.Joints {
		x0, x1 := q0[i], q1[i]
		if x1 > x0 && x1 >= j.Upper {
			out = append(out, LimitCrossing{Joint: j, Upper: true, T: crossTime(x0, x1, j.Upper)})
		} else if x1 < x0 && x1 <= j.Lower {
			out = append(out, LimitCrossing{Joint: j, Upper: false, T: crossTime(x0, x1, j.Lower)})
		}
	}
	return out
}

// crossTime returns the normalized time the linear motion x0→x1 reaches
// the limit, clamped to [0,1].
func crossTime(x0, x1, limit float64) float64 {
	if x1 == x0 {
		return 0
	}
	t := (limit - x0) / (x1 - x0)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

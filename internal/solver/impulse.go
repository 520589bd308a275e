package solver

import (
	"github.com/gyaneshwarpardhi/rigidsim/internal/event"
)

// ImpulseResolver applies restitution-based normal impulses at impacting
// contacts and reflects joint velocities at impacting limits. Before
// resolving it partitions events into connected groups, drops groups with
// no impacting member, and reduces coplanar contact manifolds to their
// minimal subsets. Resolution cost and conditioning scale with the
// simultaneous-contact count, so fewer contacts is strictly better.
type ImpulseResolver struct{}

// NewImpulseResolver returns the library-default resolver.
func NewImpulseResolver() *ImpulseResolver { return &ImpulseResolver{} }

// Process resolves the event set in place and reports whether every
// processed event ended with an admissible velocity.
func (r *ImpulseResolver) Process(events []*event.Event) Result {
	groups := event.RemoveNonimpacting(event.ConnectedGroups(events))

	var processed []*event.Event
	for _, g := range groups {
		for _, e := range event.ReduceMinimal(g) {
			if e.IsImpacting() {
				r.resolve(e)
			}
			processed = append(processed, e)
		}
	}

	var offenders []*event.Event
	for _, e := range processed {
		if e.IsImpacting() {
			offenders = append(offenders, e)
		}
	}
	if len(offenders) > 0 {
		return Result{Status: NeedsRetry, Retry: offenders}
	}
	return Result{Status: Resolved}
}

func (r *ImpulseResolver) resolve(e *event.Event) {
	switch e.Type {
	case event.TypeContact:
		r.resolveContact(e)
	case event.TypeLimit:
		r.resolveLimit(e)
	}
	// Constraint impulses are the LCP collaborator's concern; nothing to
	// apply here.
}

func (r *ImpulseResolver) resolveContact(e *event.Event) {
	a := e.Geom1.Body()
	b := e.Geom2.Body()

	// Effective mass along the normal, including the angular terms.
	k := a.InvMass() + b.InvMass()
	ra := e.Point.Sub(a.Position)
	rb := e.Point.Sub(b.Position)
	raxn := ra.Cross(e.Normal)
	rbxn := rb.Cross(e.Normal)
	k += a.InvInertiaWorld().Mul3x1(raxn).Cross(ra).Dot(e.Normal)
	k += b.InvInertiaWorld().Mul3x1(rbxn).Cross(rb).Dot(e.Normal)
	if k <= 0 {
		return
	}

	v := e.Velocity()
	j := -(1 + e.Restitution) * v / k
	if j <= 0 {
		return
	}
	imp := e.Normal.Mul(j)
	a.ApplyImpulse(imp, e.Point)
	b.ApplyImpulse(imp.Mul(-1), e.Point)

	e.Impulse.Force = e.Impulse.Force.Add(imp)
	e.Impulse.Torque = e.Impulse.Torque.Add(ra.Cross(imp))
}

func (r *ImpulseResolver) resolveLimit(e *event.Event) {
	j := e.Joint
	v := e.Velocity()
	// Unit joint-space inertia: the impulse equals the velocity change
	// along the constraint direction.
	dv := -(1 + e.LimitRestitution) * v
	if dv <= 0 {
		return
	}
	dir := 1.0
	if e.LimitUpper {
		dir = -1.0
	}
	j.SetVelocity(j.Velocity() + dir*dv)
	e.LimitImpulse += dv
}

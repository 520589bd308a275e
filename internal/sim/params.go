package sim

import (
	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/config"
)

// ContactParams are the material parameters applied to a contact event.
type ContactParams struct {
	MuCoulomb     float64
	MuViscous     float64
	Restitution   float64
	FrictionEdges int
}

// DefaultContactParams is used when no declared parameters match a pair at
// any granularity.
var DefaultContactParams = ContactParams{FrictionEdges: 4}

type pairKey [2]string

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// ParamTable resolves contact parameters for a geometry pair. Parameters
// may be declared between any mix of geometry, rigid-body, and
// articulated-body identities; lookup proceeds from the most specific
// granularity to the least, first match wins:
//
//  1. geometry / geometry
//  2. geometry / rigid body
//  3. rigid body / rigid body
//  4. geometry / articulated body
//  5. rigid body / articulated body
//  6. articulated body / articulated body
type ParamTable struct {
	m map[pairKey]ContactParams
}

// NewParamTable builds a table from config declarations.
func NewParamTable(defs []config.ContactParamsDef) *ParamTable {
	t := &ParamTable{m: make(map[pairKey]ContactParams, len(defs))}
	for _, d := range defs {
		p := ContactParams{
			MuCoulomb:     d.MuCoulomb,
			MuViscous:     d.MuViscous,
			Restitution:   d.Restitution,
			FrictionEdges: d.FrictionEdges,
		}
		if p.FrictionEdges == 0 {
			p.FrictionEdges = DefaultContactParams.FrictionEdges
		}
		t.m[keyOf(d.A, d.B)] = p
	}
	return t
}

// Resolve finds the parameters for a contact between two geometries. The
// second return is false when nothing matched and the caller should fall
// back to DefaultContactParams.
func (t *ParamTable) Resolve(g1, g2 *body.Geometry) (ContactParams, bool) {
	b1, b2 := g1.Body(), g2.Body()
	var a1, a2 string
	if b1.Parent != nil {
		a1 = b1.Parent.ID()
	}
	if b2.Parent != nil {
		a2 = b2.Parent.ID()
	}

	if p, ok := t.lookup(g1.ID, g2.ID); ok {
		return p, true
	}
	if p, ok := t.lookup(g1.ID, b2.ID()); ok {
		return p, true
	}
	if p, ok := t.lookup(g2.ID, b1.ID()); ok {
		return p, true
	}
	if p, ok := t.lookup(b1.ID(), b2.ID()); ok {
		return p, true
	}
	if a2 != "" {
		if p, ok := t.lookup(g1.ID, a2); ok {
			return p, true
		}
	}
	if a1 != "" {
		if p, ok := t.lookup(g2.ID, a1); ok {
			return p, true
		}
	}
	if a2 != "" {
		if p, ok := t.lookup(b1.ID(), a2); ok {
			return p, true
		}
	}
	if a1 != "" {
		if p, ok := t.lookup(b2.ID(), a1); ok {
			return p, true
		}
	}
	if a1 != "" && a2 != "" {
		if p, ok := t.lookup(a1, a2); ok {
			return p, true
		}
	}
	return DefaultContactParams, false
}

func (t *ParamTable) lookup(a, b string) (ContactParams, bool) {
	p, ok := t.m[keyOf(a, b)]
	return p, ok
}

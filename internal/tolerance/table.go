// Package tolerance maintains the adaptive mapping from recurring event
// identity to a learned velocity tolerance. Entries are written only when
// impulse resolution reports an inadmissible post-resolution velocity and
// are read whenever a new candidate event of matching identity is built,
// preventing recurring near-threshold contacts from oscillating between
// classes.
package tolerance

import (
	"container/list"
	"math"

	"github.com/gyaneshwarpardhi/rigidsim/internal/event"
)

// DefaultCapacity bounds the table when no size is configured.
const DefaultCapacity = 4096

// Identity names a recurring event independent of the transient Event
// object: a contact geometry pair (order-independent) or a joint side.
type Identity struct {
	Kind  event.Type
	A, B  string
	Upper bool
}

// IdentityOf derives the identity for an event. The second return is false
// for events without a stable identity.
func IdentityOf(e *event.Event) (Identity, bool) {
	switch e.Type {
	case event.TypeContact:
		a, b := e.Geom1.ID, e.Geom2.ID
		if b < a {
			a, b = b, a
		}
		return Identity{Kind: event.TypeContact, A: a, B: b}, true
	case event.TypeLimit:
		return Identity{Kind: event.TypeLimit, A: e.Joint.ID, Upper: e.LimitUpper}, true
	case event.TypeConstraint:
		return Identity{Kind: event.TypeConstraint, A: e.ConstraintJoint.ID}, true
	}
	return Identity{}, false
}

type entry struct {
	id  Identity
	tol float64
}

// Table is an LRU-bounded tolerance store. It is not safe for concurrent
// use; the stepping contract is single-threaded.
type Table struct {
	capacity int
	order    *list.List
	index    map[Identity]*list.Element
}

// NewTable creates a table bounded to the given capacity; non-positive
// capacities fall back to DefaultCapacity.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[Identity]*list.Element),
	}
}

// Lookup returns the learned tolerance for an identity, marking it
// recently used.
func (t *Table) Lookup(id Identity) (float64, bool) {
	el, ok := t.index[id]
	if !ok {
		return 0, false
	}
	t.order.MoveToFront(el)
	return el.Value.(*entry).tol, true
}

// Learn records |measured| plus one machine epsilon as the tolerance for
// an identity, so that a later event of the same identity with velocity
// magnitude up to the measurement classifies resting. Never shrinks an
// existing tolerance.
func (t *Table) Learn(id Identity, measured float64) float64 {
	tol := math.Abs(measured) + machineEpsilon
	if el, ok := t.index[id]; ok {
		e := el.Value.(*entry)
		if tol > e.tol {
			e.tol = tol
		}
		t.order.MoveToFront(el)
		return e.tol
	}
	if t.order.Len() >= t.capacity {
		oldest := t.order.Back()
		t.order.Remove(oldest)
		delete(t.index, oldest.Value.(*entry).id)
	}
	t.index[id] = t.order.PushFront(&entry{id: id, tol: tol})
	return tol
}

// Len returns the number of learned identities.
func (t *Table) Len() int { return t.order.Len() }

var machineEpsilon = math.Nextafter(1, 2) - 1

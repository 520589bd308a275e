package geom

// Kind identifies a shape variant. Signed-distance routines are selected by
// kind pair through an explicit dispatch table (see distance.go) rather than
// by runtime type inspection.
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindTorus
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindTorus:
		return "torus"
	}
	return "unknown"
}

// Shape is one collision shape variant in its local frame.
type Shape interface {
	Kind() Kind
	// BoundingRadius returns the radius of a sphere centered at the local
	// origin that encloses the shape. Unbounded shapes report +Inf.
	BoundingRadius() float64
}

// Sphere is a solid sphere centered at the local origin.
type Sphere struct {
	Radius float64
}

func (s *Sphere) Kind() Kind              { return KindSphere }
func (s *Sphere) BoundingRadius() float64 { return s.Radius }

// Plane is the half-space boundary z <= 0 in the local frame; the outward
// normal is local +Z.
type Plane struct{}

func (p *Plane) Kind() Kind              { return KindPlane }
func (p *Plane) BoundingRadius() float64 { return inf }

// Torus is a solid torus around the local +Z axis.
type Torus struct {
	MajorRadius float64
	MinorRadius float64
}

func (t *Torus) Kind() Kind              { return KindTorus }
func (t *Torus) BoundingRadius() float64 { return t.MajorRadius + t.MinorRadius }

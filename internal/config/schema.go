package config

// Scenario is the top-level YAML structure describing a simulation world.
type Scenario struct {
	Version       string             `yaml:"version"`
	Engine        EngineConf         `yaml:"engine"`
	Gravity       [3]float64         `yaml:"gravity"`
	Drag          float64            `yaml:"drag"`
	Bodies        []BodyDef          `yaml:"bodies"`
	Articulated   []ArticulatedDef   `yaml:"articulated"`
	ContactParams []ContactParamsDef `yaml:"contact_params"`
}

// EngineConf holds the stepping-kernel tunables.
type EngineConf struct {
	// DefaultTolerance classifies events whose identity has no learned
	// tolerance yet.
	DefaultTolerance float64 `yaml:"default_tolerance"`
	// TOIEpsilon groups events whose normalized times differ by at most
	// this fixed constant into one simultaneous set.
	TOIEpsilon float64 `yaml:"toi_epsilon"`
	// ContactThreshold is the signed distance at which the swept detector
	// reports contact.
	ContactThreshold float64 `yaml:"contact_threshold"`
	// MaxImpactRetries bounds the tolerance-learning retry loop per
	// resolved event set.
	MaxImpactRetries int `yaml:"max_impact_retries"`
	// ToleranceTableSize bounds the learned-tolerance LRU.
	ToleranceTableSize int `yaml:"tolerance_table_size"`
	// DetectorWorkers >1 fans detector invocations out over goroutines.
	DetectorWorkers int `yaml:"detector_workers"`
}

// BodyDef declares a rigid body.
type BodyDef struct {
	ID              string        `yaml:"id"`
	Mass            float64       `yaml:"mass"`
	Static          bool          `yaml:"static"`
	Position        [3]float64    `yaml:"position"`
	Velocity        [3]float64    `yaml:"velocity"`
	AngularVelocity [3]float64    `yaml:"angular_velocity"`
	Inertia         [3]float64    `yaml:"inertia"` // principal moments; zero = sphere-like default
	Geometries      []GeometryDef `yaml:"geometries"`
}

// GeometryDef declares one collision shape on a body. Shape selects the
// variant; only that variant's dimension fields apply.
type GeometryDef struct {
	ID          string     `yaml:"id"`
	Shape       string     `yaml:"shape"` // sphere | plane | torus
	Radius      float64    `yaml:"radius"`
	MajorRadius float64    `yaml:"major_radius"`
	MinorRadius float64    `yaml:"minor_radius"`
	Offset      [3]float64 `yaml:"offset"`
}

// ArticulatedDef declares an articulated body: joint coordinates with
// limits, plus the rigid links carrying its collision geometry.
type ArticulatedDef struct {
	ID      string     `yaml:"id"`
	Links   []string   `yaml:"links"` // ids of rigid bodies
	Damping float64    `yaml:"damping"`
	Joints  []JointDef `yaml:"joints"`
}

// JointDef declares one limited degree of freedom.
type JointDef struct {
	ID          string  `yaml:"id"`
	Position    float64 `yaml:"position"`
	Velocity    float64 `yaml:"velocity"`
	Lower       float64 `yaml:"lower"`
	Upper       float64 `yaml:"upper"`
	Restitution float64 `yaml:"restitution"`
}

// ContactParamsDef assigns material parameters to a pair of identities at
// any granularity: geometry, body, or articulated-body ids.
type ContactParamsDef struct {
	A             string  `yaml:"a"`
	B             string  `yaml:"b"`
	MuCoulomb     float64 `yaml:"mu_coulomb"`
	MuViscous     float64 `yaml:"mu_viscous"`
	Restitution   float64 `yaml:"restitution"`
	FrictionEdges int     `yaml:"friction_edges"`
}

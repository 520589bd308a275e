package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_steps_total",
		Help: "Total number of completed Step calls.",
	})

	SubstepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_substeps_total",
		Help: "Total number of event-truncated sub-steps taken inside Step calls.",
	})

	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rigidsim_events_processed_total",
		Help: "Total number of events passed to the impact resolver, labelled by type.",
	}, []string{"type"})

	ImpactRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_impact_retries_total",
		Help: "Total number of tolerance-learning retries of the impact resolver.",
	})

	MissingContactParams = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_missing_contact_params_total",
		Help: "Total number of contact pairs resolved with library-default parameters.",
	})

	InterpenetrationWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_interpenetration_warnings_total",
		Help: "Total number of runs flagged for interpenetrating start states.",
	})

	ZenoSubsteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_zeno_substeps_total",
		Help: "Total number of sub-steps with a vanishing time advance.",
	})

	StepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rigidsim_step_duration_seconds",
		Help:    "Wall-clock duration of Step calls.",
		Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
	})

	// Per-phase time split, mirroring the dynamics / collision detection /
	// event handling tabulation of classical event-driven steppers.
	DynamicsSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_dynamics_seconds_total",
		Help: "Cumulative time spent integrating body dynamics.",
	})

	CollisionSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_collision_seconds_total",
		Help: "Cumulative time spent in collision detector invocations.",
	})

	ResolutionSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rigidsim_resolution_seconds_total",
		Help: "Cumulative time spent resolving impact event sets.",
	})

	ToleranceEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rigidsim_tolerance_entries",
		Help: "Current number of learned event-tolerance identities.",
	})
)

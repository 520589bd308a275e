// Package sim contains the event-driven time-stepping engine: the step
// driver that provisionally integrates bodies over a candidate interval,
// the event-set builder that merges detector output, and the time-of-impact
// locator that finds the earliest instant an impact becomes unavoidable.
package sim

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/collision"
	"github.com/gyaneshwarpardhi/rigidsim/internal/config"
	"github.com/gyaneshwarpardhi/rigidsim/internal/event"
	"github.com/gyaneshwarpardhi/rigidsim/internal/metrics"
	"github.com/gyaneshwarpardhi/rigidsim/internal/solver"
	"github.com/gyaneshwarpardhi/rigidsim/internal/tolerance"
)

// zenoFraction flags sub-steps whose advance is a vanishing share of the
// requested increment. Flagging is observational only: there is no
// enforced cutoff, and a genuine Zeno point ends when the advance
// underflows to zero progress.
const zenoFraction = 1e-12

// Hooks are optional instrumentation callbacks fired at well-defined
// points of a step. None are required for correctness.
type Hooks struct {
	// PreEvent fires with the resolved event set before impulses apply.
	PreEvent func([]*event.Event)
	// PostImpulse fires with the event set after impulse resolution.
	PostImpulse func([]*event.Event)
	// PostSubstep fires after each event-truncated sub-step.
	PostSubstep func(*Simulator)
	// PostStep fires once at the end of every Step call.
	PostStep func(*Simulator)
}

// Simulator advances a set of bodies through time, detecting and resolving
// the discrete events occurring inside each increment. A Simulator is
// single-threaded: one Step call runs to completion and owns all body
// state for its duration.
type Simulator struct {
	conf      config.EngineConf
	bodies    []body.Body
	detectors []collision.Detector
	resolver  solver.Resolver

	tolerances *tolerance.Table
	params     atomic.Pointer[ParamTable]

	Hooks Hooks

	currentTime float64
	events      []*event.Event
	violated    bool
	warnedPairs map[pairKey]struct{}

	// Interval snapshots: start coordinates, end coordinates, and the
	// end-of-interval velocities every sub-interval root search reuses.
	// Velocities are computed once per nominal step and never re-derived
	// mid-search; that constant-velocity assumption keeps the search
	// well-posed.
	q0, qf, qdf [][]float64
}

// New creates a simulator over the given bodies, detectors, and resolver.
func New(conf config.EngineConf, bodies []body.Body, detectors []collision.Detector, res solver.Resolver) *Simulator {
	s := &Simulator{
		conf:        conf,
		bodies:      bodies,
		detectors:   detectors,
		resolver:    res,
		tolerances:  tolerance.NewTable(conf.ToleranceTableSize),
		warnedPairs: make(map[pairKey]struct{}),
		q0:          make([][]float64, len(bodies)),
		qf:          make([][]float64, len(bodies)),
		qdf:         make([][]float64, len(bodies)),
	}
	s.params.Store(NewParamTable(nil))
	return s
}

// SwapParams atomically replaces the contact-parameter table (used on
// scenario hot-reload).
func (s *Simulator) SwapParams(defs []config.ContactParamsDef) {
	s.params.Store(NewParamTable(defs))
}

// CurrentTime returns the absolute simulation time.
func (s *Simulator) CurrentTime() float64 { return s.currentTime }

// Bodies returns the simulated bodies.
func (s *Simulator) Bodies() []body.Body { return s.bodies }

// Events returns a copy of the most recently resolved event set.
func (s *Simulator) Events() []*event.Event {
	out := make([]*event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Tolerances exposes the learned-tolerance table.
func (s *Simulator) Tolerances() *tolerance.Table { return s.tolerances }

// Violated reports whether interpenetration was detected this run.
func (s *Simulator) Violated() bool { return s.violated }

// Step advances the simulation by dt, truncating at and resolving every
// impacting event inside the increment. It always advances exactly dt of
// simulated time and returns dt; a failed or imperfect resolution degrades
// fidelity, never the time contract.
func (s *Simulator) Step(dt float64) float64 {
	start := time.Now()
	remaining := dt

	s.snapshotCoords(&s.q0)

	t0 := time.Now()
	s.integrateSemiImplicit(remaining)
	metrics.DynamicsSeconds.Add(time.Since(t0).Seconds())

	s.snapshotCoords(&s.qf)
	s.snapshotVelocities(&s.qdf)

	zenoWarned := false
	for remaining > 0 {
		h := s.findAndHandleEvents(remaining)
		if h > remaining {
			// No event inside the remainder; provisional end state stands.
			break
		}
		remaining -= h
		metrics.SubstepsTotal.Inc()
		slog.Debug("sub-step",
			"time", s.currentTime, "advance", h,
			"remaining", remaining, "events", len(s.events))
		if h <= dt*zenoFraction {
			metrics.ZenoSubsteps.Inc()
			if !zenoWarned {
				slog.Warn("vanishing sub-step advance; possible Zeno point",
					"time", s.currentTime, "advance", h)
				zenoWarned = true
			}
		}
		if s.Hooks.PostSubstep != nil {
			s.Hooks.PostSubstep(s)
		}

		// Impulses changed velocities; refresh them and re-derive the
		// shortened interval's end positions linearly.
		s.snapshotVelocities(&s.qdf)
		for i := range s.qf {
			for k := range s.qf[i] {
				s.qf[i][k] = s.q0[i][k] + s.qdf[i][k]*remaining
			}
		}
	}

	if s.Hooks.PostStep != nil {
		s.Hooks.PostStep(s)
	}
	metrics.StepsTotal.Inc()
	metrics.StepDuration.Observe(time.Since(start).Seconds())
	return dt
}

// findAndHandleEvents searches the remaining sub-interval for events,
// advances bodies to the earliest impact (or the interval end), and
// resolves the impacting set. Returns the advance h, or the no-event
// sentinel (+Inf).
func (s *Simulator) findAndHandleEvents(dt float64) float64 {
	if !s.violated {
		s.checkViolation()
	}
	s.events = s.findEvents(dt)
	h := s.findTOI(dt)
	if h < dt {
		s.handleEvents()
	}
	return h
}

// handleEvents preprocesses the resolved event set and drives the impact
// resolver, learning tolerances and retrying the same set when resolution
// reports inadmissible post-resolution velocities.
func (s *Simulator) handleEvents() {
	if s.Hooks.PreEvent != nil {
		s.Hooks.PreEvent(s.events)
	}

	params := s.params.Load()
	for _, e := range s.events {
		metrics.EventsProcessed.WithLabelValues(e.Type.String()).Inc()
		if e.Type != event.TypeContact {
			continue
		}
		p, ok := params.Resolve(e.Geom1, e.Geom2)
		if !ok {
			k := keyOf(e.Geom1.ID, e.Geom2.ID)
			if _, warned := s.warnedPairs[k]; !warned {
				s.warnedPairs[k] = struct{}{}
				slog.Warn("no contact parameters for pair, using defaults",
					"geom1", e.Geom1.ID, "geom2", e.Geom2.ID)
				metrics.MissingContactParams.Inc()
			}
		}
		e.MuCoulomb = p.MuCoulomb
		e.MuViscous = p.MuViscous
		e.Restitution = p.Restitution
		e.FrictionEdges = p.FrictionEdges
		e.DetermineTangents()
	}

	t0 := time.Now()
	for attempt := 0; ; attempt++ {
		res := s.resolver.Process(s.events)
		if res.Status == solver.Resolved {
			break
		}
		for _, ev := range res.Retry {
			if id, ok := tolerance.IdentityOf(ev); ok {
				ev.Tol = s.tolerances.Learn(id, ev.Velocity())
			}
		}
		metrics.ImpactRetries.Inc()
		if attempt+1 >= s.conf.MaxImpactRetries {
			slog.Warn("impact resolution retries exhausted",
				"time", s.currentTime, "offenders", len(res.Retry))
			break
		}
	}
	metrics.ResolutionSeconds.Add(time.Since(t0).Seconds())
	metrics.ToleranceEntries.Set(float64(s.tolerances.Len()))

	if s.Hooks.PostImpulse != nil {
		s.Hooks.PostImpulse(s.events)
	}
}

// checkViolation verifies the precondition that bodies are not already
// interpenetrating. It inspects the provisional end-of-interval
// coordinates, so the flag can fire for a state that a subsequent
// event truncation never commits. A violation is reported once per run;
// the simulation continues with reduced fidelity guarantees.
func (s *Simulator) checkViolation() {
	for _, d := range s.detectors {
		if d.IsCollision(0) {
			slog.Warn("interpenetrating geometries detected; simulation fidelity no longer assured",
				"time", s.currentTime)
			metrics.InterpenetrationWarnings.Inc()
			s.violated = true
			return
		}
	}
}

// integrateSemiImplicit advances every body over dt: velocities first from
// the body's derivative, then positions from the updated velocities.
func (s *Simulator) integrateSemiImplicit(dt float64) {
	for _, b := range s.bodies {
		dqd := b.Derivative(s.currentTime, dt)
		qd := b.GeneralizedVelocity(nil)
		for i := range qd {
			qd[i] += dqd[i] * dt
		}
		b.SetGeneralizedVelocity(qd)

		q := b.GeneralizedCoords(nil)
		qd = b.GeneralizedVelocity(qd[:0])
		for i := range q {
			q[i] += qd[i] * dt
		}
		b.SetGeneralizedCoords(q)
	}
}

func (s *Simulator) snapshotCoords(dst *[][]float64) {
	for i, b := range s.bodies {
		(*dst)[i] = b.GeneralizedCoords((*dst)[i][:0])
	}
}

func (s *Simulator) snapshotVelocities(dst *[][]float64) {
	for i, b := range s.bodies {
		(*dst)[i] = b.GeneralizedVelocity((*dst)[i][:0])
	}
}

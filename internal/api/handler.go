package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/rigidsim/internal/body"
	"github.com/gyaneshwarpardhi/rigidsim/internal/config"
	"github.com/gyaneshwarpardhi/rigidsim/internal/sim"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	sim    *sim.Simulator
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes. The simulator is
// inspected read-only; only contact parameters can be changed at runtime.
func New(s *sim.Simulator, loader *config.Loader) http.Handler {
	h := &Handler{sim: s, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /v1/state", h.state)
	h.mux.HandleFunc("GET /v1/events", h.events)
	h.mux.HandleFunc("POST /v1/scenario/reload", h.reloadScenario)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// GET /v1/state — current simulation time and body states.
func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	bodies := h.sim.Bodies()
	out := stateResponse{
		Time:     h.sim.CurrentTime(),
		Violated: h.sim.Violated(),
		Bodies:   make([]bodyState, 0, len(bodies)),
	}
	for _, b := range bodies {
		bs := bodyState{ID: b.ID()}
		switch t := b.(type) {
		case *body.RigidBody:
			bs.Kind = "rigid"
			bs.Position = vec3(t.Position)
			bs.Orientation = []float64{t.Orientation.W, t.Orientation.V.X(), t.Orientation.V.Y(), t.Orientation.V.Z()}
			bs.Velocity = vec3(t.LinVel)
			bs.AngularVelocity = vec3(t.AngVel)
		case *body.Articulated:
			bs.Kind = "articulated"
			bs.JointPositions = t.GeneralizedCoords(nil)
			bs.JointVelocities = t.GeneralizedVelocity(nil)
		}
		out.Bodies = append(out.Bodies, bs)
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /v1/events — the most recently resolved event set.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	evs := h.sim.Events()
	out := make([]eventSummary, 0, len(evs))
	for _, e := range evs {
		s := eventSummary{
			Type:  e.Type.String(),
			Class: e.Class().String(),
			T:     e.T,
			TTrue: e.TTrue,
			Tol:   e.Tol,
		}
		switch {
		case e.Geom1 != nil && e.Geom2 != nil:
			s.Geom1, s.Geom2 = e.Geom1.ID, e.Geom2.ID
			s.Point = vec3(e.Point)
			s.Normal = vec3(e.Normal)
		case e.Joint != nil:
			s.Joint = e.Joint.ID
			s.LimitUpper = e.LimitUpper
		}
		out = append(out, s)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"time":   h.sim.CurrentTime(),
		"events": out,
	})
}

// POST /v1/scenario/reload — re-read the scenario file and swap the
// contact-parameter table. Body and engine definitions require a restart.
func (h *Handler) reloadScenario(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.sim.SwapParams(cfg.ContactParams)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":             true,
		"contact_params_count": len(cfg.ContactParams),
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

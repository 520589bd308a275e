package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-gl/mathgl/mgl64"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type stateResponse struct {
	Time     float64     `json:"time"`
	Violated bool        `json:"violated"`
	Bodies   []bodyState `json:"bodies"`
}

type bodyState struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	Position        []float64 `json:"position,omitempty"`
	Orientation     []float64 `json:"orientation,omitempty"`
	Velocity        []float64 `json:"velocity,omitempty"`
	AngularVelocity []float64 `json:"angular_velocity,omitempty"`
	JointPositions  []float64 `json:"joint_positions,omitempty"`
	JointVelocities []float64 `json:"joint_velocities,omitempty"`
}

type eventSummary struct {
	Type       string    `json:"type"`
	Class      string    `json:"class"`
	T          float64   `json:"t"`
	TTrue      float64   `json:"t_true"`
	Tol        float64   `json:"tolerance"`
	Geom1      string    `json:"geom1,omitempty"`
	Geom2      string    `json:"geom2,omitempty"`
	Point      []float64 `json:"point,omitempty"`
	Normal     []float64 `json:"normal,omitempty"`
	Joint      string    `json:"joint,omitempty"`
	LimitUpper bool      `json:"limit_upper,omitempty"`
}

func vec3(v mgl64.Vec3) []float64 {
	return []float64{v.X(), v.Y(), v.Z()}
}

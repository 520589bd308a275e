package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gyaneshwarpardhi/rigidsim/internal/config"
	"github.com/gyaneshwarpardhi/rigidsim/internal/sim"
)

func testSim(t *testing.T) *sim.Simulator {
	t.Helper()
	cfg := &config.Scenario{
		Version: "v1",
		Bodies: []config.BodyDef{
			{
				ID:       "ball",
				Mass:     1,
				Position: [3]float64{0, 0, 2},
				Geometries: []config.GeometryDef{
					{ID: "ball_g", Shape: "sphere", Radius: 0.5},
				},
			},
		},
	}
	config.ApplyDefaults(cfg)
	s, err := sim.FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStateEndpoint(t *testing.T) {
	h := New(testSim(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out struct {
		Time   float64 `json:"time"`
		Bodies []struct {
			ID       string    `json:"id"`
			Kind     string    `json:"kind"`
			Position []float64 `json:"position"`
		} `json:"bodies"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Bodies) != 1 || out.Bodies[0].ID != "ball" || out.Bodies[0].Kind != "rigid" {
		t.Fatalf("unexpected body list: %+v", out.Bodies)
	}
	if out.Bodies[0].Position[2] != 2 {
		t.Errorf("z = %g, want 2", out.Bodies[0].Position[2])
	}
}

func TestEventsEndpointEmpty(t *testing.T) {
	h := New(testSim(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := New(testSim(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	h := New(testSim(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

package body

import "testing"

func twoJointBody(t *testing.T) *Articulated {
	t.Helper()
	return NewArticulated("arm", []*Joint{
		{ID: "j0", Lower: -1, Upper: 1, Restitution: 0.5},
		{ID: "j1", Lower: 0, Upper: 2},
	})
}

func TestArticulatedCoords(t *testing.T) {
	a := twoJointBody(t)
	if a.NumCoords() != 2 {
		t.Fatalf("NumCoords = %d, want 2", a.NumCoords())
	}
	a.SetGeneralizedCoords([]float64{0.5, 1.5})
	a.SetGeneralizedVelocity([]float64{-0.1, 0.3})

	if got := a.Joints[0].Position(); got != 0.5 {
		t.Errorf("j0 position = %g, want 0.5", got)
	}
	if got := a.Joints[1].Velocity(); got != 0.3 {
		t.Errorf("j1 velocity = %g, want 0.3", got)
	}
}

func TestArticulatedDamping(t *testing.T) {
	a := twoJointBody(t)
	a.Damping = 2
	a.SetGeneralizedVelocity([]float64{1, -0.5})

	d := a.Derivative(0, 0.1)
	if d[0] != -2 || d[1] != 1 {
		t.Errorf("Derivative = %v, want [-2 1]", d)
	}
}

func TestFindLimitCrossings(t *testing.T) {
	cases := []struct {
		name   string
		q0, q1 []float64
		want   int
		upper  bool
		tm     float64
	}{
		{name: "upper crossing", q0: []float64{0.5, 1}, q1: []float64{1.5, 1}, want: 1, upper: true, tm: 0.5},
		{name: "lower crossing", q0: []float64{-0.3, 1}, q1: []float64{-1.0, 1}, want: 1, upper: false, tm: 1.0},
		{name: "inside", q0: []float64{0, 1}, q1: []float64{0.9, 1.9}, want: 0},
		{name: "already past reports zero", q0: []float64{1.2, 1}, q1: []float64{1.5, 1}, want: 1, upper: true, tm: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := twoJointBody(t)
			got := a.FindLimitCrossings(tc.q0, tc.q1)
			if len(got) != tc.want {
				t.Fatalf("crossings = %d, want %d", len(got), tc.want)
			}
			if tc.want == 0 {
				return
			}
			c := got[0]
			if c.Upper != tc.upper {
				t.Errorf("Upper = %v, want %v", c.Upper, tc.upper)
			}
			if c.T != tc.tm {
				t.Errorf("T = %g, want %g", c.T, tc.tm)
			}
			if c.Joint.ID != "j0" {
				t.Errorf("joint = %s, want j0", c.Joint.ID)
			}
		})
	}
}

func TestAddLinkSetsParent(t *testing.T) {
	a := twoJointBody(t)
	link := NewRigidBody("link", 1)
	a.AddLink(link)
	if link.Parent != a {
		t.Error("link parent not set")
	}
}

package config

import (
	"fmt"
	"strings"
)

// Validate checks the scenario for:
//   - Duplicate ids across bodies, geometries, articulated bodies, joints
//   - Required fields and physically meaningful values
//   - Contact parameters referencing unknown identities
//
// Empty ids are legal placeholders: the loader generates ids for them
// before the scenario reaches any consumer, so they are excluded from
// duplicate detection rather than rejected.
func Validate(cfg *Scenario) error {
	if cfg.Version == "" {
		return fmt.Errorf("scenario: version is required")
	}
	ids := make(map[string]string) // id → location
	var errs []string

	claim := func(id, loc string) {
		if prev, ok := ids[id]; ok {
			errs = append(errs, fmt.Sprintf("duplicate id %q (first seen at %s, again at %s)", id, prev, loc))
		} else {
			ids[id] = loc
		}
	}

	for i, b := range cfg.Bodies {
		loc := fmt.Sprintf("body %s", b.ID)
		if b.ID == "" {
			loc = fmt.Sprintf("bodies[%d]", i)
		} else {
			claim(b.ID, loc)
		}
		if !b.Static && b.Mass <= 0 {
			errs = append(errs, fmt.Sprintf("%s: mass must be positive for non-static bodies", loc))
		}
		for j, g := range b.Geometries {
			gloc := fmt.Sprintf("geometry %s", g.ID)
			if g.ID == "" {
				gloc = fmt.Sprintf("%s.geometries[%d]", loc, j)
			} else {
				claim(g.ID, gloc)
			}
			switch g.Shape {
			case "sphere":
				if g.Radius <= 0 {
					errs = append(errs, fmt.Sprintf("%s: sphere radius must be positive", gloc))
				}
			case "plane":
			case "torus":
				if g.MajorRadius <= 0 || g.MinorRadius <= 0 {
					errs = append(errs, fmt.Sprintf("%s: torus radii must be positive", gloc))
				}
			default:
				errs = append(errs, fmt.Sprintf("%s: unknown shape %q", gloc, g.Shape))
			}
		}
	}

	bodyIDs := make(map[string]bool)
	for _, b := range cfg.Bodies {
		bodyIDs[b.ID] = true
	}
	for i, a := range cfg.Articulated {
		loc := fmt.Sprintf("articulated %s", a.ID)
		if a.ID == "" {
			loc = fmt.Sprintf("articulated[%d]", i)
		} else {
			claim(a.ID, loc)
		}
		for _, link := range a.Links {
			if !bodyIDs[link] {
				errs = append(errs, fmt.Sprintf("%s: unknown link body %q", loc, link))
			}
		}
		for j, jt := range a.Joints {
			jloc := fmt.Sprintf("joint %s", jt.ID)
			if jt.ID == "" {
				jloc = fmt.Sprintf("%s.joints[%d]", loc, j)
			} else {
				claim(jt.ID, jloc)
			}
			if jt.Lower > jt.Upper {
				errs = append(errs, fmt.Sprintf("%s: lower limit exceeds upper", jloc))
			}
			if jt.Restitution < 0 || jt.Restitution > 1 {
				errs = append(errs, fmt.Sprintf("%s: restitution must be in [0,1]", jloc))
			}
		}
	}

	for i, cp := range cfg.ContactParams {
		loc := fmt.Sprintf("contact_params[%d]", i)
		if cp.A == "" || cp.B == "" {
			errs = append(errs, fmt.Sprintf("%s: both a and b are required", loc))
			continue
		}
		for _, id := range []string{cp.A, cp.B} {
			if _, ok := ids[id]; !ok {
				errs = append(errs, fmt.Sprintf("%s: unknown identity %q", loc, id))
			}
		}
		if cp.MuCoulomb < 0 || cp.MuViscous < 0 {
			errs = append(errs, fmt.Sprintf("%s: friction coefficients must be non-negative", loc))
		}
		if cp.Restitution < 0 || cp.Restitution > 1 {
			errs = append(errs, fmt.Sprintf("%s: restitution must be in [0,1]", loc))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

package sim

import "math"

// findTOI walks the time-sorted event set looking for the earliest instant
// an impact occurs. On finding one it finalizes body positions at that
// instant, prunes the event set to the (near-)simultaneous group, advances
// the clock, and returns the advance h. When no event in the interval is
// impacting it integrates the full interval and returns +Inf, the
// no-event sentinel.
//
// Classification happens with bodies placed at the candidate instant, so
// each group is judged against the geometry it would actually have there.
func (s *Simulator) findTOI(dt float64) float64 {
	i := 0
	for i < len(s.events) {
		tmin := s.events[i].T * dt
		if tmin > dt {
			break
		}

		s.extrapolate(tmin)

		impacting := s.events[i].IsImpacting()
		j := i + 1
		for ; j < len(s.events); j++ {
			if s.events[j].T > s.events[i].T+s.conf.TOIEpsilon {
				break
			}
			if !impacting {
				impacting = s.events[j].IsImpacting()
			}
		}

		if impacting {
			// Commit the truncated interval: start coordinates move to the
			// impact instant and the event set shrinks to the simultaneous
			// group.
			s.events = s.events[i:j]
			for bi := range s.bodies {
				for k := range s.q0[bi] {
					s.q0[bi][k] += s.qdf[bi][k] * tmin
				}
				s.bodies[bi].SetGeneralizedCoords(s.q0[bi])
			}
			s.currentTime += tmin
			return tmin
		}

		// Whole group separating or resting; keep searching later events.
		i = j
	}

	// No impact anywhere in the interval.
	s.extrapolate(dt)
	s.currentTime += dt
	s.events = nil
	return math.Inf(1)
}

// extrapolate places every body at its linearly extrapolated position
// q0 + qdf*h, reusing the end-of-interval buffers as scratch.
func (s *Simulator) extrapolate(h float64) {
	for i, b := range s.bodies {
		for k := range s.q0[i] {
			s.qf[i][k] = s.q0[i][k] + s.qdf[i][k]*h
		}
		b.SetGeneralizedCoords(s.qf[i])
	}
}

package astrocaliper

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/Asteroidea-tn/astrombr/pkg/astrogeom"
	"github.com/Asteroidea-tn/astrombr/pkg/astrohull"
)

// stepsPerVertex bounds the number of sweep steps relative to the hull size.
// A full π turn advances each caliper across roughly half the hull, so this
// is only reached when rounding keeps the calipers from making progress.
const stepsPerVertex = 8

// sweep holds the state of one caliper rotation. It lives for a single call.
type sweep struct {
	hull     astrohull.Polygon
	index    [4]int
	calipers [4]astrogeom.Vector
	rotated  float64
	maxSteps int
	stop     StopReason

	found      bool
	bestArea   float64
	bestWidth  float64
	bestHeight float64
	best       [4]Support
}

func newSweep(hull astrohull.Polygon) *sweep {
	s := &sweep{
		hull:     hull,
		maxSteps: stepsPerVertex * hull.Len(),
		calipers: [4]astrogeom.Vector{
			CaliperA: astrogeom.Vec(1, 0),
			CaliperB: astrogeom.Vec(-1, 0),
			CaliperC: astrogeom.Vec(0, -1),
			CaliperD: astrogeom.Vec(0, 1),
		},
	}

	// Strict comparisons keep the first vertex found on ties.
	for i := 1; i < hull.Len(); i++ {
		p := hull[i]
		if p.Y < hull[s.index[CaliperA]].Y {
			s.index[CaliperA] = i
		}
		if p.Y > hull[s.index[CaliperB]].Y {
			s.index[CaliperB] = i
		}
		if p.X < hull[s.index[CaliperC]].X {
			s.index[CaliperC] = i
		}
		if p.X > hull[s.index[CaliperD]].X {
			s.index[CaliperD] = i
		}
	}
	return s
}

func (s *sweep) vertex(c Caliper) astrogeom.Point {
	return s.hull.At(s.index[c])
}

func (s *sweep) run() {
	s.stop = StopComplete
	for step := 0; s.rotated < math.Pi; step++ {
		if step >= s.maxSteps {
			log.Warn().
				Int("steps", step).
				Float64("rotated", s.rotated).
				Msg("caliper sweep stopped at step limit")
			s.stop = StopStepLimit
			return
		}

		var angles [4]float64
		for c := CaliperA; c <= CaliperD; c++ {
			// Calipers are kept at reduced precision between steps; the
			// rotation below starts from the rounded direction.
			s.calipers[c].ReducePrecision()
			angles[c] = astrogeom.Angle(s.hull.Edge(s.index[c]), s.calipers[c])
		}

		minAngle := math.Min(math.Min(angles[0], angles[1]), math.Min(angles[2], angles[3]))
		for c := range s.calipers {
			s.calipers[c] = astrogeom.Rotate(s.calipers[c], minAngle)
		}

		flush := flushCaliper(angles, minAngle)
		width, height := s.measure(flush)

		s.rotated += minAngle
		if math.IsNaN(s.rotated) {
			log.Warn().
				Int("step", step).
				Msg("caliper angle is NaN, ending sweep early")
			s.stop = StopNaN
			return
		}

		area := width * height
		if !s.found || area < s.bestArea {
			s.record(area, width, height)
		}

		log.Debug().
			Int("step", step).
			Stringer("flush", flush).
			Float64("angle", minAngle).
			Float64("area", area).
			Msg("caliper advanced")

		s.index[flush] = (s.index[flush] + 1) % s.hull.Len()
	}
}

// flushCaliper picks the caliper whose angle equals minAngle, checking A, B,
// C, D in that order. D is the fallback, which also covers a NaN minAngle.
func flushCaliper(angles [4]float64, minAngle float64) Caliper {
	for c := CaliperA; c < CaliperD; c++ {
		if angles[c] == minAngle {
			return c
		}
	}
	return CaliperD
}

// measure returns the distances between the A/B and C/D support lines for
// the current caliper directions, using the line of the caliper that just
// became flush where it belongs to the pair.
func (s *sweep) measure(flush Caliper) (width, height float64) {
	a, b := s.vertex(CaliperA), s.vertex(CaliperB)
	c, d := s.vertex(CaliperC), s.vertex(CaliperD)

	width = astrogeom.Distance(b, a, s.calipers[CaliperA])
	height = astrogeom.Distance(d, c, s.calipers[CaliperC])

	switch flush {
	case CaliperB:
		width = astrogeom.Distance(a, b, s.calipers[CaliperB])
	case CaliperD:
		height = astrogeom.Distance(c, d, s.calipers[CaliperD])
	}
	return width, height
}

func (s *sweep) record(area, width, height float64) {
	s.found = true
	s.bestArea = area
	s.bestWidth = width
	s.bestHeight = height
	for c := CaliperA; c <= CaliperD; c++ {
		s.best[c] = Support{Anchor: s.vertex(c), Direction: s.calipers[c]}
	}
}

// result intersects the best calipers pairwise: A∩D, D∩B, B∩C, C∩A.
func (s *sweep) result() (Rectangle, error) {
	if !s.found {
		return Rectangle{Stop: s.stop}, fmt.Errorf("astrocaliper: %w (stopped: %s)", ErrNoRectangle, s.stop)
	}

	r := Rectangle{
		Area:     s.bestArea,
		Width:    s.bestWidth,
		Height:   s.bestHeight,
		Supports: s.best,
		Stop:     s.stop,
	}

	order := [4][2]Caliper{
		{CaliperA, CaliperD},
		{CaliperD, CaliperB},
		{CaliperB, CaliperC},
		{CaliperC, CaliperA},
	}
	for i, pair := range order {
		l1, l2 := s.best[pair[0]], s.best[pair[1]]
		pt, err := astrogeom.Intersect(l1.Anchor, l1.Direction, l2.Anchor, l2.Direction)
		if err != nil {
			log.Warn().Err(err).
				Stringer("first", pair[0]).
				Stringer("second", pair[1]).
				Msg("rectangle corner is missing")
			continue
		}
		r.Vertices[i] = Corner{Point: pt, OK: true}
	}
	return r, nil
}

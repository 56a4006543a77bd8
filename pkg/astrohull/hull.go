// Package astrohull turns an unordered point set into the counter-clockwise
// convex polygon consumed by the calipers sweep. The hull itself is computed
// by go-geom's xy package; this package only converts coordinates and
// normalizes the ring.
package astrohull

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/Asteroidea-tn/astrombr/pkg/astrogeom"
)

var (
	ErrTooFewPoints   = errors.New("at least 3 points are required")
	ErrNonFinite      = errors.New("point coordinates must be finite")
	ErrDegenerateHull = errors.New("convex hull is degenerate")
)

// collinearEpsilon is the cross-product magnitude, relative to the squared
// edge lengths, under which three consecutive vertices count as collinear.
const collinearEpsilon = 1e-12

// Polygon is a cyclic, counter-clockwise sequence of hull vertices.
type Polygon []astrogeom.Point

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p)
}

// At returns vertex i modulo the polygon length, so i and i+Len() refer to
// the same vertex. i must be non-negative.
func (p Polygon) At(i int) astrogeom.Point {
	return p[i%len(p)]
}

// Edge returns the vector from vertex i to vertex i+1.
func (p Polygon) Edge(i int) astrogeom.Vector {
	return p.At(i + 1).Sub(p.At(i))
}

// Validate checks the input preconditions shared by every hull computation.
func Validate(points []astrogeom.Point) error {
	if len(points) < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	for i, p := range points {
		if !p.IsFinite() {
			return fmt.Errorf("%w: point %d is %v", ErrNonFinite, i, p)
		}
	}
	return nil
}

// ConvexHull returns the convex hull of points as a counter-clockwise
// polygon without duplicate or collinear vertices. The caller's slice is not
// modified.
func ConvexHull(points []astrogeom.Point) (Polygon, error) {
	if err := Validate(points); err != nil {
		return nil, err
	}

	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}

	hull := xy.ConvexHullFlat(geom.XY, flat)
	poly, ok := hull.(*geom.Polygon)
	if !ok || poly.NumLinearRings() == 0 {
		return nil, fmt.Errorf("%w: hull collapsed to %T", ErrDegenerateHull, hull)
	}

	ring := fromFlat(poly.LinearRing(0).FlatCoords(), poly.Stride())
	out := Normalize(ring)
	if len(out) < 3 {
		return nil, fmt.Errorf("%w: %d vertices left after cleanup", ErrDegenerateHull, len(out))
	}

	log.Debug().
		Int("input", len(points)).
		Int("vertices", len(out)).
		Msg("convex hull computed")

	return out, nil
}

// Normalize drops the closing vertex of a closed ring, removes repeated and
// collinear vertices and orders the result counter-clockwise. A ring that
// encloses no area comes back with fewer than 3 vertices.
func Normalize(ring []astrogeom.Point) Polygon {
	pts := make([]astrogeom.Point, 0, len(ring))
	for _, p := range ring {
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	for len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	pts = dropCollinear(pts)
	if len(pts) < 3 {
		return pts
	}

	if astrogeom.SignedArea(pts) < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}

// dropCollinear removes vertices lying on the segment between their
// neighbours, repeating until a full pass removes nothing.
func dropCollinear(pts []astrogeom.Point) []astrogeom.Point {
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		n := len(pts)
		for i := 0; i < n; i++ {
			prev, cur, next := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
			a, b := cur.Sub(prev), next.Sub(cur)
			scale := a.Length() * b.Length()
			if scale == 0 || math.Abs(a.Cross(b)) <= collinearEpsilon*scale {
				pts = append(pts[:i], pts[i+1:]...)
				changed = true
				break
			}
		}
	}
	return pts
}

func fromFlat(flat []float64, stride int) []astrogeom.Point {
	pts := make([]astrogeom.Point, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		pts = append(pts, astrogeom.Pt(flat[i], flat[i+1]))
	}
	return pts
}

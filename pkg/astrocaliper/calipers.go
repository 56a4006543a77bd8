// Package astrocaliper finds the minimum-area bounding rectangle of a point
// set by sweeping four rotating calipers around its convex hull.
//
// Calipers A and B rest on the lowest and highest hull vertices and start out
// pointing along +x and -x. Calipers C and D rest on the leftmost and rightmost
// vertices and start along -y and +y. Each step turns all four by the smallest
// angle that makes one of them flush with its next hull edge, measures the
// rectangle they frame, and advances that caliper's vertex. The sweep ends
// once the calipers have turned through π.
package astrocaliper

import (
	"errors"
	"fmt"

	"github.com/Asteroidea-tn/astrombr/pkg/astrogeom"
	"github.com/Asteroidea-tn/astrombr/pkg/astrohull"
)

var (
	ErrNoRectangle = errors.New("sweep ended before any rectangle was measured")
)

// StopReason tells why the sweep ended.
type StopReason int

const (
	StopComplete  StopReason = iota // calipers turned through π
	StopNaN                         // an angle came out NaN, usually a zero-length edge after rounding
	StopStepLimit                   // too many steps without finishing the turn
)

var stopNames = [3]string{"complete", "nan", "step-limit"}

func (r StopReason) String() string {
	if r < StopComplete || r > StopStepLimit {
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
	return stopNames[r]
}

// Caliper names one of the four support lines.
type Caliper int

const (
	CaliperA Caliper = iota // rests on the minimum-y vertex
	CaliperB                // rests on the maximum-y vertex
	CaliperC                // rests on the minimum-x vertex
	CaliperD                // rests on the maximum-x vertex
)

var caliperNames = [4]string{"A", "B", "C", "D"}

func (c Caliper) String() string {
	if c < CaliperA || c > CaliperD {
		return fmt.Sprintf("Caliper(%d)", int(c))
	}
	return caliperNames[c]
}

// Support is a hull vertex together with the direction of the caliper
// resting on it.
type Support struct {
	Anchor    astrogeom.Point
	Direction astrogeom.Vector
}

// Corner is one rectangle corner. OK is false when the two caliper lines
// meeting there could not be intersected, in which case Point is zero.
type Corner struct {
	astrogeom.Point
	OK bool
}

// Rectangle is the minimum-area bounding rectangle.
type Rectangle struct {
	// Vertices are the corners A∩D, D∩B, B∩C, C∩A in that order.
	Vertices [4]Corner
	Area     float64
	Width    float64
	Height   float64
	// Supports holds the (vertex, caliper) pairs that framed the rectangle,
	// indexed by Caliper.
	Supports [4]Support
	// Stop is StopComplete for a full π sweep. Any other value means the
	// rectangle is the best one seen before the sweep was cut short and
	// may not be minimal.
	Stop StopReason
}

// Complete reports whether all four corners were reconstructed.
func (r Rectangle) Complete() bool {
	for _, c := range r.Vertices {
		if !c.OK {
			return false
		}
	}
	return true
}

// Corners returns the reconstructed corners, skipping missing ones.
func (r Rectangle) Corners() []astrogeom.Point {
	out := make([]astrogeom.Point, 0, len(r.Vertices))
	for _, c := range r.Vertices {
		if c.OK {
			out = append(out, c.Point)
		}
	}
	return out
}

// MinBoundingRect computes the convex hull of points and returns the
// minimum-area rectangle enclosing them. Input and hull failures are returned
// wrapping the astrohull sentinel errors.
func MinBoundingRect(points []astrogeom.Point) (Rectangle, error) {
	hull, err := astrohull.ConvexHull(points)
	if err != nil {
		return Rectangle{}, fmt.Errorf("astrocaliper: %w", err)
	}
	return Sweep(hull)
}

// Sweep runs the rotating calipers over a convex, counter-clockwise hull with
// at least 3 vertices.
//
// A sweep cut short after at least one measurement returns that best
// rectangle with a nil error and Stop set. A sweep that stops before its
// first measurement returns ErrNoRectangle.
func Sweep(hull astrohull.Polygon) (Rectangle, error) {
	if hull.Len() < 3 {
		return Rectangle{}, fmt.Errorf("astrocaliper: %w: hull has %d vertices",
			astrohull.ErrDegenerateHull, hull.Len())
	}

	s := newSweep(hull)
	s.run()
	return s.result()
}

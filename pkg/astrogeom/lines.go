package astrogeom

import (
	"errors"
	"math"
)

var (
	ErrNoIntersection = errors.New("lines do not intersect")
)

// Angle returns the unsigned angle in [0, π] between v1 and v2.
//
// Both inputs are precision-reduced first (they are copies, the caller's
// values are untouched). The cosine is clamped to [-1, 1] so rounding drift
// on nearly parallel vectors does not turn into NaN. A zero-length input has
// no direction and yields NaN.
func Angle(v1, v2 Vector) float64 {
	v1.ReducePrecision()
	v2.ReducePrecision()

	d := v1.Length() * v2.Length()
	if d == 0 {
		return math.NaN()
	}
	c := v1.Dot(v2) / d
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// Rotate returns v turned counter-clockwise by r radians.
func Rotate(v Vector, r float64) Vector {
	sin, cos := math.Sincos(r)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Distance returns the perpendicular distance from p to the line through t
// with direction v. A vertical direction (v.X == 0) is measured horizontally.
func Distance(p, t Point, v Vector) float64 {
	if v.X == 0 {
		return math.Abs(p.X - t.X)
	}
	a := v.Y / v.X
	c := t.Y - a*t.X
	return math.Abs(p.Y-c-a*p.X) / math.Sqrt(a*a+1)
}

// Intersection returns the point where the line through p1 along v1 meets the
// line through p2 along v2. ok is false when both lines are vertical or their
// slopes are equal; identical lines are not told apart from parallel ones.
func Intersection(p1 Point, v1 Vector, p2 Point, v2 Vector) (pt Point, ok bool) {
	v1.ReducePrecision()
	v2.ReducePrecision()

	switch {
	case v1.X == 0 && v2.X == 0:
		return Point{}, false
	case v1.X == 0:
		m2, b2 := slopeIntercept(p2, v2)
		return Point{X: p1.X, Y: m2*p1.X + b2}, true
	case v2.X == 0:
		m1, b1 := slopeIntercept(p1, v1)
		return Point{X: p2.X, Y: m1*p2.X + b1}, true
	}

	m1, b1 := slopeIntercept(p1, v1)
	m2, b2 := slopeIntercept(p2, v2)
	if m1 == m2 {
		return Point{}, false
	}
	x := (b2 - b1) / (m1 - m2)
	return Point{X: x, Y: m1*x + b1}, true
}

// Intersect is Intersection reporting ErrNoIntersection instead of a flag.
func Intersect(p1 Point, v1 Vector, p2 Point, v2 Vector) (Point, error) {
	pt, ok := Intersection(p1, v1, p2, v2)
	if !ok {
		return Point{}, ErrNoIntersection
	}
	return pt, nil
}

func slopeIntercept(p Point, v Vector) (m, b float64) {
	m = v.Y / v.X
	return m, p.Y - m*p.X
}

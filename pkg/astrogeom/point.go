package astrogeom

import (
	"fmt"
	"math"
)

// Decimals is the number of decimal places kept by ReducePrecision.
const Decimals = 5

var precisionScale = math.Pow(10, Decimals)

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Vector is a displacement or direction. It shares Point's layout but is a
// separate type so a location is never rotated by accident.
type Vector struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// ReducePrecision rounds both coordinates to Decimals places in place.
func (p *Point) ReducePrecision() {
	p.X = roundCoord(p.X)
	p.Y = roundCoord(p.Y)
}

// Sub returns the vector pointing from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (v Vector) String() string {
	return fmt.Sprintf("<%g,%g>", v.X, v.Y)
}

// ReducePrecision rounds both components to Decimals places in place.
func (v *Vector) ReducePrecision() {
	v.X = roundCoord(v.X)
	v.Y = roundCoord(v.Y)
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z component of v × w.
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns |v|.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// roundCoord rounds half away from zero, matching the usual decimal rounding.
func roundCoord(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return math.Round(f*precisionScale) / precisionScale
}

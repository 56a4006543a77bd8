package astrogeom

// Box is an axis-aligned rectangle anchored at its minimum corner.
type Box struct {
	X, Y, Width, Height float64
}

// Area returns Width * Height.
func (b Box) Area() float64 {
	return b.Width * b.Height
}

// Bounds returns the axis-aligned bounding box of points. An empty slice
// yields the zero Box.
func Bounds(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y

	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	return Box{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// SignedArea returns the shoelace area of the closed polygon ring. It is
// positive for counter-clockwise rings and negative for clockwise ones.
func SignedArea(ring []Point) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// PolygonArea returns the unsigned shoelace area of ring.
func PolygonArea(ring []Point) float64 {
	a := SignedArea(ring)
	if a < 0 {
		return -a
	}
	return a
}

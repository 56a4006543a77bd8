package main

import "github.com/Asteroidea-tn/astrombr/pkg/astrogeom"

type scenario struct {
	name   string
	points []astrogeom.Point
}

func pts(coords ...float64) []astrogeom.Point {
	out := make([]astrogeom.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, astrogeom.Pt(coords[i], coords[i+1]))
	}
	return out
}

// Minimum areas: 1, 3, 11238.15, 25013.42, 100, 100, 20744.12.
var scenarios = []scenario{
	{"unit-square", pts(0, 0, 1, 0, 1, 1, 0, 1)},
	{"triangle", pts(1, 1, 2, 0, 3, 2)},
	{"quadrilateral", pts(69, 129, 116, 50, 179, 92, 151, 196)},
	{"pentagon", pts(59, 40, 171, 36, 204, 129, 124, 204, 53, 133)},
	{"square", pts(0, 0, 10, 0, 10, 10, 0, 10)},
	{"square-edge-points", pts(0, 0, 5, 0, 7, 0, 10, 0, 10, 10, 0, 10)},
	{"hexagon", pts(0, 4, 136, 4, 161, 122, 80, 71, 63, 139, 13, 121)},
}

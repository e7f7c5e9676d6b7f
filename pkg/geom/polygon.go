package geom

import "math"

// RegularPolygon returns the vertices of a regular polygon with n sides
// inscribed in a circle of radius r around c. The first vertex points up.
func RegularPolygon(c Vec2, r float64, n int) []Vec2 {
	if n < 3 {
		n = 3
	}
	pts := make([]Vec2, n)
	for i := range pts {
		a := -math.Pi/2 + float64(i)*2*math.Pi/float64(n)
		pts[i] = Polar(c, r, a)
	}
	return pts
}

// Star returns a star outline alternating between the outer and inner
// radius, with n points.
func Star(c Vec2, outer, inner float64, n int) []Vec2 {
	if n < 2 {
		n = 5
	}
	pts := make([]Vec2, 2*n)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/float64(n)
		pts[i] = Polar(c, r, a)
	}
	return pts
}

// Centroid returns the vertex average of pts.
func Centroid(pts []Vec2) Vec2 {
	var c Vec2
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.MulScalar(1 / float64(len(pts)))
}

// SignedArea returns the shoelace area of a closed polygon. On a y-down
// canvas the result is positive when the vertices run clockwise as seen on
// screen.
func SignedArea(pts []Vec2) float64 {
	var s float64
	for i := range pts {
		j := (i + 1) % len(pts)
		s += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return s / 2
}

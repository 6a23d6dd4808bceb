package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// RectLoop returns the closed outline of the axis-aligned rectangle with
// opposite corners a and b: four corners starting at a, then a again.
func RectLoop(a, b Point) []Point {
	return []Point{
		a,
		{X: b.X, Y: a.Y},
		b,
		{X: a.X, Y: b.Y},
		a,
	}
}

// EllipseLoop samples the axis-aligned ellipse centred on c whose radii are
// the per-axis distance from c to edge. It returns segments+1 vertices with
// the last one closing the loop at angle 2π.
func EllipseLoop(c, edge Point, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	rx := math.Abs(float64(edge.X - c.X))
	ry := math.Abs(float64(edge.Y - c.Y))

	angles := floats.Span(make([]float64, segments+1), 0, 2*math.Pi)
	v := make([]Point, len(angles))
	for i, theta := range angles {
		v[i] = Point{
			X: c.X + float32(rx*math.Cos(theta)),
			Y: c.Y + float32(ry*math.Sin(theta)),
		}
	}
	return v
}

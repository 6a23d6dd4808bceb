// Package geom holds the 2D math of the drawing pipeline: clip-space mapping,
// outline generation, line clipping and window-to-viewport transforms.
package geom

import "math"

// Point is a position in canvas pixels, origin top-left, Y down.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Len returns the Euclidean length of p as a vector.
func (p Point) Len() float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

// Mode is the primitive type a vertex list is drawn as.
type Mode uint8

const (
	// Points draws one dot per vertex.
	Points Mode = iota
	// Lines draws a segment for each vertex pair.
	Lines
	// LineStrip draws a segment between each consecutive vertex.
	LineStrip
)

func (m Mode) String() string {
	switch m {
	case Points:
		return "POINTS"
	case Lines:
		return "LINES"
	case LineStrip:
		return "LINE_STRIP"
	}
	return "unknown"
}

// Segments expands a vertex list drawn as m into its line segments.
// Points yields none.
func (m Mode) Segments(v []Point) [][2]Point {
	var segs [][2]Point
	switch m {
	case Lines:
		for i := 0; i+1 < len(v); i += 2 {
			segs = append(segs, [2]Point{v[i], v[i+1]})
		}
	case LineStrip:
		for i := 0; i+1 < len(v); i++ {
			segs = append(segs, [2]Point{v[i], v[i+1]})
		}
	}
	return segs
}

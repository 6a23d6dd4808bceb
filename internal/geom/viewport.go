package geom

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptyWindow is returned when a window or viewport has no area.
var ErrEmptyWindow = errors.New("geom: empty window")

// Viewport maps points from a window rectangle onto a viewport rectangle
// with a 3x3 homogeneous matrix.
type Viewport struct {
	m *mat.Dense
}

// WindowToViewport returns the transform taking win onto vp. Both must be
// canonical and non-empty.
func WindowToViewport(win, vp Rect) (*Viewport, error) {
	if win.Empty() || vp.Empty() {
		return nil, ErrEmptyWindow
	}
	sx := float64(vp.Dx()) / float64(win.Dx())
	sy := float64(vp.Dy()) / float64(win.Dy())

	translate := mat.NewDense(3, 3, []float64{
		1, 0, float64(vp.Min.X),
		0, 1, float64(vp.Min.Y),
		0, 0, 1,
	})
	scale := mat.NewDense(3, 3, []float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	})
	origin := mat.NewDense(3, 3, []float64{
		1, 0, -float64(win.Min.X),
		0, 1, -float64(win.Min.Y),
		0, 0, 1,
	})

	var m mat.Dense
	m.Product(translate, scale, origin)
	return &Viewport{m: &m}, nil
}

// Apply maps p through the transform.
func (v *Viewport) Apply(p Point) Point {
	in := mat.NewVecDense(3, []float64{float64(p.X), float64(p.Y), 1})
	var out mat.VecDense
	out.MulVec(v.m, in)
	return Point{X: float32(out.AtVec(0)), Y: float32(out.AtVec(1))}
}

// ScaleX returns the horizontal scale factor of the transform.
func (v *Viewport) ScaleX() float64 {
	return v.m.At(0, 0)
}

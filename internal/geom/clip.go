package geom

import "fmt"

// ClipAlgorithm selects the line clipping routine used against a clip window.
type ClipAlgorithm uint8

const (
	CohenSutherland ClipAlgorithm = iota
	LiangBarsky
)

func (a ClipAlgorithm) String() string {
	switch a {
	case CohenSutherland:
		return "cohen-sutherland"
	case LiangBarsky:
		return "liang-barsky"
	}
	return fmt.Sprintf("ClipAlgorithm(%d)", uint8(a))
}

// ParseClipAlgorithm is the inverse of ClipAlgorithm.String.
func ParseClipAlgorithm(s string) (ClipAlgorithm, error) {
	switch s {
	case "cohen-sutherland":
		return CohenSutherland, nil
	case "liang-barsky":
		return LiangBarsky, nil
	}
	return 0, fmt.Errorf("unknown clip algorithm %q", s)
}

// Clip clips the segment p0-p1 to the canonical rectangle w. ok is false when
// no part of the segment lies inside w.
func (a ClipAlgorithm) Clip(w Rect, p0, p1 Point) (q0, q1 Point, ok bool) {
	if a == LiangBarsky {
		return clipLiangBarsky(w, p0, p1)
	}
	return clipCohenSutherland(w, p0, p1)
}

type outcode uint8

const (
	outLeft outcode = 1 << iota
	outRight
	outAbove // y < Min.Y
	outBelow // y > Max.Y
)

func code(w Rect, x, y float64) outcode {
	var c outcode
	switch {
	case x < float64(w.Min.X):
		c |= outLeft
	case x > float64(w.Max.X):
		c |= outRight
	}
	switch {
	case y < float64(w.Min.Y):
		c |= outAbove
	case y > float64(w.Max.Y):
		c |= outBelow
	}
	return c
}

func clipCohenSutherland(w Rect, p0, p1 Point) (Point, Point, bool) {
	x0, y0 := float64(p0.X), float64(p0.Y)
	x1, y1 := float64(p1.X), float64(p1.Y)
	xmin, ymin := float64(w.Min.X), float64(w.Min.Y)
	xmax, ymax := float64(w.Max.X), float64(w.Max.Y)

	c0, c1 := code(w, x0, y0), code(w, x1, y1)
	for {
		if c0|c1 == 0 {
			return Pt(float32(x0), float32(y0)), Pt(float32(x1), float32(y1)), true
		}
		if c0&c1 != 0 {
			return Point{}, Point{}, false
		}
		out := c0
		if out == 0 {
			out = c1
		}
		var x, y float64
		switch {
		case out&outBelow != 0:
			x = x0 + (x1-x0)*(ymax-y0)/(y1-y0)
			y = ymax
		case out&outAbove != 0:
			x = x0 + (x1-x0)*(ymin-y0)/(y1-y0)
			y = ymin
		case out&outRight != 0:
			y = y0 + (y1-y0)*(xmax-x0)/(x1-x0)
			x = xmax
		case out&outLeft != 0:
			y = y0 + (y1-y0)*(xmin-x0)/(x1-x0)
			x = xmin
		}
		if out == c0 {
			x0, y0 = x, y
			c0 = code(w, x0, y0)
		} else {
			x1, y1 = x, y
			c1 = code(w, x1, y1)
		}
	}
}

func clipLiangBarsky(w Rect, p0, p1 Point) (Point, Point, bool) {
	x0, y0 := float64(p0.X), float64(p0.Y)
	dx, dy := float64(p1.X)-x0, float64(p1.Y)-y0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{
		x0 - float64(w.Min.X),
		float64(w.Max.X) - x0,
		y0 - float64(w.Min.Y),
		float64(w.Max.Y) - y0,
	}
	u0, u1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return Point{}, Point{}, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			u0 = max(u0, t)
		} else {
			u1 = min(u1, t)
		}
		if u0 > u1 {
			return Point{}, Point{}, false
		}
	}
	return Pt(float32(x0+u0*dx), float32(y0+u0*dy)),
		Pt(float32(x0+u1*dx), float32(y0+u1*dy)), true
}

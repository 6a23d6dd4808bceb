package geom

// Rect is an axis-aligned rectangle. A canonical Rect has Min <= Max on both
// axes.
type Rect struct {
	Min, Max Point
}

// RectFromCorners returns the canonical rectangle spanned by two opposite
// corners given in any order.
func RectFromCorners(a, b Point) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Bounds returns the bounding box of v. It returns the zero Rect for an
// empty slice.
func Bounds(v []Point) Rect {
	if len(v) == 0 {
		return Rect{}
	}
	r := Rect{Min: v[0], Max: v[0]}
	for _, p := range v[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// Dx returns the width of r.
func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsAll reports whether every point of v lies inside r.
func (r Rect) ContainsAll(v []Point) bool {
	for _, p := range v {
		if !r.Contains(p) {
			return false
		}
	}
	return true
}

// Overlaps reports whether r and s share any point.
func (r Rect) Overlaps(s Rect) bool {
	return !(r.Max.X < s.Min.X || s.Max.X < r.Min.X ||
		r.Max.Y < s.Min.Y || s.Max.Y < r.Min.Y)
}

// Grow returns r grown by d on every side. Negative d shrinks it.
func (r Rect) Grow(d float32) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

package geom

// ToClip maps a pixel position on a surface of the given resolution to clip
// space: x and y in [-1, 1], Y pointing up.
func ToClip(p, resolution Point) Point {
	c := Point{
		X: p.X/resolution.X*2 - 1,
		Y: p.Y/resolution.Y*2 - 1,
	}
	c.Y = -c.Y
	return c
}

// FromClip is the viewport transform: the inverse of ToClip.
func FromClip(c, resolution Point) Point {
	return Point{
		X: (c.X + 1) / 2 * resolution.X,
		Y: (1 - c.Y) / 2 * resolution.Y,
	}
}

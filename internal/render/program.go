package render

import (
	"image/color"

	"GraphicsStudio/internal/geom"
)

// DefaultPointSize is the side, in pixels, of the square drawn for a point.
const DefaultPointSize = 8

// uniforms are the per-draw values shared by every vertex and fragment.
type uniforms struct {
	resolution geom.Point
	color      color.NRGBA
}

// Program is the studio's shader pair. The vertex stage moves pixel
// positions into clip space and the fragment stage paints the colour
// uniform.
type Program struct {
	PointSize float32
}

// NewProgram returns a program drawing points of the given size. A
// non-positive size selects DefaultPointSize.
func NewProgram(pointSize float32) *Program {
	if pointSize <= 0 {
		pointSize = DefaultPointSize
	}
	return &Program{PointSize: pointSize}
}

// vertex is the vertex stage.
func (p *Program) vertex(pos geom.Point, u *uniforms) (clip geom.Point, pointSize float32) {
	return geom.ToClip(pos, u.resolution), p.PointSize
}

// fragment is the fragment stage. Every fragment of a draw gets the same
// colour.
func (p *Program) fragment(u *uniforms) color.NRGBA {
	return u.color
}

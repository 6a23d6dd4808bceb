package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"GraphicsStudio/internal/geom"
)

// ErrNoContext is returned when a drawing context cannot be created.
var ErrNoContext = errors.New("render: cannot create drawing context")

// ClipWindow restricts drawing to a rectangle of the framebuffer. Segments
// are clipped with Algorithm. Points outside the rectangle are dropped.
type ClipWindow struct {
	Rect      geom.Rect
	Algorithm geom.ClipAlgorithm
}

// Context is an immediate-mode drawing context over an RGBA framebuffer. It
// follows the draw-call model of a GPU API: bind a program, set uniforms,
// then issue DrawArrays calls on vertex buffers.
type Context struct {
	fb         *image.RGBA
	ras        *vector.Rasterizer
	prog       *Program
	u          uniforms
	clearColor color.NRGBA
	lineWidth  float32
	window     *ClipWindow
}

// NewContext allocates a w×h framebuffer. It fails with ErrNoContext for a
// non-positive size.
func NewContext(w, h int) (*Context, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrNoContext, w, h)
	}
	return &Context{
		fb:         image.NewRGBA(image.Rect(0, 0, w, h)),
		ras:        vector.NewRasterizer(w, h),
		clearColor: color.NRGBA{A: 0xff},
		lineWidth:  1,
		u: uniforms{
			resolution: geom.Pt(float32(w), float32(h)),
		},
	}, nil
}

// Size returns the framebuffer size in pixels.
func (c *Context) Size() image.Point {
	return c.fb.Bounds().Size()
}

// Image returns the framebuffer. It is overwritten by later draws.
func (c *Context) Image() *image.RGBA {
	return c.fb
}

// UseProgram binds p for subsequent draws.
func (c *Context) UseProgram(p *Program) {
	c.prog = p
}

// ClearColor sets the colour Clear fills with.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = toNRGBA(r, g, b, a)
}

// Clear fills the whole framebuffer with the clear colour, ignoring the
// clip window.
func (c *Context) Clear() {
	draw.Draw(c.fb, c.fb.Bounds(), image.NewUniform(c.clearColor), image.Point{}, draw.Src)
}

// Resolution sets the resolution uniform read by the vertex stage.
func (c *Context) Resolution(w, h float32) {
	c.u.resolution = geom.Pt(w, h)
}

// Color sets the colour uniform read by the fragment stage.
func (c *Context) Color(r, g, b, a float32) {
	c.u.color = toNRGBA(r, g, b, a)
}

// LineWidth sets the width of LINES and LINE_STRIP primitives. Widths
// below one pixel draw as one pixel.
func (c *Context) LineWidth(w float32) {
	c.lineWidth = max(w, 1)
}

// SetClipWindow restricts later draws to w. Nil removes the restriction.
func (c *Context) SetClipWindow(w *ClipWindow) {
	c.window = w
}

// DrawArrays draws count vertices of buf starting at first as mode.
func (c *Context) DrawArrays(mode geom.Mode, buf *Buffer, first, count int) error {
	if c.prog == nil {
		return errors.New("render: no program bound")
	}
	if first < 0 || count < 0 || first+count > buf.Len() {
		return fmt.Errorf("render: draw range [%d,%d) outside buffer of %d vertices", first, first+count, buf.Len())
	}
	if count == 0 {
		return nil
	}

	size := c.Size()
	viewport := geom.Pt(float32(size.X), float32(size.Y))
	window := make([]geom.Point, count)
	var pointSize float32
	for i := range window {
		clip, ps := c.prog.vertex(buf.vertex(first+i), &c.u)
		window[i] = geom.FromClip(clip, viewport)
		pointSize = ps
	}

	c.ras.Reset(size.X, size.Y)
	c.ras.DrawOp = draw.Over
	switch mode {
	case geom.Points:
		visible := geom.Rect{Max: viewport}.Grow(pointSize / 2)
		for _, p := range window {
			if !visible.Contains(p) || c.window != nil && !c.window.Rect.Contains(p) {
				continue
			}
			c.square(p, pointSize/2)
		}
	case geom.Lines, geom.LineStrip:
		// The rasterizer walks every scanline a path spans, so geometry far
		// off the framebuffer is cut to it first.
		h := c.lineWidth / 2
		visible := geom.Rect{Max: viewport}.Grow(h)
		inside := visible.ContainsAll(window)
		alg := geom.CohenSutherland
		if c.window != nil {
			alg = c.window.Algorithm
		}
		for _, s := range mode.Segments(window) {
			p0, p1 := s[0], s[1]
			var ok bool
			if c.window != nil {
				if p0, p1, ok = alg.Clip(c.window.Rect, p0, p1); !ok {
					continue
				}
			}
			if !inside {
				if p0, p1, ok = alg.Clip(visible, p0, p1); !ok {
					continue
				}
			}
			c.segment(p0, p1, h)
		}
	default:
		return fmt.Errorf("render: unsupported mode %v", mode)
	}

	src := image.NewUniform(c.prog.fragment(&c.u))
	c.ras.Draw(c.fb, c.fb.Bounds(), src, image.Point{})
	return nil
}

// square adds an axis-aligned square of half-side h centred on p.
func (c *Context) square(p geom.Point, h float32) {
	c.quad(
		geom.Pt(p.X-h, p.Y+h),
		geom.Pt(p.X+h, p.Y+h),
		geom.Pt(p.X+h, p.Y-h),
		geom.Pt(p.X-h, p.Y-h),
	)
}

// segment adds the quad covering a line of half-width h from p0 to p1.
// Zero-length segments draw as a square so a click still leaves a mark.
func (c *Context) segment(p0, p1 geom.Point, h float32) {
	d := p1.Sub(p0)
	l := d.Len()
	if l == 0 {
		c.square(p0, h)
		return
	}
	n := geom.Pt(-d.Y, d.X).Mul(h / l)
	c.quad(p0.Add(n), p1.Add(n), p1.Sub(n), p0.Sub(n))
}

func (c *Context) quad(a, b, cc, d geom.Point) {
	c.ras.MoveTo(a.X, a.Y)
	c.ras.LineTo(b.X, b.Y)
	c.ras.LineTo(cc.X, cc.Y)
	c.ras.LineTo(d.X, d.Y)
	c.ras.ClosePath()
}

func toNRGBA(r, g, b, a float32) color.NRGBA {
	ch := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return color.NRGBA{R: ch(r), G: ch(g), B: ch(b), A: ch(a)}
}

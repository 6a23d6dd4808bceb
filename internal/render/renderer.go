// Package render draws studio shapes into an RGBA framebuffer through a
// small GPU-style pipeline: vertex buffers, a vertex and fragment stage, and
// a coverage rasterizer.
package render

import (
	"image"

	"GraphicsStudio/internal/geom"
	"GraphicsStudio/internal/logging"
	"GraphicsStudio/internal/state"
)

// DefaultEllipseSegments is the number of segments an ellipse outline is
// sampled with.
const DefaultEllipseSegments = 50

// Options configure a Renderer.
type Options struct {
	Width, Height   int
	EllipseSegments int
	PointSize       float32
}

// Renderer draws the committed shapes and the preview of a surface.
type Renderer struct {
	ctx      *Context
	prog     *Program
	cache    *bufferCache
	segments int

	window     *ClipWindow
	showBorder bool
}

// NewRenderer creates the drawing context and program. It returns an error
// wrapping ErrNoContext when the context cannot be created.
func NewRenderer(opts Options) (*Renderer, error) {
	ctx, err := NewContext(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	segments := opts.EllipseSegments
	if segments <= 0 {
		segments = DefaultEllipseSegments
	}
	prog := NewProgram(opts.PointSize)
	ctx.UseProgram(prog)
	ctx.ClearColor(1, 1, 1, 1)
	ctx.Clear()
	return &Renderer{
		ctx:      ctx,
		prog:     prog,
		cache:    newBufferCache(),
		segments: segments,
	}, nil
}

// Size returns the framebuffer size.
func (r *Renderer) Size() image.Point {
	return r.ctx.Size()
}

// SetClipWindow restricts shape drawing to w and optionally outlines it.
// A nil w draws everything.
func (r *Renderer) SetClipWindow(w *ClipWindow, showBorder bool) {
	r.window = w
	r.showBorder = showBorder
}

// Frame clears the framebuffer, draws every committed shape in order and
// then the preview on top. The returned image is reused by the next call.
func (r *Renderer) Frame(shapes []state.Shape, preview *state.Shape) *image.RGBA {
	size := r.ctx.Size()
	r.ctx.SetClipWindow(nil)
	r.ctx.Clear()
	r.ctx.Resolution(float32(size.X), float32(size.Y))

	if r.window != nil && r.showBorder {
		r.drawBorder(r.window.Rect)
	}
	r.ctx.SetClipWindow(r.window)

	for _, s := range shapes {
		r.draw(s, true)
	}
	if preview != nil {
		r.draw(*preview, false)
	}
	if n := r.cache.frame(); n > 0 {
		logging.Logger().Debug("released vertex buffers", "count", n)
	}
	return r.ctx.Image()
}

func (r *Renderer) draw(s state.Shape, retain bool) {
	var entry cachedShape
	cached := false
	if retain && s.ID != "" {
		entry, cached = r.cache.get(s.ID)
	}
	if !cached {
		if err := s.Validate(); err != nil {
			logging.Logger().Warn("skipping shape", "err", err)
			return
		}
		mode, v := s.Tessellate(r.segments)
		entry = cachedShape{mode: mode, buf: NewBuffer(v), bounds: geom.Bounds(v)}
		if retain && s.ID != "" {
			r.cache.put(s.ID, entry)
		}
	}

	size := r.ctx.Size()
	reach := max(s.Width, 1, r.prog.PointSize) / 2
	if !entry.bounds.Grow(reach).Overlaps(geom.Rect{Max: geom.Pt(float32(size.X), float32(size.Y))}) {
		return
	}

	r.ctx.Color(s.Color.R, s.Color.G, s.Color.B, 1)
	r.ctx.LineWidth(s.Width)
	if err := r.ctx.DrawArrays(entry.mode, entry.buf, 0, entry.buf.Len()); err != nil {
		logging.Logger().Warn("draw failed", "id", s.ID, "err", err)
	}
}

func (r *Renderer) drawBorder(rect geom.Rect) {
	buf := NewBuffer(geom.RectLoop(rect.Min, rect.Max))
	r.ctx.Color(0.58, 0.64, 0.72, 1)
	r.ctx.LineWidth(1)
	if err := r.ctx.DrawArrays(geom.LineStrip, buf, 0, buf.Len()); err != nil {
		logging.Logger().Warn("window border", "err", err)
	}
}

// Render draws shapes once into a fresh framebuffer. It is meant for
// exports and headless use.
func Render(opts Options, shapes []state.Shape) (*image.RGBA, error) {
	r, err := NewRenderer(opts)
	if err != nil {
		return nil, err
	}
	return r.Frame(shapes, nil), nil
}

package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"GraphicsStudio/internal/geom"
	"GraphicsStudio/internal/render"
	"GraphicsStudio/internal/state"
)

// pageMargin is the blank border around the drawing, in millimetres.
const pageMargin = 10

// WritePDF writes shapes as vector strokes on one landscape A4 page. The
// canvas is scaled to fit inside the margins, keeping its aspect ratio.
func WritePDF(w io.Writer, opts render.Options, shapes []state.Shape) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("export pdf: canvas size %dx%d", opts.Width, opts.Height)
	}
	segments := opts.EllipseSegments
	if segments <= 0 {
		segments = render.DefaultEllipseSegments
	}
	pointSize := opts.PointSize
	if pointSize <= 0 {
		pointSize = render.DefaultPointSize
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.SetCreator("GraphicsStudio", true)
	p.SetTitle("Drawing", true)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	canvas := geom.RectFromCorners(geom.Pt(0, 0), geom.Pt(float32(opts.Width), float32(opts.Height)))
	vp, err := geom.WindowToViewport(canvas, fitRect(canvas, pageW, pageH))
	if err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	scale := vp.ScaleX()

	for _, s := range shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		c := s.Color.NRGBA()
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.SetLineWidth(float64(max(s.Width, 1)) * scale)

		mode, v := s.Tessellate(segments)
		if mode == geom.Points {
			h := float64(pointSize) / 2 * scale
			for _, pt := range v {
				q := vp.Apply(pt)
				p.Rect(float64(q.X)-h, float64(q.Y)-h, 2*h, 2*h, "F")
			}
			continue
		}
		for _, seg := range mode.Segments(v) {
			a, b := vp.Apply(seg[0]), vp.Apply(seg[1])
			p.Line(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

// fitRect returns the largest rectangle with canvas's aspect ratio centred
// inside a pageW×pageH page less the margins.
func fitRect(canvas geom.Rect, pageW, pageH float64) geom.Rect {
	availW, availH := pageW-2*pageMargin, pageH-2*pageMargin
	s := min(availW/float64(canvas.Dx()), availH/float64(canvas.Dy()))
	w, h := float64(canvas.Dx())*s, float64(canvas.Dy())*s
	x, y := (pageW-w)/2, (pageH-h)/2
	return geom.RectFromCorners(geom.Pt(float32(x), float32(y)), geom.Pt(float32(x+w), float32(y+h)))
}

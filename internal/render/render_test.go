package render

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GraphicsStudio/internal/geom"
	"GraphicsStudio/internal/state"
)

var (
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{Width: 800, Height: 600})
	require.NoError(t, err)
	return r
}

func shape(id string, k state.Kind, hex string, width float32, anchors ...geom.Point) state.Shape {
	return state.Shape{ID: id, Kind: k, Anchors: anchors, Color: state.ParseHex(hex), Width: width}
}

func TestNewRendererFailsWithoutSize(t *testing.T) {
	_, err := NewRenderer(Options{Width: 0, Height: 600})
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestEmptyFrameIsWhite(t *testing.T) {
	img := newRenderer(t).Frame(nil, nil)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(799, 599))
}

func TestRectangleEdgesOnly(t *testing.T) {
	r := newRenderer(t)
	img := r.Frame([]state.Shape{
		shape("r", state.KindRectangle, "#ff0000", 2, geom.Pt(100, 100), geom.Pt(300, 200)),
	}, nil)

	assert.Equal(t, red, img.RGBAAt(200, 100), "top edge")
	assert.Equal(t, red, img.RGBAAt(200, 99), "top edge")
	assert.Equal(t, red, img.RGBAAt(300, 150), "right edge")
	assert.Equal(t, red, img.RGBAAt(150, 199), "bottom edge")
	assert.Equal(t, white, img.RGBAAt(200, 150), "interior")
	assert.Equal(t, white, img.RGBAAt(50, 50), "outside")
}

func TestPointIsFixedSizeDot(t *testing.T) {
	r := newRenderer(t)
	img := r.Frame([]state.Shape{
		shape("p", state.KindPoint, "#0000ff", 1, geom.Pt(50, 50)),
	}, nil)

	assert.Equal(t, blue, img.RGBAAt(50, 50))
	assert.Equal(t, blue, img.RGBAAt(46, 46))
	assert.Equal(t, blue, img.RGBAAt(53, 53))
	assert.Equal(t, white, img.RGBAAt(45, 50))
	assert.Equal(t, white, img.RGBAAt(54, 50))
}

func TestPreviewDrawnOnTop(t *testing.T) {
	r := newRenderer(t)
	committed := shape("c", state.KindLine, "#0000ff", 4, geom.Pt(0, 300), geom.Pt(800, 300))
	preview := shape("", state.KindLine, "#ff0000", 4, geom.Pt(400, 0), geom.Pt(400, 600))

	img := r.Frame([]state.Shape{committed}, &preview)

	assert.Equal(t, red, img.RGBAAt(400, 300))
	assert.Equal(t, blue, img.RGBAAt(100, 300))
	assert.Equal(t, red, img.RGBAAt(400, 100))
	assert.Equal(t, 1, r.cache.len(), "the preview is not retained")
}

func TestEllipseOutline(t *testing.T) {
	r := newRenderer(t)
	img := r.Frame([]state.Shape{
		shape("e", state.KindEllipse, "#10b981", 2, geom.Pt(400, 300), geom.Pt(500, 350)),
	}, nil)

	assert.NotEqual(t, white, img.RGBAAt(499, 300), "rightmost vertex")
	assert.NotEqual(t, white, img.RGBAAt(400, 349), "bottom vertex")
	assert.Equal(t, white, img.RGBAAt(400, 300), "centre")
	assert.Equal(t, white, img.RGBAAt(520, 300), "outside")
}

func TestBufferCacheFollowsShapes(t *testing.T) {
	r := newRenderer(t)
	a := shape("a", state.KindLine, "#000000", 1, geom.Pt(0, 0), geom.Pt(10, 10))
	b := shape("b", state.KindRectangle, "#000000", 1, geom.Pt(20, 20), geom.Pt(40, 40))

	r.Frame([]state.Shape{a, b}, nil)
	require.Equal(t, 2, r.cache.len())
	first, ok := r.cache.res["b"]
	require.True(t, ok)

	r.Frame([]state.Shape{b}, nil)
	assert.Equal(t, 1, r.cache.len())
	again, ok := r.cache.res["b"]
	require.True(t, ok)
	assert.Same(t, first.buf, again.buf, "buffer is reused across frames")
	assert.Equal(t, 5, again.buf.Len())

	r.Frame(nil, nil)
	assert.Zero(t, r.cache.len())
	assert.Zero(t, first.buf.Len(), "evicted buffers are released")
}

func TestClipWindow(t *testing.T) {
	for _, alg := range []geom.ClipAlgorithm{geom.CohenSutherland, geom.LiangBarsky} {
		t.Run(alg.String(), func(t *testing.T) {
			r := newRenderer(t)
			r.SetClipWindow(&ClipWindow{
				Rect:      geom.RectFromCorners(geom.Pt(200, 200), geom.Pt(600, 400)),
				Algorithm: alg,
			}, true)
			img := r.Frame([]state.Shape{
				shape("l", state.KindLine, "#ff0000", 4, geom.Pt(0, 300), geom.Pt(800, 300)),
				shape("p", state.KindPoint, "#ff0000", 1, geom.Pt(100, 100)),
			}, nil)

			assert.Equal(t, red, img.RGBAAt(400, 300), "inside the window")
			assert.Equal(t, white, img.RGBAAt(100, 300), "clipped away")
			assert.Equal(t, white, img.RGBAAt(100, 100), "point culled")
			assert.NotEqual(t, white, img.RGBAAt(200, 250), "window border")
		})
	}
}

func TestRenderOneShot(t *testing.T) {
	img, err := Render(Options{Width: 100, Height: 80}, []state.Shape{
		shape("l", state.KindLine, "#ff0000", 2, geom.Pt(0, 40), geom.Pt(100, 40)),
	})
	require.NoError(t, err)
	assert.Equal(t, red, img.RGBAAt(50, 40))
}

func TestDrawArraysErrors(t *testing.T) {
	ctx, err := NewContext(10, 10)
	require.NoError(t, err)
	buf := NewBuffer([]geom.Point{{X: 1, Y: 1}, {X: 5, Y: 5}})

	assert.Error(t, ctx.DrawArrays(geom.Lines, buf, 0, 2), "no program")

	ctx.UseProgram(NewProgram(0))
	assert.Error(t, ctx.DrawArrays(geom.Lines, buf, 1, 2))
	assert.NoError(t, ctx.DrawArrays(geom.Lines, buf, 0, 0))
	assert.NoError(t, ctx.DrawArrays(geom.Lines, buf, 0, 2))
}

func TestVertexStageMapsToClipSpace(t *testing.T) {
	p := NewProgram(0)
	assert.Equal(t, float32(DefaultPointSize), p.PointSize)
	u := &uniforms{resolution: geom.Pt(800, 600)}
	clip, size := p.vertex(geom.Pt(0, 0), u)
	assert.Equal(t, geom.Pt(-1, 1), clip)
	assert.Equal(t, float32(8), size)

	u.color = color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	assert.Equal(t, u.color, p.fragment(u))
}

func TestFarGeometryIsCutToFramebuffer(t *testing.T) {
	shapes := []state.Shape{
		shape("l", state.KindLine, "#ff0000", 4, geom.Pt(-1e9, -1e9), geom.Pt(100, 100)),
		shape("e", state.KindEllipse, "#0000ff", 2, geom.Pt(400, 300), geom.Pt(4e8, 3e8)),
		shape("p", state.KindPoint, "#0000ff", 1, geom.Pt(-1e9, 5)),
		shape("x", state.KindRectangle, "#0000ff", 1, geom.Pt(-2e9, -2e9), geom.Pt(-1e9, -1e9)),
	}
	for _, window := range []*ClipWindow{nil, {Rect: geom.RectFromCorners(geom.Pt(0, 0), geom.Pt(400, 300)), Algorithm: geom.LiangBarsky}} {
		r := newRenderer(t)
		r.SetClipWindow(window, false)

		start := time.Now()
		img := r.Frame(shapes, nil)
		assert.Less(t, time.Since(start), time.Second)

		assert.Equal(t, red, img.RGBAAt(99, 99))
		assert.Equal(t, red, img.RGBAAt(50, 50))
		assert.Equal(t, white, img.RGBAAt(100, 50))
		assert.Equal(t, white, img.RGBAAt(0, 5), "far point culled")
	}
}

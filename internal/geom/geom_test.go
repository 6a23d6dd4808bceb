package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, eps, "y of %v", got)
}

func TestToClip(t *testing.T) {
	res := Pt(800, 600)
	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"top left", Pt(0, 0), Pt(-1, 1)},
		{"bottom right", Pt(800, 600), Pt(1, -1)},
		{"centre", Pt(400, 300), Pt(0, 0)},
		{"quarter", Pt(200, 150), Pt(-0.5, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ToClip(tt.in, res)
			assertPoint(t, tt.want, c)
			assertPoint(t, tt.in, FromClip(c, res))
		})
	}
}

func TestRectLoop(t *testing.T) {
	v := RectLoop(Pt(100, 100), Pt(300, 200))
	assert.Equal(t, []Point{
		{100, 100}, {300, 100}, {300, 200}, {100, 200}, {100, 100},
	}, v)
}

func TestRectLoopBoundsMatchAnchors(t *testing.T) {
	pairs := [][2]Point{
		{Pt(300, 200), Pt(100, 100)},
		{Pt(10, 500), Pt(700, 20)},
		{Pt(5, 5), Pt(5, 5)},
	}
	for _, p := range pairs {
		v := RectLoop(p[0], p[1])
		require.Len(t, v, 5)
		assert.Equal(t, v[0], v[4])
		assert.Equal(t, RectFromCorners(p[0], p[1]), Bounds(v))
		for i := 0; i < 4; i++ {
			a, b := v[i], v[i+1]
			assert.True(t, a.X == b.X || a.Y == b.Y, "edge %v-%v is not axis aligned", a, b)
		}
	}
}

func TestEllipseLoop(t *testing.T) {
	for _, edge := range []Point{Pt(150, 80), Pt(100, 100), Pt(40, 130)} {
		c := Pt(100, 100)
		v := EllipseLoop(c, edge, 50)
		require.Len(t, v, 51)
		assertPoint(t, v[0], v[50])

		rx := math.Abs(float64(edge.X - c.X))
		ry := math.Abs(float64(edge.Y - c.Y))
		assertPoint(t, Pt(c.X+float32(rx), c.Y), v[0])
		if rx == 0 || ry == 0 {
			continue
		}
		for _, p := range v {
			dx := float64(p.X-c.X) / rx
			dy := float64(p.Y-c.Y) / ry
			assert.InDelta(t, 1, dx*dx+dy*dy, 1e-3)
		}
	}
}

func TestEllipseLoopQuarterPoints(t *testing.T) {
	v := EllipseLoop(Pt(0, 0), Pt(20, 10), 4)
	require.Len(t, v, 5)
	assertPoint(t, Pt(20, 0), v[0])
	assertPoint(t, Pt(0, 10), v[1])
	assertPoint(t, Pt(-20, 0), v[2])
	assertPoint(t, Pt(0, -10), v[3])
}

func TestModeSegments(t *testing.T) {
	v := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	assert.Len(t, Points.Segments(v), 0)
	assert.Len(t, Lines.Segments(v), 2)
	assert.Len(t, LineStrip.Segments(v), 3)
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(Pt(300, 50), Pt(100, 200))
	assert.Equal(t, Rect{Min: Pt(100, 50), Max: Pt(300, 200)}, r)
	assert.True(t, r.Contains(Pt(100, 50)))
	assert.False(t, r.Contains(Pt(99, 50)))
	assert.Equal(t, float32(200), r.Dx())
	assert.Equal(t, float32(150), r.Dy())
	assert.True(t, Rect{}.Empty())
}

func TestRectOverlapsGrow(t *testing.T) {
	a := RectFromCorners(Pt(0, 0), Pt(10, 10))
	b := RectFromCorners(Pt(5, 5), Pt(20, 20))
	c := RectFromCorners(Pt(30, 30), Pt(40, 40))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.True(t, a.ContainsAll([]Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 3, Y: 7}}))
	assert.False(t, a.ContainsAll([]Point{{X: 3, Y: 7}, {X: 11, Y: 0}}))
	assert.Equal(t, RectFromCorners(Pt(-2, -2), Pt(12, 12)), a.Grow(2))
}

func TestClip(t *testing.T) {
	w := RectFromCorners(Pt(100, 100), Pt(300, 200))
	tests := []struct {
		name   string
		p0, p1 Point
		ok     bool
		q0, q1 Point
	}{
		{"inside", Pt(150, 150), Pt(250, 180), true, Pt(150, 150), Pt(250, 180)},
		{"left of window", Pt(0, 0), Pt(50, 300), false, Point{}, Point{}},
		{"crosses horizontally", Pt(0, 150), Pt(400, 150), true, Pt(100, 150), Pt(300, 150)},
		{"crosses vertically", Pt(200, 0), Pt(200, 400), true, Pt(200, 100), Pt(200, 200)},
		{"diagonal through corner region", Pt(50, 50), Pt(350, 250), true, Pt(125, 100), Pt(275, 200)},
		{"one end inside", Pt(200, 150), Pt(500, 150), true, Pt(200, 150), Pt(300, 150)},
		{"misses corner", Pt(0, 190), Pt(90, 300), false, Point{}, Point{}},
		{"degenerate inside", Pt(120, 120), Pt(120, 120), true, Pt(120, 120), Pt(120, 120)},
	}
	for _, alg := range []ClipAlgorithm{CohenSutherland, LiangBarsky} {
		for _, tt := range tests {
			t.Run(alg.String()+"/"+tt.name, func(t *testing.T) {
				q0, q1, ok := alg.Clip(w, tt.p0, tt.p1)
				require.Equal(t, tt.ok, ok)
				if !ok {
					return
				}
				assertPoint(t, tt.q0, q0)
				assertPoint(t, tt.q1, q1)
			})
		}
	}
}

func TestClipAlgorithmsAgree(t *testing.T) {
	w := RectFromCorners(Pt(200, 150), Pt(600, 450))
	step := float32(97)
	for x0 := float32(0); x0 <= 800; x0 += step {
		for y1 := float32(0); y1 <= 600; y1 += step {
			p0, p1 := Pt(x0, 600-y1), Pt(800-x0, y1)
			a0, a1, aok := CohenSutherland.Clip(w, p0, p1)
			b0, b1, bok := LiangBarsky.Clip(w, p0, p1)
			require.Equal(t, aok, bok, "%v-%v", p0, p1)
			if aok {
				assert.InDelta(t, a0.X, b0.X, 1e-2)
				assert.InDelta(t, a0.Y, b0.Y, 1e-2)
				assert.InDelta(t, a1.X, b1.X, 1e-2)
				assert.InDelta(t, a1.Y, b1.Y, 1e-2)
			}
		}
	}
}

func TestParseClipAlgorithm(t *testing.T) {
	a, err := ParseClipAlgorithm("liang-barsky")
	require.NoError(t, err)
	assert.Equal(t, LiangBarsky, a)
	_, err = ParseClipAlgorithm("sutherland-hodgman")
	assert.Error(t, err)
}

func TestWindowToViewport(t *testing.T) {
	vp, err := WindowToViewport(
		RectFromCorners(Pt(0, 0), Pt(800, 600)),
		RectFromCorners(Pt(10, 20), Pt(410, 320)),
	)
	require.NoError(t, err)
	assertPoint(t, Pt(10, 20), vp.Apply(Pt(0, 0)))
	assertPoint(t, Pt(410, 320), vp.Apply(Pt(800, 600)))
	assertPoint(t, Pt(210, 170), vp.Apply(Pt(400, 300)))
	assert.InDelta(t, 0.5, vp.ScaleX(), 1e-9)

	_, err = WindowToViewport(Rect{}, RectFromCorners(Pt(0, 0), Pt(1, 1)))
	assert.ErrorIs(t, err, ErrEmptyWindow)
}

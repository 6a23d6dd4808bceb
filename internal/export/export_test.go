package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GraphicsStudio/internal/geom"
	"GraphicsStudio/internal/render"
	"GraphicsStudio/internal/state"
)

var opts = render.Options{Width: 800, Height: 600}

func drawing() []state.Shape {
	return []state.Shape{
		{ID: "1", Kind: state.KindPoint, Anchors: []geom.Point{{X: 10, Y: 10}}, Color: state.ParseHex("#000000"), Width: 2},
		{ID: "2", Kind: state.KindLine, Anchors: []geom.Point{{X: 0, Y: 300}, {X: 800, Y: 300}}, Color: state.ParseHex("#ef4444"), Width: 4},
		{ID: "3", Kind: state.KindRectangle, Anchors: []geom.Point{{X: 100, Y: 100}, {X: 300, Y: 200}}, Color: state.ParseHex("#3b82f6"), Width: 2},
		{ID: "4", Kind: state.KindEllipse, Anchors: []geom.Point{{X: 400, Y: 300}, {X: 500, Y: 350}}, Color: state.ParseHex("#10b981"), Width: 1},
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, opts, drawing()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
	r, g, b, _ := img.At(100, 300).RGBA()
	assert.Equal(t, uint32(0xef), r>>8)
	assert.Equal(t, uint32(0x44), g>>8)
	assert.Equal(t, uint32(0x44), b>>8)
}

func TestWritePNGNoContext(t *testing.T) {
	err := WritePNG(&bytes.Buffer{}, render.Options{}, nil)
	assert.ErrorIs(t, err, render.ErrNoContext)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, opts, drawing()))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
	assert.Greater(t, buf.Len(), 500)
}

func TestWritePDFRejectsBadShape(t *testing.T) {
	bad := []state.Shape{{ID: "x", Kind: state.KindLine, Anchors: []geom.Point{{X: 1, Y: 1}}}}
	assert.Error(t, WritePDF(&bytes.Buffer{}, opts, bad))
}

func TestFitRect(t *testing.T) {
	canvas := geom.RectFromCorners(geom.Pt(0, 0), geom.Pt(800, 600))
	r := fitRect(canvas, 297, 210)
	assert.InDelta(t, 190, r.Dy(), 1e-3)
	assert.InDelta(t, 800.0/600*190, r.Dx(), 1e-3)
	assert.InDelta(t, 297.0/2, (r.Min.X+r.Max.X)/2, 1e-3)
}

func TestSaveLoad(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, Document{Width: 800, Height: 600, Shapes: drawing()}))
	assert.Contains(t, buf.String(), `"kind": "rectangle"`)
	assert.Contains(t, buf.String(), `"color": "#3b82f6"`)

	doc, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Equal(t, drawing(), doc.Shapes)
}

func TestSaveEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, Document{Width: 800, Height: 600}))
	assert.Contains(t, buf.String(), `"shapes": []`)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"not json":       `{`,
		"wrong version":  `{"version":7,"shapes":[]}`,
		"unknown kind":   `{"version":1,"shapes":[{"id":"a","kind":"spiral","anchors":[]}]}`,
		"anchor count":   `{"version":1,"shapes":[{"id":"a","kind":"line","anchors":[{"x":1,"y":1}],"color":"#000000"}]}`,
		"missing id":     `{"version":1,"shapes":[{"kind":"point","anchors":[{"x":1,"y":1}],"color":"#000000"}]}`,
		"bad colour hex": `{"version":1,"shapes":[{"id":"a","kind":"point","anchors":[{"x":1,"y":1}],"color":"red"}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(body))
			assert.Error(t, err)
		})
	}

	_, err := Load(strings.NewReader(`{"version":1,"shapes":[{"id":"a","kind":"point","anchors":[],"color":"#000000"}]}`))
	assert.ErrorIs(t, err, ErrBadDocument)
}

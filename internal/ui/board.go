package ui

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"GraphicsStudio/internal/geom"
	"GraphicsStudio/internal/logging"
	"GraphicsStudio/internal/render"
	"GraphicsStudio/internal/state"
)

// BoardWidget shows a drawing surface and feeds it pointer input. The
// canvas has a fixed pixel size; pointer positions are scaled from widget
// units to canvas pixels.
type BoardWidget struct {
	widget.BaseWidget
	state.NopListener

	surface *state.Surface
	pixels  image.Point
	raster  *canvas.Raster

	mu       sync.Mutex
	renderer *render.Renderer // nil when the drawing context failed
	blank    *image.RGBA

	last geom.Point
}

var (
	_ fyne.Widget       = (*BoardWidget)(nil)
	_ fyne.Draggable    = (*BoardWidget)(nil)
	_ desktop.Mouseable = (*BoardWidget)(nil)
)

// NewBoardWidget returns a board for surface. If the drawing context cannot
// be created the error is logged and the board stays blank.
func NewBoardWidget(surface *state.Surface, opts render.Options) *BoardWidget {
	b := &BoardWidget{surface: surface, pixels: image.Pt(opts.Width, opts.Height)}
	r, err := render.NewRenderer(opts)
	if err != nil {
		logging.Logger().Error("drawing context unavailable", "err", err)
	} else {
		b.renderer = r
	}

	b.raster = canvas.NewRaster(b.draw)
	b.raster.SetMinSize(fyne.NewSize(float32(max(opts.Width, 1)), float32(max(opts.Height, 1))))
	b.ExtendBaseWidget(b)
	surface.Subscribe(b)
	return b
}

// CreateRenderer implements fyne.Widget.
func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.raster)
}

// SetClipWindow restricts drawing to w, or removes the window when w is nil.
func (b *BoardWidget) SetClipWindow(w *render.ClipWindow, showBorder bool) {
	b.mu.Lock()
	if b.renderer != nil {
		b.renderer.SetClipWindow(w, showBorder)
	}
	b.mu.Unlock()
	b.Refresh()
}

// SurfaceChanged implements state.Listener. It may be called from network
// goroutines.
func (b *BoardWidget) SurfaceChanged() {
	fyne.Do(b.Refresh)
}

// Detach stops following the surface.
func (b *BoardWidget) Detach() {
	b.surface.Unsubscribe(b)
}

func (b *BoardWidget) draw(w, h int) image.Image {
	shapes, preview := b.surface.Frame()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.renderer == nil {
		if b.blank == nil {
			b.blank = image.NewRGBA(image.Rect(0, 0, 1, 1))
			draw.Draw(b.blank, b.blank.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		}
		return b.blank
	}
	return b.renderer.Frame(shapes, preview)
}

// toCanvas maps a widget position to canvas pixels.
func (b *BoardWidget) toCanvas(pos fyne.Position) geom.Point {
	size := b.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return geom.Pt(pos.X, pos.Y)
	}
	return geom.Pt(
		pos.X*float32(b.pixels.X)/size.Width,
		pos.Y*float32(b.pixels.Y)/size.Height,
	)
}

// MouseDown implements desktop.Mouseable.
func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.last = b.toCanvas(e.Position)
	b.surface.PointerDown(b.last)
}

// MouseUp implements desktop.Mouseable.
func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.surface.PointerUp(b.toCanvas(e.Position))
}

// Dragged implements fyne.Draggable.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.last = b.toCanvas(e.Position)
	b.surface.PointerMove(b.last)
}

// DragEnd implements fyne.Draggable. The gesture ends at the last dragged
// position if MouseUp has not already ended it.
func (b *BoardWidget) DragEnd() {
	b.surface.PointerUp(b.last)
}

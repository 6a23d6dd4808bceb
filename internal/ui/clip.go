package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"GraphicsStudio/internal/geom"
	"GraphicsStudio/internal/render"
)

// clipPanel edits the clip window: two corners, the clipping algorithm and
// whether the window border is drawn.
type clipPanel struct {
	studio *Studio

	enabled   *widget.Check
	border    *widget.Check
	algorithm *widget.Select
	corners   [4]*widget.Entry // xmin, ymin, xmax, ymax
	object    fyne.CanvasObject
}

func newClipPanel(s *Studio, width, height int) *clipPanel {
	p := &clipPanel{studio: s}
	defaults := [4]int{width / 4, height / 4, width * 3 / 4, height * 3 / 4}
	fields := container.NewHBox()
	for i, label := range []string{"x1", "y1", "x2", "y2"} {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(defaults[i]))
		e.OnSubmitted = func(string) { p.apply() }
		p.corners[i] = e
		fields.Add(widget.NewLabel(label))
		fields.Add(container.New(layout.NewGridWrapLayout(fyne.NewSize(64, 35)), e))
	}

	p.algorithm = widget.NewSelect(
		[]string{geom.CohenSutherland.String(), geom.LiangBarsky.String()},
		func(string) { p.apply() },
	)
	p.algorithm.SetSelected(geom.CohenSutherland.String())
	p.border = widget.NewCheck("Border", func(bool) { p.apply() })
	p.border.SetChecked(true)
	p.enabled = widget.NewCheck("Clip window", func(bool) { p.apply() })

	p.object = container.NewHBox(p.enabled, fields, p.algorithm, p.border, layout.NewSpacer())
	return p
}

// window returns the configured clip window, or nil when clipping is off.
func (p *clipPanel) window() (*render.ClipWindow, error) {
	if !p.enabled.Checked {
		return nil, nil
	}
	var v [4]float32
	for i, e := range p.corners {
		f, err := strconv.ParseFloat(e.Text, 32)
		if err != nil {
			return nil, fmt.Errorf("clip window: %q is not a number", e.Text)
		}
		v[i] = float32(f)
	}
	alg, err := geom.ParseClipAlgorithm(p.algorithm.Selected)
	if err != nil {
		return nil, fmt.Errorf("clip window: %w", err)
	}
	rect := geom.RectFromCorners(geom.Pt(v[0], v[1]), geom.Pt(v[2], v[3]))
	if rect.Empty() {
		return nil, fmt.Errorf("clip window: %w", geom.ErrEmptyWindow)
	}
	return &render.ClipWindow{Rect: rect, Algorithm: alg}, nil
}

func (p *clipPanel) apply() {
	// Widgets fire callbacks while the panel is still being built.
	if p.enabled == nil || p.studio.board == nil {
		return
	}
	w, err := p.window()
	if err != nil {
		p.studio.fail(err)
		return
	}
	p.studio.board.SetClipWindow(w, p.border.Checked)
	if w != nil {
		r := w.Rect
		p.studio.SetStatus(fmt.Sprintf("Clipping to (%g, %g)-(%g, %g) with %s",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, w.Algorithm))
	} else {
		p.studio.SetStatus("Clipping off")
	}
}

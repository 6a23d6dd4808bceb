package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"GraphicsStudio/internal/state"
)

// Thickness slider range.
const (
	minThickness = 1
	maxThickness = 10
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)

	border *canvas.Rectangle
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.border = canvas.NewRectangle(color.Transparent)
	s.border.StrokeColor = color.Gray{Y: 150}
	s.border.StrokeWidth = 1
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(state.ParseHex(s.Hex).NRGBA())
	rect.SetMinSize(fyne.NewSize(28, 28))
	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

func (s *colorSwatch) setSelected(on bool) {
	if on {
		s.border.StrokeColor = color.Black
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = color.Gray{Y: 150}
		s.border.StrokeWidth = 1
	}
	s.border.Refresh()
}

// toolbar is the tool selector: tool buttons, colour swatches and the
// thickness slider, followed by the file actions.
type toolbar struct {
	studio *Studio

	tools    map[state.Kind]*widget.Button
	swatches []*colorSwatch
	slider   *widget.Slider
	object   fyne.CanvasObject
}

func newToolbar(s *Studio) *toolbar {
	t := &toolbar{studio: s, tools: make(map[state.Kind]*widget.Button)}
	settings := s.surface.Settings()

	toolBox := container.NewHBox()
	for _, k := range state.Kinds {
		k := k
		b := widget.NewButton(toolLabel(k), func() { t.selectTool(k) })
		t.tools[k] = b
		toolBox.Add(b)
	}

	colorBox := container.NewHBox()
	for _, hex := range state.Palette {
		sw := newColorSwatch(hex, t.selectColor)
		t.swatches = append(t.swatches, sw)
		colorBox.Add(sw)
	}

	t.slider = widget.NewSlider(minThickness, maxThickness)
	t.slider.Step = 1
	t.slider.SetValue(float64(clampThickness(settings.Width)))
	t.slider.OnChanged = func(v float64) {
		s.surface.SetWidth(float32(v))
		s.updateStatus()
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.slider)

	files := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), s.clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), s.save),
		widget.NewToolbarAction(theme.FolderOpenIcon(), s.open),
	)
	exports := container.NewHBox(
		widget.NewButtonWithIcon("PNG", theme.DownloadIcon(), s.exportPNG),
		widget.NewButtonWithIcon("PDF", theme.DownloadIcon(), s.exportPDF),
	)

	t.object = container.NewHBox(
		widget.NewLabel("Tool:"),
		toolBox,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		widget.NewSeparator(),
		files,
		exports,
		layout.NewSpacer(),
	)
	t.sync(settings)
	return t
}

func (t *toolbar) selectTool(k state.Kind) {
	t.studio.surface.SetTool(k)
	t.sync(t.studio.surface.Settings())
	t.studio.updateStatus()
}

func (t *toolbar) selectColor(hex string) {
	t.studio.surface.SetColor(hex)
	t.sync(t.studio.surface.Settings())
	t.studio.updateStatus()
}

// sync highlights the active tool and colour.
func (t *toolbar) sync(s state.Settings) {
	for k, b := range t.tools {
		if k == s.Tool {
			b.Importance = widget.HighImportance
		} else {
			b.Importance = widget.MediumImportance
		}
		b.Refresh()
	}
	for _, sw := range t.swatches {
		sw.setSelected(strings.EqualFold(sw.Hex, s.Color))
	}
}

func toolLabel(k state.Kind) string {
	name := k.String()
	return strings.ToUpper(name[:1]) + name[1:] + " (" + strings.ToUpper(name[:1]) + ")"
}

func clampThickness(w float32) float32 {
	return min(max(w, minThickness), maxThickness)
}

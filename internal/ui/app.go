// Package ui is the studio window: the drawing board, the tool selector,
// the clip window controls and the status bar.
package ui

import (
	"errors"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"GraphicsStudio/internal/logging"
	"GraphicsStudio/internal/render"
	"GraphicsStudio/internal/state"
)

// AppID identifies the studio to the Fyne app.
const AppID = "io.graphicsstudio"

// Studio is the main window.
type Studio struct {
	state.NopListener

	window  fyne.Window
	surface *state.Surface
	actions Actions

	board   *BoardWidget
	tools   *toolbar
	clip    *clipPanel
	status  *widget.Label
	message *widget.Label
}

// NewStudio builds the studio window for surface in a.
func NewStudio(a fyne.App, surface *state.Surface, actions Actions, opts render.Options) *Studio {
	s := &Studio{
		window:  a.NewWindow("Graphics Studio"),
		surface: surface,
		actions: actions,
		status:  widget.NewLabel(""),
		message: widget.NewLabel("Ready"),
	}
	s.board = NewBoardWidget(surface, opts)
	s.tools = newToolbar(s)
	s.clip = newClipPanel(s, opts.Width, opts.Height)

	top := container.NewVBox(s.tools.object, s.clip.object)
	if link := actions.ShareLink(); link != "" {
		linkLabel := widget.NewLabel("Share: " + link)
		linkLabel.Selectable = true
		copyLink := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
			s.window.Clipboard().SetContent(link)
			s.SetStatus("Share link copied")
		})
		top.Add(container.NewHBox(linkLabel, copyLink))
	}
	bottom := container.NewHBox(s.status, layout.NewSpacer(), s.message)

	s.window.SetContent(container.NewBorder(top, bottom, nil, nil, s.board))
	s.window.Canvas().SetOnTypedKey(s.typedKey)
	s.window.Resize(fyne.NewSize(float32(opts.Width)+40, float32(opts.Height)+160))
	s.window.SetOnClosed(func() {
		surface.Unsubscribe(s)
		s.board.Detach()
	})
	surface.Subscribe(s)
	s.updateStatus()
	return s
}

// Window returns the studio window.
func (s *Studio) Window() fyne.Window { return s.window }

// ShowAndRun shows the window and runs the app until it is closed.
func (s *Studio) ShowAndRun() { s.window.ShowAndRun() }

// SetStatus shows msg in the status bar. Call it on the UI goroutine; use
// fyne.Do from elsewhere.
func (s *Studio) SetStatus(msg string) {
	s.message.SetText(msg)
}

// SurfaceChanged implements state.Listener. The drag hint follows the
// gesture state.
func (s *Studio) SurfaceChanged() {
	fyne.Do(s.updateStatus)
}

func (s *Studio) updateStatus() {
	s.status.SetText(statusText(s.surface.Settings(), s.surface.Drawing()))
}

// statusText describes the active tool settings. The drag hint is shown
// only while a shape is being dragged out.
func statusText(set state.Settings, drawing bool) string {
	text := fmt.Sprintf("Tool: %s | Color: %s | Width: %g", set.Tool, state.ParseHex(set.Color).Hex(), set.Width)
	if hint := set.Tool.Hint(); drawing && hint != "" {
		text += " | " + hint
	}
	return text
}

var toolKeys = map[fyne.KeyName]state.Kind{
	fyne.KeyP: state.KindPoint,
	fyne.KeyL: state.KindLine,
	fyne.KeyR: state.KindRectangle,
	fyne.KeyE: state.KindEllipse,
}

func (s *Studio) typedKey(ev *fyne.KeyEvent) {
	if k, ok := toolKeys[ev.Name]; ok {
		s.tools.selectTool(k)
		return
	}
	if ev.Name == fyne.KeyEscape {
		s.surface.Cancel()
	}
}

func (s *Studio) clear() {
	s.actions.Clear()
	s.SetStatus("Canvas cleared")
}

func (s *Studio) exportPNG() {
	s.saveFile("drawing.png", ".png", "PNG exported", s.actions.ExportPNG)
}

func (s *Studio) exportPDF() {
	s.saveFile("drawing.pdf", ".pdf", "PDF exported", s.actions.ExportPDF)
}

func (s *Studio) save() {
	s.saveFile("drawing.json", ".json", "Saved", s.actions.Save)
}

func (s *Studio) open() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			s.fail(err)
			return
		}
		if reader == nil {
			return
		}
		if err := readAndClose(reader, s.actions.Open); err != nil {
			s.fail(err)
			return
		}
		s.SetStatus(fmt.Sprintf("Opened %s", reader.URI().Name()))
	}, s.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (s *Studio) saveFile(name, ext, done string, write func(io.Writer) error) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			s.fail(err)
			return
		}
		if writer == nil {
			return
		}
		if err := writeAndClose(writer, write); err != nil {
			s.fail(err)
			return
		}
		s.SetStatus(fmt.Sprintf("%s to %s", done, writer.URI().Name()))
	}, s.window)
	fd.SetFileName(name)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	fd.Show()
}

func (s *Studio) fail(err error) {
	logging.Logger().Error("studio action failed", "err", err)
	s.SetStatus(err.Error())
	dialog.ShowError(err, s.window)
}

func writeAndClose(w io.WriteCloser, write func(io.Writer) error) error {
	err := write(w)
	return errors.Join(err, w.Close())
}

func readAndClose(r io.ReadCloser, read func(io.Reader) error) error {
	err := read(r)
	return errors.Join(err, r.Close())
}

// RunApp opens the studio for surface and blocks until the window closes.
// ready, if not nil, is called with the studio before the app runs.
func RunApp(surface *state.Surface, actions Actions, opts render.Options, ready func(*Studio)) {
	a := app.NewWithID(AppID)
	s := NewStudio(a, surface, actions, opts)
	if ready != nil {
		ready(s)
	}
	s.ShowAndRun()
}

package ui

import (
	"fmt"
	"io"

	"GraphicsStudio/internal/export"
	"GraphicsStudio/internal/logging"
	"GraphicsStudio/internal/render"
	"GraphicsStudio/internal/state"
)

// Actions are the commands the toolbar triggers. The studio window only
// talks to the rest of the program through this interface.
type Actions interface {
	Clear()
	ExportPNG(w io.Writer) error
	ExportPDF(w io.Writer) error
	Save(w io.Writer) error
	Open(r io.Reader) error
	// ShareLink is the join link for this board, or "" when not hosting.
	ShareLink() string
}

type surfaceActions struct {
	surface *state.Surface
	opts    render.Options
	link    string
}

// NewActions returns Actions operating on surface. Exports use opts for the
// canvas size.
func NewActions(surface *state.Surface, opts render.Options, shareLink string) Actions {
	return &surfaceActions{surface: surface, opts: opts, link: shareLink}
}

func (a *surfaceActions) Clear() {
	a.surface.Clear()
}

func (a *surfaceActions) ExportPNG(w io.Writer) error {
	if err := export.WritePNG(w, a.opts, a.surface.Shapes()); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}

func (a *surfaceActions) ExportPDF(w io.Writer) error {
	if err := export.WritePDF(w, a.opts, a.surface.Shapes()); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

func (a *surfaceActions) Save(w io.Writer) error {
	shapes := a.surface.Shapes()
	doc := export.Document{Width: a.opts.Width, Height: a.opts.Height, Shapes: shapes}
	if err := export.Save(w, doc); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	logging.Logger().Info("drawing saved", "shapes", len(shapes))
	return nil
}

func (a *surfaceActions) Open(r io.Reader) error {
	doc, err := export.Load(r)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if doc.Width != a.opts.Width || doc.Height != a.opts.Height {
		logging.Logger().Warn("document canvas size differs",
			"doc", fmt.Sprintf("%dx%d", doc.Width, doc.Height),
			"canvas", fmt.Sprintf("%dx%d", a.opts.Width, a.opts.Height))
	}
	a.surface.Load(doc.Shapes)
	logging.Logger().Info("drawing opened", "shapes", len(doc.Shapes))
	return nil
}

func (a *surfaceActions) ShareLink() string {
	return a.link
}

package export

import (
	"fmt"
	"image/png"
	"io"

	"GraphicsStudio/internal/render"
	"GraphicsStudio/internal/state"
)

// WritePNG renders shapes at canvas size and encodes the frame as PNG.
func WritePNG(w io.Writer, opts render.Options, shapes []state.Shape) error {
	img, err := render.Render(opts, shapes)
	if err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}

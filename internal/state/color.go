package state

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// RGB is an opaque colour with channels in [0, 1].
type RGB struct {
	R, G, B float32
}

// Palette is the toolbar's swatch list.
var Palette = []string{
	"#000000", "#3b82f6", "#ef4444", "#10b981",
	"#f59e0b", "#8b5cf6", "#ec4899", "#6b7280",
}

// ParseHex parses "#rrggbb" or "rrggbb" in either case. Anything else is
// black.
func ParseHex(s string) RGB {
	c, err := parseHex(s)
	if err != nil {
		return RGB{}
	}
	return c
}

func parseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("colour %q: want 6 hex digits", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return RGB{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return RGB{
		R: float32(b[0]) / 255,
		G: float32(b[1]) / 255,
		B: float32(b[2]) / 255,
	}, nil
}

// NRGBA returns c as an opaque 8-bit colour.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(b []byte) error {
	v, err := parseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func channel(v float32) uint8 {
	v = min(max(v, 0), 1)
	return uint8(v*255 + 0.5)
}

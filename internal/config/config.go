// Package config loads the studio settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = "studio.toml"

// Config holds the settings read from studio.toml. Zero values in the file
// keep the defaults.
type Config struct {
	Canvas   Canvas  `toml:"canvas"`
	Tools    Tools   `toml:"tools"`
	Sharing  Sharing `toml:"sharing"`
	LogLevel string  `toml:"log_level"`
}

// Canvas describes the fixed drawing surface.
type Canvas struct {
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
	EllipseSegments int     `toml:"ellipse_segments"`
	PointSize       float32 `toml:"point_size"`
}

// Tools holds the tool selector defaults.
type Tools struct {
	Tool      string  `toml:"tool"`
	Color     string  `toml:"color"`
	Thickness float32 `toml:"thickness"`
}

// Sharing configures the board sharing server.
type Sharing struct {
	Port int  `toml:"port"`
	MDNS bool `toml:"mdns"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:           800,
			Height:          600,
			EllipseSegments: 50,
			PointSize:       8,
		},
		Tools: Tools{
			Tool:      "point",
			Color:     "#3b82f6",
			Thickness: 2,
		},
		Sharing: Sharing{
			Port: 8888,
			MDNS: true,
		},
		LogLevel: "info",
	}
}

// DefaultPath returns ~/.config/graphicsstudio/studio.toml, or an empty
// string when the user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "graphicsstudio", fileName)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// fill restores defaults for fields the file set to zero.
func (c *Config) fill() {
	d := Default()
	if c.Canvas.Width == 0 {
		c.Canvas.Width = d.Canvas.Width
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = d.Canvas.Height
	}
	if c.Canvas.EllipseSegments == 0 {
		c.Canvas.EllipseSegments = d.Canvas.EllipseSegments
	}
	if c.Canvas.PointSize == 0 {
		c.Canvas.PointSize = d.Canvas.PointSize
	}
	if c.Tools.Tool == "" {
		c.Tools.Tool = d.Tools.Tool
	}
	if c.Tools.Color == "" {
		c.Tools.Color = d.Tools.Color
	}
	if c.Tools.Thickness == 0 {
		c.Tools.Thickness = d.Tools.Thickness
	}
	if c.Sharing.Port == 0 {
		c.Sharing.Port = d.Sharing.Port
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate reports settings the studio cannot run with.
func (c Config) Validate() error {
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("canvas size %dx%d is negative", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.EllipseSegments < 3 {
		return fmt.Errorf("ellipse_segments must be at least 3, got %d", c.Canvas.EllipseSegments)
	}
	if c.Sharing.Port < 0 || c.Sharing.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Sharing.Port)
	}
	return nil
}

package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/layergrove/engine/colors"
)

// ReferenceResolution is the screen size sprite positions and background sizes
// are expressed against.
var ReferenceResolution = mgl64.Vec2{1920, 1080}

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor mgl32.Vec4 // RGBA

	ReferenceResolution mgl64.Vec2
	TileSize            int
	AssetRoot           string
	LogLevel            string
	TickRate            int // fixed updates per second
}

// DefaultConfig returns the settings the sandbox starts from.
func DefaultConfig() Config {
	return Config{
		Title:               "layergrove",
		Width:               1280,
		Height:              720,
		VSync:               true,
		ClearColor:          colors.Slate,
		ReferenceResolution: ReferenceResolution,
		TileSize:            32,
		AssetRoot:           "assets",
		LogLevel:            "info",
		TickRate:            60,
	}
}

// Validate reports the first setting that cannot drive a run.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d: %w", c.Width, c.Height, ErrOutOfRange)
	case c.ReferenceResolution.X() <= 0 || c.ReferenceResolution.Y() <= 0:
		return fmt.Errorf("reference resolution %v: %w", c.ReferenceResolution, ErrOutOfRange)
	case c.TileSize <= 0:
		return fmt.Errorf("tile size %d: %w", c.TileSize, ErrOutOfRange)
	case c.TickRate <= 0:
		return fmt.Errorf("tick rate %d: %w", c.TickRate, ErrOutOfRange)
	}
	return nil
}

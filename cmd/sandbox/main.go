package main

import (
	"flag"

	"github.com/hubastard/layergrove/engine/colors"
	"github.com/hubastard/layergrove/engine/core"
	glbackend "github.com/hubastard/layergrove/engine/gfx/gl"
	"github.com/hubastard/layergrove/engine/logging"
	"github.com/hubastard/layergrove/engine/platform"
)

func main() {
	cfg := core.DefaultConfig()
	flag.StringVar(&cfg.Title, "title", "layergrove sandbox", "window title")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	flag.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "wait for vertical sync")
	flag.IntVar(&cfg.TickRate, "tick", cfg.TickRate, "fixed updates per second")
	flag.IntVar(&cfg.TileSize, "tile", cfg.TileSize, "tile edge in pixels")
	flag.StringVar(&cfg.AssetRoot, "assets", cfg.AssetRoot, "asset root directory")
	flag.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level (error, warn, info, debug, trace)")
	clearColor := flag.String("clear", colors.Hex(cfg.ClearColor), "clear color as #rrggbb[aa]")
	flag.Parse()

	logger := logging.New(logging.Options{Level: cfg.LogLevel})
	if c, err := colors.Parse(*clearColor); err != nil {
		logger.WithError(err).Warn("bad clear color, keeping default")
	} else {
		cfg.ClearColor = c
	}

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, logger)
		if err != nil {
			return nil, err
		}
		win = w
		return w, nil
	}
	newRenderer := func(w core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(w, cfg, logger)
	}

	err := core.Run(&Sandbox{}, cfg, logger, newWindow, newRenderer)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		logger.WithError(err).Fatal("sandbox stopped")
	}
}

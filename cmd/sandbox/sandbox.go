package main

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/layergrove/engine/assets"
	"github.com/hubastard/layergrove/engine/audio"
	"github.com/hubastard/layergrove/engine/audio/ebitenaudio"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/gfx"
	"github.com/hubastard/layergrove/engine/gfx/background"
	"github.com/hubastard/layergrove/engine/gfx/sprite"
	"github.com/hubastard/layergrove/engine/profiler"
	"github.com/hubastard/layergrove/engine/scene"
	log "github.com/sirupsen/logrus"
)

// Sandbox is the demo app: three background layers, a camera scrolled with
// WASD or the arrows, and a player sprite.
type Sandbox struct {
	scene *SceneModule
	audio *audio.Device
}

func (s *Sandbox) OnStart(e *core.Engine) {
	root := e.Config.AssetRoot
	prof := profiler.New()

	reg := background.NewRegistry(e.Renderer, e.Log)
	reg.Resolution = e.Config.ReferenceResolution
	reg.TileSize = e.Config.TileSize

	world := scene.NewWorld(e.Log)
	world.SetBackgrounds(reg)
	s.scene = NewSceneModule(world, reg, prof)

	// The demo runs with whatever loaded; failures are summed up once below.
	var failed loadErrors
	defer failed.report(e.Log)

	bgShader := gfx.NewShader(e.Renderer, "BG Shader", e.Log)
	failed.add(bgShader.LoadFiles(root, "background.vert", "background.frag", ""))
	spriteShader := gfx.NewShader(e.Renderer, "Texture Shader", e.Log)
	failed.add(spriteShader.LoadFiles(root, "sprite.vert", "sprite.frag", ""))
	s.scene.Own(bgShader, spriteShader)

	tileset, err := assets.LoadImage(root, "tileset.png")
	if err != nil {
		e.Log.WithError(err).Error("tileset missing, tile layers disabled")
		failed.add(err)
	} else {
		ground := reg.New("BG2")
		failed.add(ground.GenerateFlat(background.PlayerLayer, bgShader, groundTiles, mapColumns, tileset))
		decor := reg.New("BG1")
		failed.add(decor.GenerateFlat(background.CloseBackGround, bgShader, decorTiles, mapColumns, tileset))
	}

	sky := gfx.NewTexture(e.Renderer, "bg", e.Log)
	failed.add(sky.LoadFile(root, "bg.png"))
	size := mgl64.Vec2{1, 1}
	if g := reg.Get(background.PlayerLayer); g != nil {
		size = g.Size()
	}
	if err := reg.New("BG0").GenerateTexture(background.BackGround, bgShader, sky, size); err != nil {
		sky.Delete()
		failed.add(err)
	}

	cam := scene.NewCamera2D("Camera", e.Config.ReferenceResolution)
	cam.Attach(bgShader)
	world.Create("CameraController", scene.NewCameraController(cam))

	var jump *audio.Sound
	dev, err := audio.Open(ebitenaudio.New(e.Log), ebitenaudio.Decoder{}, audio.Options{Root: root}, e.Log)
	if err == nil {
		s.audio = dev
		jump = dev.NewSound("jump")
		failed.add(jump.LoadFile("jump"))
	} else {
		failed.add(err)
	}

	sheet := gfx.NewTexture(e.Renderer, "spritesheet", e.Log)
	failed.add(sheet.LoadFile(root, "spritesheet.png"))
	s.scene.Own(sheet)

	player := NewPlayer(e.Renderer, jump)
	player.Resolution = e.Config.ReferenceResolution
	player.Generate(sheet, spriteShader, rowIdle, mgl64.Vec2{64, 64})
	player.Animation = sprite.NewAnimation(4, 0.6, true)
	player.Stats = &s.scene.SpriteStats
	world.Create("Player", player)

	e.PushModule(s.scene)
	e.PushModule(NewDebugModule(s.scene, prof, 2*time.Second))
}

func (s *Sandbox) OnUpdate(*core.Engine, float64)   {}
func (s *Sandbox) OnRender(*core.Engine, float64)   {}
func (s *Sandbox) OnEvent(*core.Engine, core.Event) {}

// loadErrors collects the startup failures the demo tolerates.
type loadErrors []error

func (l *loadErrors) add(err error) {
	if err != nil {
		*l = append(*l, err)
	}
}

func (l *loadErrors) report(logger log.FieldLogger) error {
	err := errors.Join(*l...)
	if err != nil {
		logger.WithError(err).WithField("failures", len(*l)).Warn("sandbox started with missing assets")
	}
	return err
}

func (s *Sandbox) OnShutdown(*core.Engine) {
	if s.audio != nil {
		s.audio.Close()
	}
}

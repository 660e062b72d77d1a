package main

import (
	"time"

	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/gfx/background"
	"github.com/hubastard/layergrove/engine/gfx/quad"
	"github.com/hubastard/layergrove/engine/profiler"
	"github.com/hubastard/layergrove/engine/scene"
	log "github.com/sirupsen/logrus"
)

type deleter interface{ Delete() }

// SceneModule drives the world: fixed updates, then background layers and
// nodes each frame. Keys 0-2 toggle the three demo layers.
type SceneModule struct {
	World       *scene.World
	Backgrounds *background.Registry
	SpriteStats quad.Statistics

	prof  *profiler.Profiler
	owned []deleter
}

func NewSceneModule(w *scene.World, reg *background.Registry, prof *profiler.Profiler) *SceneModule {
	return &SceneModule{World: w, Backgrounds: reg, prof: prof}
}

// Own registers resources released on detach, after the nodes and layers.
func (m *SceneModule) Own(d ...deleter) { m.owned = append(m.owned, d...) }

func (m *SceneModule) OnAttach(e *core.Engine) {
	e.Log.WithFields(log.Fields{"nodes": m.World.Len(), "layers": len(m.Backgrounds.Occupied())}).Info("scene attached")
}

func (m *SceneModule) OnDetach(*core.Engine) {
	m.World.DeleteAll()
	m.Backgrounds.DeleteAll()
	for _, d := range m.owned {
		d.Delete()
	}
	m.owned = nil
}

func (m *SceneModule) OnUpdate(_ *core.Engine, dt float64) {
	defer m.prof.Start("World.Update")()
	m.World.Update(dt)
}

func (m *SceneModule) OnRender(*core.Engine, float64) {
	defer m.prof.Start("World.Render")()
	m.Backgrounds.ResetStats()
	m.SpriteStats = quad.Statistics{}
	m.World.Render()
}

func (m *SceneModule) OnEvent(e *core.Engine, ev core.Event) bool {
	if k, ok := ev.(core.EventKey); ok && k.Down {
		switch k.Key {
		case core.KeyEscape:
			e.Window.RequestClose()
			return true
		case core.Key0, core.Key1, core.Key2:
			m.toggle(background.Layer(k.Key - core.Key0))
			return true
		}
	}
	return m.World.HandleEvent(ev)
}

func (m *SceneModule) toggle(l background.Layer) {
	if b := m.Backgrounds.Get(l); b != nil {
		b.Visible = !b.Visible
	}
}

// DebugModule logs frame statistics every interval. Ctrl+P logs at once.
type DebugModule struct {
	scene    *SceneModule
	prof     *profiler.Profiler
	interval time.Duration

	elapsed float64
	frames  int
	log     log.FieldLogger
}

func NewDebugModule(s *SceneModule, prof *profiler.Profiler, interval time.Duration) *DebugModule {
	return &DebugModule{scene: s, prof: prof, interval: interval}
}

func (d *DebugModule) OnAttach(e *core.Engine) {
	d.log = e.Log.WithField("module", "debug")
	info := e.Renderer.Info()
	d.log.WithFields(log.Fields{"vendor": info.Vendor, "renderer": info.Renderer, "version": info.Version}).Info("gpu")
}

func (d *DebugModule) OnDetach(*core.Engine) {}

func (d *DebugModule) OnUpdate(_ *core.Engine, dt float64) {
	d.elapsed += dt
	if d.elapsed >= d.interval.Seconds() {
		d.Report()
	}
}

func (d *DebugModule) OnRender(*core.Engine, float64) { d.frames++ }

func (d *DebugModule) OnEvent(_ *core.Engine, ev core.Event) bool {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyP && k.Mods&core.ModCtrl != 0 {
		d.Report()
		return true
	}
	return false
}

// Report logs and resets the counters gathered since the last report.
func (d *DebugModule) Report() {
	r := d.prof.Report()
	bg := d.scene.Backgrounds.Stats()
	sp := d.scene.SpriteStats
	fps := 0.0
	if r.Window > 0 {
		fps = float64(d.frames) / r.Window.Seconds()
	}
	d.log.WithFields(log.Fields{
		"fps":        int(fps + 0.5),
		"draw_calls": bg.DrawCalls + sp.DrawCalls,
		"quads":      bg.QuadCount + sp.QuadCount,
		"vertices":   bg.TotalVertexCount() + sp.TotalVertexCount(),
		"nodes":      d.scene.World.Len(),
		"heap_mb":    float64(r.Memory.HeapAlloc) / (1 << 20),
		"goroutines": r.Memory.Goroutines,
	}).Info("frame stats")
	for _, s := range r.Scopes {
		d.log.WithFields(log.Fields{"scope": s.Name, "calls": s.Count, "avg": s.Avg(), "max": s.Max}).Debug("scope")
	}
	d.elapsed = 0
	d.frames = 0
}

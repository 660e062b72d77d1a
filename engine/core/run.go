package core

import (
	"runtime"
	"time"

	"github.com/hubastard/layergrove/engine/logging"
	log "github.com/sirupsen/logrus"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, logger log.FieldLogger, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	logger = logging.Or(logger)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Error("invalid config")
		return err
	}

	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		logger.WithError(err).Error("window creation failed")
		return err
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		logger.WithError(err).Error("renderer creation failed")
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{
		Window:   win,
		Renderer: rend,
		Input:    NewInput(),
		Config:   cfg,
		Log:      logger,
		start:    time.Now(),
	}
	win.SetEventCallback(func(ev Event) { eng.Dispatch(app, ev) })

	app.OnStart(eng)

	tick := time.Second / time.Duration(cfg.TickRate)
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			eng.Step(app, tick.Seconds())
			accum -= tick
			steps++
		}
		alpha := float64(accum) / float64(tick)

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		eng.Draw(app, alpha)

		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	eng.DetachAll()
	logger.Info("engine exit")
	return nil
}

// PushModule attaches m and adds it on top of the module stack.
func (e *Engine) PushModule(m Module) {
	e.Modules.Push(m)
	m.OnAttach(e)
}

// DetachAll pops every module, top first, and detaches it.
func (e *Engine) DetachAll() {
	for {
		m, ok := e.Modules.Pop()
		if !ok {
			return
		}
		m.OnDetach(e)
	}
}

// Dispatch routes a platform event through input state, the app and the
// module stack (top module first).
func (e *Engine) Dispatch(app App, ev Event) {
	e.Input.Handle(ev)
	app.OnEvent(e, ev)
	e.Modules.ForEachReverse(func(m Module) bool { return m.OnEvent(e, ev) })

	switch v := ev.(type) {
	case EventResize:
		if v.W < 1 || v.H < 1 {
			return
		}
		e.Renderer.Resize(v.W, v.H)
	case EventCloseRequested:
		e.Window.RequestClose()
	}
}

// Step runs one fixed update: the app first, then every module in push order.
func (e *Engine) Step(app App, dt float64) {
	app.OnUpdate(e, dt)
	e.Modules.ForEach(func(m Module) { m.OnUpdate(e, dt) })
}

// Draw renders one frame: the app first, then every module in push order.
func (e *Engine) Draw(app App, alpha float64) {
	app.OnRender(e, alpha)
	e.Modules.ForEach(func(m Module) { m.OnRender(e, alpha) })
}

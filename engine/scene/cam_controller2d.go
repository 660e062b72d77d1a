package scene

import "github.com/hubastard/layergrove/engine/core"

// CameraController scrolls a camera while arrow or WASD keys are held. Attach
// it to a world with World.Create(name, controller).
type CameraController struct {
	Hooks

	Speed  float32 // NDC units per second
	Camera *Camera2D

	held map[Direction]bool
}

func NewCameraController(cam *Camera2D) *CameraController {
	return &CameraController{
		Speed:  0.5,
		Camera: cam,
		held:   map[Direction]bool{},
	}
}

func (cc *CameraController) Kind() string { return "CameraController" }

func (cc *CameraController) OnKeyDown(_ *Node, k core.Key) {
	if d, ok := keyDirection(k); ok {
		cc.held[d] = true
	}
}

func (cc *CameraController) OnKeyUp(_ *Node, k core.Key) {
	if d, ok := keyDirection(k); ok {
		cc.held[d] = false
	}
}

// OnDisable drops held keys so a re-enabled controller does not drift.
func (cc *CameraController) OnDisable(*Node) {
	for d := range cc.held {
		cc.held[d] = false
	}
}

func (cc *CameraController) OnUpdate(_ *Node, dt float64) {
	step := cc.Speed * float32(dt)
	for _, d := range [...]Direction{Left, Right, Up, Down} {
		if cc.held[d] {
			cc.Camera.Scroll(d, step)
		}
	}
}

func keyDirection(k core.Key) (Direction, bool) {
	switch k {
	case core.KeyLeft, core.KeyA:
		return Left, true
	case core.KeyRight, core.KeyD:
		return Right, true
	case core.KeyUp, core.KeyW:
		return Up, true
	case core.KeyDown, core.KeyS:
		return Down, true
	}
	return 0, false
}

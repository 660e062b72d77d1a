package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uniformSink map[string]any

func (u uniformSink) SetUniform(name string, value any) { u[name] = value }

func TestCameraDefaults(t *testing.T) {
	c := NewCamera2D("main", mgl64.Vec2{})
	assert.Equal(t, core.ReferenceResolution, c.Resolution)
	assert.InDelta(t, 16.0/9.0, c.AspectRatio(), 1e-9)
	assert.Equal(t, "main (Camera)", c.String())
}

func TestCameraScrollPushesMoveVector(t *testing.T) {
	c := NewCamera2D("main", mgl64.Vec2{800, 600})
	sink := uniformSink{}
	c.Attach(sink)
	assert.Equal(t, mgl32.Vec4{}, sink["moveVector"])

	c.Scroll(Right, 0.5)
	c.Scroll(Up, 0.25)
	c.Scroll(Left, 0.125)
	c.Scroll(Down, 0.5)

	want := mgl32.Vec4{0.375, -0.25, 0, 0}
	assert.Equal(t, want, c.MoveVector())
	assert.Equal(t, want, sink["moveVector"])
}

func TestCameraVP(t *testing.T) {
	c := NewCamera2D("main", mgl64.Vec2{200, 100})
	sink := uniformSink{}
	c.Attach(sink)
	c.Apply()
	vp, ok := sink["uVP"].(mgl32.Mat4)
	require.True(t, ok)

	// right edge of the resolution maps to NDC x = 1
	p := vp.Mul4x1(mgl32.Vec4{100, 50, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-6)
	assert.InDelta(t, 1, p.Y(), 1e-6)

	c.Move(100, 0)
	p = c.VP().Mul4x1(mgl32.Vec4{100, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-6)

	c.SetZoom(0)
	assert.Equal(t, float32(0.05), c.Zoom)
}

func TestCameraController(t *testing.T) {
	w, _ := newTestWorld(t)
	cam := NewCamera2D("main", mgl64.Vec2{})
	ctrl := NewCameraController(cam)
	ctrl.Speed = 1
	n := w.Create("controller", ctrl)
	assert.Equal(t, "CameraController", n.Kind())

	w.KeyDown(core.KeyRight)
	w.Update(0.5)
	assert.InDelta(t, 0.5, cam.MoveVector().X(), 1e-6)

	w.KeyUp(core.KeyRight)
	w.KeyDown(core.KeyW)
	w.Update(0.25)
	assert.InDelta(t, 0.5, cam.MoveVector().X(), 1e-6)
	assert.InDelta(t, 0.25, cam.MoveVector().Y(), 1e-6)

	require.NoError(t, n.SetEnable(false))
	require.NoError(t, n.SetEnable(true))
	w.Update(1)
	assert.InDelta(t, 0.25, cam.MoveVector().Y(), 1e-6, "disable drops held keys")
}

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/object"
)

// Direction is a camera scroll direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// UniformTarget receives camera uniforms; gfx.Shader satisfies it.
type UniformTarget interface {
	SetUniform(name string, value any)
}

// Camera2D is an orthographic camera over the reference resolution. Scrolling
// accumulates into the "moveVector" uniform the background and sprite shaders
// offset by; VP is pushed as "uVP".
type Camera2D struct {
	object.Base

	Resolution  mgl64.Vec2
	X, Y        float32
	RotationRad float32
	Zoom        float32 // 1 = no zoom

	moveVector mgl32.Vec4
	targets    []UniformTarget
	vp         mgl32.Mat4
	dirty      bool
}

// NewCamera2D returns a camera over resolution; a zero resolution means
// core.ReferenceResolution.
func NewCamera2D(name string, resolution mgl64.Vec2) *Camera2D {
	if resolution.X() <= 0 || resolution.Y() <= 0 {
		resolution = core.ReferenceResolution
	}
	c := &Camera2D{
		Base:       object.New("Camera", name),
		Resolution: resolution,
		Zoom:       1,
		dirty:      true,
	}
	c.Recalculate()
	return c
}

// AspectRatio is width over height of the camera resolution.
func (c *Camera2D) AspectRatio() float64 { return c.Resolution.X() / c.Resolution.Y() }

// Attach registers t to receive uniforms on Scroll and Apply.
func (c *Camera2D) Attach(t UniformTarget) {
	c.targets = append(c.targets, t)
	t.SetUniform("moveVector", c.moveVector)
}

// MoveVector returns the accumulated scroll offset.
func (c *Camera2D) MoveVector() mgl32.Vec4 { return c.moveVector }

// Scroll shifts the camera by amount (NDC units) and pushes the new offset.
func (c *Camera2D) Scroll(d Direction, amount float32) {
	switch d {
	case Left:
		c.moveVector[0] -= amount
	case Right:
		c.moveVector[0] += amount
	case Up:
		c.moveVector[1] += amount
	case Down:
		c.moveVector[1] -= amount
	}
	for _, t := range c.targets {
		t.SetUniform("moveVector", c.moveVector)
	}
}

func (c *Camera2D) Move(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }
func (c *Camera2D) Rotate(dRad float32) { c.RotationRad += dRad; c.dirty = true }
func (c *Camera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

func (c *Camera2D) VP() mgl32.Mat4 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *Camera2D) Recalculate() {
	halfW := float32(c.Resolution.X()) * 0.5 / c.Zoom
	halfH := float32(c.Resolution.Y()) * 0.5 / c.Zoom
	proj := mgl32.Ortho(-halfW, halfW, -halfH, halfH, -1, 1)
	view := mgl32.HomogRotate3DZ(-c.RotationRad).Mul4(mgl32.Translate3D(-c.X, -c.Y, 0))
	c.vp = proj.Mul4(view)
	c.dirty = false
}

// Apply pushes the view-projection matrix to every attached target.
func (c *Camera2D) Apply() {
	vp := c.VP()
	for _, t := range c.targets {
		t.SetUniform("uVP", vp)
	}
}

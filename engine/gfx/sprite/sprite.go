// Package sprite draws screen-space quads cut from a sprite sheet. A Sprite
// is a scene behaviour: create it in a World and it starts, animates,
// renders and releases itself through the node callbacks.
package sprite

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/gfx"
	"github.com/hubastard/layergrove/engine/gfx/quad"
	"github.com/hubastard/layergrove/engine/scene"
)

// Sprite shows one frame of one row of a sheet. The sheet and shader are
// borrowed and never deleted by the sprite.
type Sprite struct {
	scene.Hooks

	Visible bool
	// Resolution maps positions in pixels to device coordinates.
	Resolution mgl64.Vec2
	// Animation, when set, drives the frame index from OnUpdate.
	Animation *Animation
	// Stats, when set, counts this sprite's draws.
	Stats *quad.Statistics

	node     *scene.Node
	sheet    *gfx.Texture
	shader   *gfx.Shader
	size     mgl64.Vec2 // frame size in pixels
	row      float64
	frame    int
	position mgl64.Vec2
	quad     *quad.Quad
}

func New(r core.Renderer) *Sprite {
	return &Sprite{
		Visible:    true,
		Resolution: core.ReferenceResolution,
		quad:       quad.New(r),
	}
}

func (s *Sprite) Kind() string { return "Sprite" }

func (s *Sprite) Node() *scene.Node    { return s.node }
func (s *Sprite) Sheet() *gfx.Texture  { return s.sheet }
func (s *Sprite) Shader() *gfx.Shader  { return s.shader }
func (s *Sprite) Size() mgl64.Vec2     { return s.size }
func (s *Sprite) Row() float64         { return s.row }
func (s *Sprite) Frame() int           { return s.frame }
func (s *Sprite) Position() mgl64.Vec2 { return s.position }
func (s *Sprite) Vertices() []float32  { return s.quad.Vertices() }

// Generate binds the sheet and shader, selects row and places the sprite at
// the origin. size is one frame in pixels.
func (s *Sprite) Generate(sheet *gfx.Texture, shader *gfx.Shader, row float64, size mgl64.Vec2) {
	s.sheet = sheet
	s.shader = shader
	s.size = size
	s.row = row
	s.frame = 0
	s.applyWindow()
	s.SetPosition(mgl64.Vec2{})
}

// SetRow selects a horizontal strip: V spans 1-row/rows down to
// 1-(row+1)/rows, rows being sheetHeight/frameHeight.
func (s *Sprite) SetRow(row float64) {
	s.row = row
	s.applyWindow()
}

// SetFrame selects a column: U spans frameWidth*i/sheetWidth to
// (frameWidth*i+frameWidth)/sheetWidth.
func (s *Sprite) SetFrame(i int) {
	s.frame = i
	s.applyWindow()
}

// U returns the left and right texture coordinates.
func (s *Sprite) U() (u0, u1 float32) {
	return s.quad.UV(quad.TopLeft).X(), s.quad.UV(quad.TopRight).X()
}

// V returns the bottom and top texture coordinates.
func (s *Sprite) V() (bottom, top float32) {
	return s.quad.UV(quad.BottomLeft).Y(), s.quad.UV(quad.TopLeft).Y()
}

// SetPosition centres the sprite on pos, with corners at (pos ± size) over
// the resolution.
func (s *Sprite) SetPosition(pos mgl64.Vec2) {
	s.position = pos
	res := s.Resolution
	right := float32((pos.X() + s.size.X()) / res.X())
	left := float32((pos.X() - s.size.X()) / res.X())
	top := float32((pos.Y() + s.size.Y()) / res.Y())
	bottom := float32((pos.Y() - s.size.Y()) / res.Y())
	s.quad.SetRect(left, bottom, right, top)
	s.quad.Upload()
}

func (s *Sprite) applyWindow() {
	if s.sheet == nil || s.sheet.Width == 0 || s.sheet.Height == 0 {
		return
	}
	w := quad.FromGrid(float64(s.frame), s.row, s.size.X(), s.size.Y(),
		float64(s.sheet.Width), float64(s.sheet.Height))
	s.quad.SetWindow(w, s.sheet.Flipped)
	s.quad.Upload()
}

func (s *Sprite) OnCreation(n *scene.Node) { s.node = n }

// OnStart allocates the GPU buffers with the first frame selected.
func (s *Sprite) OnStart(*scene.Node) {
	s.frame = 0
	s.applyWindow()
	s.quad.Allocate()
}

func (s *Sprite) OnUpdate(_ *scene.Node, dt float64) {
	if s.Animation == nil {
		return
	}
	if f := s.Animation.Update(dt); f != s.frame {
		s.SetFrame(f)
	}
}

func (s *Sprite) OnRender(*scene.Node) {
	if !s.Visible || s.sheet == nil || s.shader == nil {
		return
	}
	s.shader.Use()
	s.sheet.Bind()
	s.quad.Draw(s.Stats)
}

// OnDelete releases the buffers and drops the borrowed sheet and shader.
func (s *Sprite) OnDelete(*scene.Node) {
	s.quad.Release()
	s.sheet = nil
	s.shader = nil
}

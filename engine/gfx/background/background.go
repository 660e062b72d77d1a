// Package background renders up to five full or partial screen image layers
// in fixed back-to-front order. A layer image is either a ready texture or
// baked from a tile grid and a tileset.
package background

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/gfx"
	"github.com/hubastard/layergrove/engine/gfx/quad"
	"github.com/hubastard/layergrove/engine/object"
	log "github.com/sirupsen/logrus"
)

// Background is one layer image. It owns its texture and GPU buffers; the
// shader is borrowed.
type Background struct {
	object.Base

	Visible bool
	// TileSize is the edge of a baked tile in pixels.
	TileSize int
	// EraseAlpha is written to the alpha channel of erased tiles.
	EraseAlpha byte

	reg          *Registry
	log          log.FieldLogger
	layer        Layer
	texture      *gfx.Texture
	shader       *gfx.Shader
	transparency float64
	size         mgl64.Vec2 // in screens
	quad         *quad.Quad
}

func (b *Background) Layer() Layer          { return b.layer }
func (b *Background) Texture() *gfx.Texture { return b.texture }
func (b *Background) Shader() *gfx.Shader   { return b.shader }
func (b *Background) Generated() bool       { return b.quad != nil }

// Transparency is 0 for opaque, 1 for invisible.
func (b *Background) Transparency() float64 { return b.transparency }

// SetTransparency rejects values outside [0, 1] with core.ErrOutOfRange and
// keeps the previous value.
func (b *Background) SetTransparency(v float64) error {
	if v < 0 || v > 1 {
		err := fmt.Errorf("transparency %v not in [0,1]: %w", v, core.ErrOutOfRange)
		b.log.WithError(err).Error("transparency rejected")
		return err
	}
	b.transparency = v
	return nil
}

// Size is the extent in screens, anchored at the top-left corner.
func (b *Background) Size() mgl64.Vec2 { return b.size }
func (b *Background) Width() float64   { return b.size.X() }
func (b *Background) Height() float64  { return b.size.Y() }

func (b *Background) SetWidth(w float64) {
	b.size[0] = w
	b.calculateVertices()
}

func (b *Background) SetHeight(h float64) {
	b.size[1] = h
	b.calculateVertices()
}

func (b *Background) SetSize(size mgl64.Vec2) {
	b.size = size
	b.calculateVertices()
}

// Generate bakes grid against tileset, uploads the result and claims layer.
// The size in screens is the baked size over the registry's resolution.
func (b *Background) Generate(layer Layer, shader *gfx.Shader, grid [][]int, tileset *image.RGBA) error {
	mustLayer(layer)
	if err := b.checkLive(layer); err != nil {
		return err
	}
	baked, err := Bake(grid, tileset, b.TileSize)
	if err != nil {
		b.log.WithError(err).WithField("layer", layer).Error("bake failed")
		return err
	}
	tex := gfx.NewTexture(b.reg.r, b.Name()+"/baked", b.reg.log)
	tex.LoadImage(baked, true)

	res := b.reg.Resolution
	size := mgl64.Vec2{
		float64(baked.Bounds().Dx()) / res.X(),
		float64(baked.Bounds().Dy()) / res.Y(),
	}
	b.setup(layer, shader, tex, size)
	return nil
}

// GenerateFlat is Generate for row-major tile data.
func (b *Background) GenerateFlat(layer Layer, shader *gfx.Shader, data []int, columns int, tileset *image.RGBA) error {
	grid, err := FlatGrid(data, columns)
	if err != nil {
		b.log.WithError(err).WithField("layer", layer).Error("bad tile data")
		return err
	}
	return b.Generate(layer, shader, grid, tileset)
}

// GenerateTexture claims layer with a ready texture shown at size screens.
// The background takes ownership of tex unless it returns an error.
func (b *Background) GenerateTexture(layer Layer, shader *gfx.Shader, tex *gfx.Texture, size mgl64.Vec2) error {
	mustLayer(layer)
	if err := b.checkLive(layer); err != nil {
		return err
	}
	b.setup(layer, shader, tex, size)
	return nil
}

func (b *Background) checkLive(layer Layer) error {
	if !b.Deleted() {
		return nil
	}
	err := fmt.Errorf("generate %s: %w", b.Name(), core.ErrDeleted)
	b.log.WithError(err).WithField("layer", layer).Error("background deleted")
	return err
}

func (b *Background) setup(layer Layer, shader *gfx.Shader, tex *gfx.Texture, size mgl64.Vec2) {
	if b.texture != nil && b.texture != tex {
		b.texture.Delete()
	}
	if b.quad != nil {
		b.quad.Release()
		b.reg.release(b)
	}

	b.layer = layer
	b.shader = shader
	b.texture = tex
	b.size = size
	b.log = b.reg.log.WithFields(log.Fields{"background": b.Name(), "layer": layer})

	b.quad = quad.New(b.reg.r)
	if tex.Flipped {
		b.quad.SetV(0, 1)
	} else {
		b.quad.SetV(1, 0)
	}
	b.quad.Allocate()
	b.calculateVertices()
	b.reg.Set(layer, b)
}

// calculateVertices keeps the left and top edges on the screen's and moves
// the right and bottom edges by size.
func (b *Background) calculateVertices() {
	if b.quad == nil {
		return
	}
	right := float32(-1 + b.size.X()*2)
	bottom := float32(1 - b.size.Y()*2)
	b.quad.SetRect(-1, bottom, right, 1)
	b.quad.Upload()
}

// Vertices returns the current interleaved quad data, nil before Generate.
func (b *Background) Vertices() []float32 {
	if b.quad == nil {
		return nil
	}
	return b.quad.Vertices()
}

// Render draws the layer and reports whether a draw was issued. Hidden and
// fully transparent layers are skipped.
func (b *Background) Render() bool {
	if !b.Visible || b.transparency == 1 || b.quad == nil || b.Deleted() {
		return false
	}
	b.shader.Use()
	b.shader.SetUniform("transparency", float32(b.transparency))
	b.texture.Bind()
	b.quad.Draw(&b.reg.stats)
	return true
}

// Tile returns the pixel rectangle, in texture storage order, that grid
// cell index occupies.
func (b *Background) Tile(index int) (image.Rectangle, error) {
	if b.Deleted() || b.texture == nil || b.texture.Deleted() {
		return image.Rectangle{}, fmt.Errorf("tile %d: %w", index, core.ErrDeleted)
	}
	ts := b.TileSize
	tilesPerRow := b.texture.Width / ts
	tileRows := b.texture.Height / ts
	if index < 0 || index >= tilesPerRow*tileRows {
		return image.Rectangle{}, fmt.Errorf("tile %d outside %dx%d tiles: %w", index, tilesPerRow, tileRows, core.ErrOutOfRange)
	}
	x := (index % tilesPerRow) * ts
	y := (index / tilesPerRow) * ts
	if b.texture.Flipped {
		y = b.texture.Height - y - ts
	}
	return image.Rect(x, y, x+ts, y+ts), nil
}

// DeleteTile erases one tile in place: RGB goes to zero, alpha to EraseAlpha.
// Only the patched texture is re-uploaded.
func (b *Background) DeleteTile(index int) error {
	rect, err := b.Tile(index)
	if err != nil {
		b.log.WithError(err).Error("delete tile")
		return err
	}
	tex := b.texture
	stride := tex.Width * 4
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := tex.Data[y*stride+rect.Min.X*4 : y*stride+rect.Max.X*4]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2] = 0, 0, 0
			row[i+3] = b.EraseAlpha
		}
	}
	tex.Update()
	return nil
}

// Delete releases the texture and buffers and frees the slot if this
// background still holds it.
func (b *Background) Delete() {
	if b.Deleted() {
		return
	}
	if b.quad != nil {
		b.quad.Release()
	}
	if b.texture != nil {
		b.texture.Delete()
	}
	b.reg.release(b)
	b.shader = nil
	b.MarkDeleted()
}

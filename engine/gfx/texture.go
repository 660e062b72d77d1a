// Package gfx wraps GPU resources (textures and shader programs) over a
// core.Renderer so the scene packages never touch raw handles.
package gfx

import (
	"fmt"
	"image"

	"github.com/hubastard/layergrove/engine/assets"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/logging"
	"github.com/hubastard/layergrove/engine/object"
	log "github.com/sirupsen/logrus"
)

// DefaultTextureFile is loaded in place of a texture file that cannot be read.
const DefaultTextureFile = "Default.png"

// PlaceholderSize is the edge of the checkerboard used when even the default
// texture is missing.
const PlaceholderSize = 32

// Texture is an RGBA8 image mirrored on the GPU. Data keeps the CPU copy so
// callers can patch pixels and re-upload with Update.
type Texture struct {
	object.Base

	Width, Height int
	Data          []byte
	// Flipped is true when rows are stored bottom-up.
	Flipped bool

	r      core.Renderer
	log    log.FieldLogger
	handle core.Texture
}

func NewTexture(r core.Renderer, name string, logger log.FieldLogger) *Texture {
	t := &Texture{Base: object.New("Texture", name), r: r}
	t.log = logging.Or(logger).WithField("texture", t.Name())
	return t
}

// Handle returns the GPU handle, zero before the first upload.
func (t *Texture) Handle() core.Texture { return t.handle }

// LoadFile reads root/textures/relPath, flips it for GL and uploads it. When
// the file cannot be loaded the error is logged and returned, and the texture
// is filled from DefaultTextureFile or, failing that, a placeholder.
func (t *Texture) LoadFile(root, relPath string) error {
	img, err := assets.LoadImage(root, relPath)
	if err != nil {
		t.log.WithError(err).Error("texture load failed, using default")
		fallback, ferr := assets.LoadImage(root, DefaultTextureFile)
		if ferr != nil {
			t.log.WithError(ferr).Warn("default texture missing, using placeholder")
			fallback = assets.Placeholder(PlaceholderSize)
		}
		t.LoadImage(fallback, true)
		return fmt.Errorf("texture %s: %w", t.Name(), err)
	}
	t.LoadImage(img, true)
	return nil
}

// LoadImage uploads img, optionally flipping it vertically first.
func (t *Texture) LoadImage(img *image.RGBA, flip bool) {
	img = assets.ToRGBA(img)
	if flip {
		img = assets.FlipVertical(img)
	}
	t.Flipped = flip
	t.Generate(img.Bounds().Dx(), img.Bounds().Dy(), img.Pix)
}

// Generate replaces the pixel data and uploads it, creating the GPU texture
// on first use. rgba must hold width*height*4 bytes.
func (t *Texture) Generate(width, height int, rgba []byte) {
	if len(rgba) != width*height*4 {
		panic(fmt.Sprintf("layergrove: texture %s: %d bytes for %dx%d", t.Name(), len(rgba), width, height))
	}
	t.Width, t.Height = width, height
	t.Data = append(t.Data[:0], rgba...)
	if t.handle == 0 {
		t.handle = t.r.CreateTexture()
	}
	t.r.UploadTexture(t.handle, t.Width, t.Height, t.Data)
}

// Update re-uploads Data after it was patched in place.
func (t *Texture) Update() {
	if t.handle == 0 || t.Deleted() {
		t.log.Warn("update on a texture with no GPU storage")
		return
	}
	t.r.UploadTexture(t.handle, t.Width, t.Height, t.Data)
}

// Image views Data as an image without copying. Rows are in storage order.
func (t *Texture) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.Data,
		Stride: t.Width * 4,
		Rect:   image.Rect(0, 0, t.Width, t.Height),
	}
}

func (t *Texture) Bind() {
	if t.handle == 0 {
		return
	}
	t.r.BindTexture(t.handle)
}

// Delete releases the GPU texture and the CPU copy.
func (t *Texture) Delete() {
	if t.Deleted() {
		return
	}
	if t.handle != 0 {
		t.r.DeleteTexture(t.handle)
		t.handle = 0
	}
	t.Data = nil
	t.MarkDeleted()
}

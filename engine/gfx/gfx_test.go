package gfx

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/gfx/gfxtest"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTexture(t *testing.T, root, name string, img image.Image) {
	t.Helper()
	dir := filepath.Join(root, "textures")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func twoRowImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})
	return img
}

func TestTextureLoadFileFlips(t *testing.T) {
	root := t.TempDir()
	writeTexture(t, root, "bands.png", twoRowImage())
	r := gfxtest.New()
	logger, _ := test.NewNullLogger()

	tex := NewTexture(r, "bands", logger)
	require.NoError(t, tex.LoadFile(root, "bands.png"))

	assert.True(t, tex.Flipped)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
	// bottom row (blue) is stored first
	assert.Equal(t, byte(255), tex.Data[2])
	assert.Equal(t, byte(0), tex.Data[0])

	up := r.Images[tex.Handle()]
	assert.Equal(t, tex.Data, up.Pix)
}

func TestTextureMissingFallsBackToDefault(t *testing.T) {
	root := t.TempDir()
	def := image.NewRGBA(image.Rect(0, 0, 4, 4))
	writeTexture(t, root, DefaultTextureFile, def)
	r := gfxtest.New()
	logger, hook := test.NewNullLogger()

	tex := NewTexture(r, "hero", logger)
	err := tex.LoadFile(root, "hero.png")

	assert.ErrorIs(t, err, core.ErrAssetNotFound)
	assert.Equal(t, 4, tex.Width)
	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, log.ErrorLevel, hook.Entries[0].Level)
	assert.Equal(t, "hero", hook.Entries[0].Data["texture"])
}

func TestTextureMissingDefaultUsesPlaceholder(t *testing.T) {
	r := gfxtest.New()
	logger, hook := test.NewNullLogger()

	tex := NewTexture(r, "hero", logger)
	err := tex.LoadFile(t.TempDir(), "hero.png")

	assert.ErrorIs(t, err, core.ErrAssetNotFound)
	assert.Equal(t, PlaceholderSize, tex.Width)
	assert.Equal(t, PlaceholderSize, tex.Height)
	assert.Len(t, hook.Entries, 2)
	assert.Equal(t, 1, r.Count("CreateTexture"))
}

func TestTextureUpdateAndDelete(t *testing.T) {
	r := gfxtest.New()
	logger, hook := test.NewNullLogger()
	tex := NewTexture(r, "patch", logger)

	tex.Update()
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)

	tex.Generate(1, 1, []byte{1, 2, 3, 4})
	tex.Data[3] = 0
	tex.Update()
	assert.Equal(t, []byte{1, 2, 3, 0}, r.Images[tex.Handle()].Pix)
	assert.Equal(t, 2, r.Count("UploadTexture"))

	tex.Bind()
	assert.Equal(t, 1, r.Count("BindTexture"))

	tex.Delete()
	tex.Delete()
	assert.True(t, tex.Deleted())
	assert.Equal(t, 1, r.Count("DeleteTexture"))
	assert.Zero(t, r.Live())
}

func TestTextureGenerateRejectsShortData(t *testing.T) {
	tex := NewTexture(gfxtest.New(), "bad", nil)
	assert.Panics(t, func() { tex.Generate(2, 2, []byte{0}) })
}

func TestTextureImageView(t *testing.T) {
	tex := NewTexture(gfxtest.New(), "view", nil)
	tex.LoadImage(twoRowImage(), false)
	img := tex.Image()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(1, 0))

	img.SetRGBA(1, 0, color.RGBA{G: 9, A: 255})
	assert.Equal(t, byte(9), tex.Data[5], "view shares storage")
}

func TestShaderUniformCache(t *testing.T) {
	r := gfxtest.New()
	s := NewShader(r, "bg", nil)

	s.SetUniform("transparency", float32(0.5))
	assert.Zero(t, r.Count("SetUniform"), "no program yet")

	require.NoError(t, s.Compile(core.ShaderSource{Vertex: "v", Fragment: "f"}))
	s.Use()
	s.SetUniform("transparency", float32(0.5))
	s.SetUniform("transparency", float32(0.5))
	s.SetUniform("moveVector", mgl32.Vec4{1, 0, 0, 0})
	s.SetUniform("moveVector", mgl32.Vec4{1, 0, 0, 0})
	s.SetUniform("transparency", float32(0.25))
	assert.Equal(t, 3, r.Count("SetUniform"))
	assert.Equal(t, float32(0.25), r.Uniforms[s.Program()]["transparency"])
}

func TestShaderCompileFailure(t *testing.T) {
	r := gfxtest.New()
	r.FailProgram = true
	logger, hook := test.NewNullLogger()
	s := NewShader(r, "broken", logger)

	require.Error(t, s.Compile(core.ShaderSource{}))
	assert.Zero(t, s.Program())
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
}

func TestShaderLoadFilesMissing(t *testing.T) {
	s := NewShader(gfxtest.New(), "bg", nil)
	assert.ErrorIs(t, s.LoadFiles(t.TempDir(), "a.vert", "a.frag", ""), core.ErrAssetNotFound)
}

func TestShaderDelete(t *testing.T) {
	r := gfxtest.New()
	s := NewShader(r, "bg", nil)
	require.NoError(t, s.Compile(core.ShaderSource{Vertex: "v", Fragment: "f"}))
	s.Delete()
	s.Delete()
	assert.Equal(t, 1, r.Count("DeleteProgram"))
	assert.Zero(t, r.Live())
}

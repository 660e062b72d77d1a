package background

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/gfx"
	"github.com/hubastard/layergrove/engine/gfx/gfxtest"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patternTileset is w×h with R = x, G = y so every pixel is distinct.
func patternTileset(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	return img
}

type fixture struct {
	r      *gfxtest.Recorder
	reg    *Registry
	shader *gfx.Shader
	hook   *test.Hook
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	r := gfxtest.New()
	shader := gfx.NewShader(r, "background", logger)
	require.NoError(t, shader.Compile(core.ShaderSource{Vertex: "v", Fragment: "f"}))
	r.Reset()
	return fixture{r: r, reg: NewRegistry(r, logger), shader: shader, hook: hook}
}

func solidTexture(f fixture, name string) *gfx.Texture {
	tex := gfx.NewTexture(f.r, name, nil)
	tex.LoadImage(patternTileset(4, 4), true)
	return tex
}

func TestLayerOrdinals(t *testing.T) {
	assert.Equal(t, 0, int(BackGround))
	assert.Equal(t, 4, int(ForeGround))
	assert.Equal(t, "PlayerLayer", PlayerLayer.String())
	assert.Equal(t, "Layer(7)", Layer(7).String())
	assert.False(t, Layer(-1).Valid())
}

func TestInvalidLayerPanics(t *testing.T) {
	f := newFixture(t)
	assert.Panics(t, func() { f.reg.Get(Layer(5)) })
	b := f.reg.New("bg")
	assert.Panics(t, func() {
		b.GenerateTexture(Layer(-1), f.shader, solidTexture(f, "t"), mgl64.Vec2{1, 1})
	})
}

func TestBakeTwoByTwo(t *testing.T) {
	tileset := patternTileset(128, 32) // tilesPerRow = 4
	baked, err := Bake([][]int{{0, 1}, {2, 3}}, tileset, 32)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 64), baked.Bounds())

	for idx := 0; idx < 4; idx++ {
		row, col := idx/2, idx%2
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				want := tileset.RGBAAt(idx*32+x, y)
				got := baked.RGBAAt(col*32+x, row*32+y)
				require.Equal(t, want, got, "tile %d pixel (%d,%d)", idx, x, y)
			}
		}
	}
}

func TestBakeSourceRowsWrap(t *testing.T) {
	tileset := patternTileset(64, 64) // 2x2 tiles
	baked, err := Bake([][]int{{3}}, tileset, 32)
	require.NoError(t, err)
	assert.Equal(t, tileset.RGBAAt(32, 32), baked.RGBAAt(0, 0))
	assert.Equal(t, tileset.RGBAAt(63, 63), baked.RGBAAt(31, 31))
}

func TestBakeRejectsBadInput(t *testing.T) {
	tileset := patternTileset(64, 32)
	cases := map[string][][]int{
		"empty":    {},
		"ragged":   {{0, 1}, {0}},
		"negative": {{-1}},
		"overflow": {{2}},
	}
	for name, grid := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Bake(grid, tileset, 32)
			assert.ErrorIs(t, err, core.ErrOutOfRange)
		})
	}

	_, err := Bake([][]int{{0}}, patternTileset(16, 16), 32)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
	assert.Panics(t, func() { _, _ = Bake([][]int{{0}}, tileset, 0) })

	_, err = Bake([][]int{{0}}, nil, 32)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestFlatGrid(t *testing.T) {
	grid, err := FlatGrid([]int{1, 2, 3, 4, 5, 6}, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}}, grid)

	_, err = FlatGrid([]int{1, 2, 3}, 2)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
}

func TestTransparencyRange(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")

	err := b.SetTransparency(1.5)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
	assert.Equal(t, 0.0, b.Transparency())
	require.NotNil(t, f.hook.LastEntry())
	assert.Equal(t, log.ErrorLevel, f.hook.LastEntry().Level)

	assert.Error(t, b.SetTransparency(-0.1))
	require.NoError(t, b.SetTransparency(0.4))
	assert.Equal(t, 0.4, b.Transparency())
	require.NoError(t, b.SetTransparency(1))
}

func TestGenerateBakesAndClaimsSlot(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("ground")
	require.NoError(t, b.Generate(CloseBackGround, f.shader, [][]int{{0, 1}, {2, 3}}, patternTileset(128, 32)))

	assert.Same(t, b, f.reg.Get(CloseBackGround))
	assert.Equal(t, []Layer{CloseBackGround}, f.reg.Occupied())
	assert.True(t, b.Texture().Flipped)
	assert.Equal(t, 64, b.Texture().Width)
	assert.InDelta(t, 64.0/1920, b.Width(), 1e-12)
	assert.InDelta(t, 64.0/1080, b.Height(), 1e-12)
	assert.Equal(t, 1, f.r.Count("CreateTexture"))
	assert.Equal(t, 2, f.r.Count("CreateBuffer"))
}

func TestGenerateFlat(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("flat")
	require.NoError(t, b.GenerateFlat(ForeGround, f.shader, []int{0, 1, 2, 3}, 2, patternTileset(128, 32)))
	assert.Equal(t, 64, b.Texture().Height)

	bad := f.reg.New("bad")
	assert.Error(t, bad.GenerateFlat(BackGround, f.shader, []int{0, 1, 2}, 2, patternTileset(128, 32)))
	assert.Nil(t, f.reg.Get(BackGround))
	assert.False(t, bad.Generated())
}

func TestWidthHeightRecomputeVertices(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")
	b.GenerateTexture(BackGround, f.shader, solidTexture(f, "t"), mgl64.Vec2{1, 1})
	vbo := f.r.Calls[len(f.r.Calls)-1].Args[0].(core.Buffer)

	// full screen: right = 1, bottom = -1
	v := b.Vertices()
	assert.Equal(t, []float32{1, 1, 0, 1, 1}, v[0:5])
	assert.Equal(t, []float32{-1, -1, 0, 0, 0}, v[10:15])

	uploads := f.r.Count("UploadVertexData")
	b.SetWidth(0.5)
	b.SetHeight(0.25)
	assert.Equal(t, uploads+2, f.r.Count("UploadVertexData"))

	v = f.r.Vertices[vbo]
	assert.InDelta(t, 0.0, v[0], 1e-6)   // top right x
	assert.InDelta(t, 1.0, v[1], 1e-6)   // top right y
	assert.InDelta(t, -1.0, v[5], 1e-6)  // top left x
	assert.InDelta(t, 0.5, v[11], 1e-6)  // bottom left y
	assert.InDelta(t, 0.0, v[15], 1e-6)  // bottom right x
	assert.InDelta(t, 0.5, v[16], 1e-6)  // bottom right y
	assert.Equal(t, mgl64.Vec2{0.5, 0.25}, b.Size())
}

func TestUnflippedTextureUsesTopDownV(t *testing.T) {
	f := newFixture(t)
	tex := gfx.NewTexture(f.r, "raw", nil)
	tex.LoadImage(patternTileset(4, 4), false)
	b := f.reg.New("bg")
	b.GenerateTexture(BackGround, f.shader, tex, mgl64.Vec2{1, 1})
	v := b.Vertices()
	assert.Equal(t, float32(0), v[4], "top edge samples the first row")
	assert.Equal(t, float32(1), v[14])
}

func TestRenderAllOrder(t *testing.T) {
	f := newFixture(t)
	player := f.reg.New("player")
	player.GenerateTexture(PlayerLayer, f.shader, solidTexture(f, "player"), mgl64.Vec2{1, 1})
	back := f.reg.New("back")
	back.GenerateTexture(BackGround, f.shader, solidTexture(f, "back"), mgl64.Vec2{1, 1})
	f.r.Reset()

	f.reg.RenderAll()

	require.Len(t, f.r.Draws, 2)
	assert.Equal(t, back.Texture().Handle(), f.r.Draws[0].Texture)
	assert.Equal(t, player.Texture().Handle(), f.r.Draws[1].Texture)
	assert.Equal(t, 2, f.reg.Stats().DrawCalls)

	f.reg.ResetStats()
	assert.Zero(t, f.reg.Stats().DrawCalls)
}

func TestRenderSkipsHiddenAndTransparent(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")
	b.GenerateTexture(BackGround, f.shader, solidTexture(f, "t"), mgl64.Vec2{1, 1})

	b.Visible = false
	assert.False(t, b.Render())
	b.Visible = true
	require.NoError(t, b.SetTransparency(1))
	assert.False(t, b.Render())
	assert.Empty(t, f.r.Draws)

	require.NoError(t, b.SetTransparency(0.5))
	assert.True(t, b.Render())
	require.Len(t, f.r.Draws, 1)
	assert.Equal(t, float32(0.5), f.r.Draws[0].Uniforms["transparency"])
}

func TestSharedShaderTransparencyDoesNotLeak(t *testing.T) {
	f := newFixture(t)
	faded := f.reg.New("faded")
	faded.GenerateTexture(BackGround, f.shader, solidTexture(f, "a"), mgl64.Vec2{1, 1})
	require.NoError(t, faded.SetTransparency(0.5))
	solid := f.reg.New("solid")
	solid.GenerateTexture(ForeGround, f.shader, solidTexture(f, "b"), mgl64.Vec2{1, 1})

	f.reg.RenderAll()
	require.Len(t, f.r.Draws, 2)
	assert.Equal(t, float32(0.5), f.r.Draws[0].Uniforms["transparency"])
	assert.Equal(t, float32(0), f.r.Draws[1].Uniforms["transparency"])
}

func TestDeleteTileTouchesOnlyItsBlock(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")
	require.NoError(t, b.Generate(BackGround, f.shader, [][]int{{0, 1}, {2, 3}}, patternTileset(128, 32)))
	tex := b.Texture()
	before := append([]byte(nil), tex.Data...)

	rect, err := b.Tile(1)
	require.NoError(t, err)
	// grid cell 1 is top right; storage is bottom-up
	assert.Equal(t, image.Rect(32, 32, 64, 64), rect)

	uploads := f.r.Count("UploadTexture")
	require.NoError(t, b.DeleteTile(1))
	assert.Equal(t, uploads+1, f.r.Count("UploadTexture"))

	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			o := y*tex.Width*4 + x*4
			px := tex.Data[o : o+4]
			if image.Pt(x, y).In(rect) {
				require.Equal(t, []byte{0, 0, 0, b.EraseAlpha}, px, "(%d,%d)", x, y)
			} else {
				require.Equal(t, before[o:o+4], px, "(%d,%d)", x, y)
			}
		}
	}
	assert.Equal(t, tex.Data, f.r.Images[tex.Handle()].Pix)
}

func TestDeleteTileEraseAlpha(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")
	b.EraseAlpha = 1
	require.NoError(t, b.Generate(BackGround, f.shader, [][]int{{0}}, patternTileset(32, 32)))
	require.NoError(t, b.DeleteTile(0))
	assert.Equal(t, []byte{0, 0, 0, 1}, b.Texture().Data[:4])
}

func TestDeleteTileOutOfRange(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")
	assert.ErrorIs(t, b.DeleteTile(0), core.ErrDeleted)

	require.NoError(t, b.Generate(BackGround, f.shader, [][]int{{0, 1}}, patternTileset(64, 32)))
	uploads := f.r.Count("UploadTexture")
	assert.ErrorIs(t, b.DeleteTile(2), core.ErrOutOfRange)
	assert.ErrorIs(t, b.DeleteTile(-1), core.ErrOutOfRange)
	assert.Equal(t, uploads, f.r.Count("UploadTexture"))
}

func TestSlotReplacement(t *testing.T) {
	f := newFixture(t)
	first := f.reg.New("first")
	first.GenerateTexture(PlayerLayer, f.shader, solidTexture(f, "a"), mgl64.Vec2{1, 1})
	second := f.reg.New("second")
	second.GenerateTexture(PlayerLayer, f.shader, solidTexture(f, "b"), mgl64.Vec2{1, 1})

	assert.Same(t, second, f.reg.Get(PlayerLayer))
	assert.Equal(t, log.WarnLevel, f.hook.LastEntry().Level)
	assert.False(t, first.Deleted(), "displaced background is not freed")

	first.Delete()
	assert.Same(t, second, f.reg.Get(PlayerLayer), "displaced delete leaves the slot alone")

	second.Delete()
	assert.Nil(t, f.reg.Get(PlayerLayer))
}

func TestDeleteAllReleasesEverything(t *testing.T) {
	f := newFixture(t)
	for i, l := range []Layer{BackGround, CloseForeGround} {
		b := f.reg.New("bg")
		b.GenerateTexture(l, f.shader, solidTexture(f, string(rune('a'+i))), mgl64.Vec2{1, 1})
	}
	f.reg.DeleteAll()
	assert.Empty(t, f.reg.Occupied())
	assert.Equal(t, 1, f.r.Live(), "only the borrowed shader remains")
	f.r.Reset()
	f.reg.RenderAll()
	assert.Empty(t, f.r.Draws)
}

func TestRegenerateReleasesPrevious(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")
	b.GenerateTexture(BackGround, f.shader, solidTexture(f, "a"), mgl64.Vec2{1, 1})
	b.GenerateTexture(ForeGround, f.shader, solidTexture(f, "b"), mgl64.Vec2{1, 1})

	assert.Nil(t, f.reg.Get(BackGround))
	assert.Same(t, b, f.reg.Get(ForeGround))
	assert.Equal(t, 4, f.r.Live(), "shader, texture, two buffers")
}

func TestTileAfterDelete(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")
	require.NoError(t, b.GenerateTexture(BackGround, f.shader, solidTexture(f, "a"), mgl64.Vec2{1, 1}))
	b.TileSize = 2
	b.Delete()

	_, err := b.Tile(0)
	assert.ErrorIs(t, err, core.ErrDeleted)
	assert.NotPanics(t, func() {
		assert.ErrorIs(t, b.DeleteTile(0), core.ErrDeleted)
	})
	assert.Equal(t, log.ErrorLevel, f.hook.LastEntry().Level)
}

func TestGenerateAfterDelete(t *testing.T) {
	f := newFixture(t)
	b := f.reg.New("bg")
	require.NoError(t, b.GenerateTexture(BackGround, f.shader, solidTexture(f, "a"), mgl64.Vec2{1, 1}))
	b.Delete()
	live := f.r.Live()

	tex := solidTexture(f, "b")
	assert.ErrorIs(t, b.GenerateTexture(ForeGround, f.shader, tex, mgl64.Vec2{1, 1}), core.ErrDeleted)
	assert.False(t, tex.Deleted(), "rejected texture stays with the caller")
	tex.Delete()

	err := b.Generate(CloseForeGround, f.shader, [][]int{{0}}, patternTileset(32, 32))
	assert.ErrorIs(t, err, core.ErrDeleted)
	assert.Equal(t, log.ErrorLevel, f.hook.LastEntry().Level)

	assert.Empty(t, f.reg.Occupied())
	assert.Equal(t, live, f.r.Live())
	f.r.Reset()
	f.reg.RenderAll()
	assert.Empty(t, f.r.Draws)
}

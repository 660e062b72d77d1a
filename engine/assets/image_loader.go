package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hubastard/layergrove/engine/core"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes root/textures/relPath (PNG, BMP or WebP) into tightly
// packed RGBA8 (stride == 4*w, top-left origin). A missing file wraps
// core.ErrAssetNotFound.
func LoadImage(root, relPath string) (*image.RGBA, error) {
	path := filepath.Join(root, "textures", relPath)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %q: %w", path, core.ErrAssetNotFound)
		}
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as an origin-anchored, tightly packed *image.RGBA,
// copying only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if m, ok := img.(*image.RGBA); ok && m.Stride == b.Dx()*4 && b.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FlipVertical returns a copy of img with its rows reversed, matching
// OpenGL's bottom-left texture origin.
func FlipVertical(img *image.RGBA) *image.RGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	rowLen := w * 4
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		dst := out.Pix[(h-1-y)*out.Stride : (h-1-y)*out.Stride+rowLen]
		copy(dst, src)
	}
	return out
}

// Placeholder returns a magenta/black checkerboard of size×size pixels in
// 8-pixel cells, used when neither an asset nor its fallback can be loaded.
func Placeholder(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	magenta := color.RGBA{R: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/8+y/8)%2 == 0 {
				img.SetRGBA(x, y, magenta)
			} else {
				img.SetRGBA(x, y, black)
			}
		}
	}
	return img
}

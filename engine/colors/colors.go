// Package colors names the RGBA values the engine and sandbox use and parses
// them from hex strings.
package colors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	White    = mgl32.Vec4{1, 1, 1, 1}
	Black    = mgl32.Vec4{0, 0, 0, 1}
	Magenta  = mgl32.Vec4{1, 0, 1, 1}
	DarkGray = mgl32.Vec4{0.08, 0.10, 0.12, 1}
	// Slate is the default clear color.
	Slate = mgl32.Vec4{0.2, 0.3, 0.3, 1}
)

func WithAlpha(c mgl32.Vec4, a float32) mgl32.Vec4 {
	c[3] = a
	return c
}

// Parse reads "#rrggbb" or "#rrggbbaa"; the leading '#' is optional.
func Parse(s string) (mgl32.Vec4, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return mgl32.Vec4{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return mgl32.Vec4{}, fmt.Errorf("color %q: %w", s, err)
	}
	var c mgl32.Vec4
	for i := range c {
		c[i] = float32(v>>(24-8*i)&0xff) / 255
	}
	return c, nil
}

// Hex formats c as "#rrggbbaa", clamping each channel to [0,1].
func Hex(c mgl32.Vec4) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, f := range c {
		f = mgl32.Clamp(f, 0, 1)
		fmt.Fprintf(&b, "%02x", uint8(f*255+0.5))
	}
	return b.String()
}

package quad

// Window describes a UV sub-rect of a texture, measured from the top-left.
type Window struct {
	U0, V0 float32 // top-left
	U1, V1 float32 // bottom-right
}

// FromPixels builds a window from pixel coordinates within an atlas.
func FromPixels(x, y, w, h, atlasW, atlasH float64) Window {
	return Window{
		U0: float32(x / atlasW),
		V0: float32(y / atlasH),
		U1: float32((x + w) / atlasW),
		V1: float32((y + h) / atlasH),
	}
}

// FromGrid builds a window from cell coordinates (cx, cy) of size (cw, ch).
func FromGrid(cx, cy, cw, ch, atlasW, atlasH float64) Window {
	return FromPixels(cx*cw, cy*ch, cw, ch, atlasW, atlasH)
}

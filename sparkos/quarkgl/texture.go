package quarkgl

// Texture is an RGB565 bitmap addressed in texel units.
type Texture struct {
	Width  int
	Height int
	Bitmap []uint16

	HasTransparency bool
	Transparent     uint16
}

// At returns the texel at (u, v), wrapping out-of-range coordinates.
func (t *Texture) At(u, v int) uint16 {
	if t == nil || t.Width <= 0 || t.Height <= 0 || len(t.Bitmap) < t.Width*t.Height {
		return 0
	}
	u %= t.Width
	if u < 0 {
		u += t.Width
	}
	v %= t.Height
	if v < 0 {
		v += t.Height
	}
	return t.Bitmap[v*t.Width+u]
}

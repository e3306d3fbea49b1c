package quarkgl

// Color is an RGB color in 8-bit channels.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// RGB565 packs the color as rrrrrggggggbbbbb.
func (c Color) RGB565() uint16 { return RGB565From888(c.R, c.G, c.B) }

// ColorFromRGB565 expands a packed RGB565 value.
func ColorFromRGB565(p uint16) Color {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F
	return Color{
		R: uint8((rr * 255) / 31),
		G: uint8((gg * 255) / 63),
		B: uint8((bb * 255) / 31),
	}
}

// Scale multiplies every channel by s, clamped to [0, 1].
func (c Color) Scale(s Scalar) Color {
	if s < 0 {
		s = 0
	}
	if s > One {
		s = One
	}
	mul := func(ch uint8) uint8 {
		return uint8((int64(ch) * int64(s)) >> scalarShift)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B)}
}

func RGB565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

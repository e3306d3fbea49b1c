package quarkgl

// Target is a minimal RGB565 pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c uint16)
	Clear(c uint16)
}

// Primitive selects how DrawArray groups indices.
type Primitive uint8

const (
	PrimTriangles Primitive = iota
	PrimQuads
)

func (p Primitive) verts() int {
	if p == PrimQuads {
		return 4
	}
	return 3
}

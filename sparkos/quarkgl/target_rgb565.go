package quarkgl

// RGB565Target renders into a little-endian RGB565 byte buffer.
//
// Callers provide the backing buffer and layout (stride).
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) Clear(c uint16) {
	if t == nil || t.Buf == nil || t.Stride <= 0 || t.W <= 0 || t.H <= 0 {
		return
	}
	lo := byte(c)
	hi := byte(c >> 8)
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(t.Buf) {
				continue
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}

func (t *RGB565Target) SetPixel(x, y int, c uint16) {
	if t == nil || t.Buf == nil {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return
	}
	t.Buf[off] = byte(c)
	t.Buf[off+1] = byte(c >> 8)
}

// Pixel reads back one pixel. Out-of-range reads return 0.
func (t *RGB565Target) Pixel(x, y int) uint16 {
	if t == nil || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return 0
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return 0
	}
	return uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8
}

// UpscaleInto doubles a w/2 x h/2 region at the top-left of src into dst.
//
// src and dst may share a buffer; rows are walked bottom-up so that no
// source pixel is overwritten before it is read.
func UpscaleInto(dst, src *RGB565Target, sw, sh int) {
	if dst == nil || src == nil || sw <= 0 || sh <= 0 {
		return
	}
	for y := dst.H - 1; y >= 0; y-- {
		sy := y / 2
		if sy >= sh {
			continue
		}
		for x := dst.W - 1; x >= 0; x-- {
			sx := x / 2
			if sx >= sw {
				continue
			}
			dst.SetPixel(x, y, src.Pixel(sx, sy))
		}
	}
}

type MemTarget struct {
	w, h int
	pix  []uint16
}

// NewMemTarget returns an in-memory target, mostly useful for tests and offscreen passes.
func NewMemTarget(w, h int) *MemTarget {
	return &MemTarget{w: w, h: h, pix: make([]uint16, w*h)}
}

func (t *MemTarget) Size() (w, h int) { return t.w, t.h }

func (t *MemTarget) Clear(c uint16) {
	for i := range t.pix {
		t.pix[i] = c
	}
}

func (t *MemTarget) SetPixel(x, y int, c uint16) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return
	}
	t.pix[y*t.w+x] = c
}

func (t *MemTarget) Pixel(x, y int) uint16 {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return 0
	}
	return t.pix[y*t.w+x]
}

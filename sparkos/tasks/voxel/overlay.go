package voxel

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"sparkcraft/hal"
	"sparkcraft/sparkos/quarkgl"
)

var (
	overlayFont  = &tinyfont.TomThumb
	overlayColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

const overlayLineHeight = 7

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// fps derives frames per second from the average frame time in ms.
func (t *Task) fps() int {
	avg := t.frameTimes.Value()
	if avg <= 0 {
		return 0
	}
	return int(1000 / avg)
}

// overlayLines formats the debug text shown in the top-left corner.
func (t *Task) overlayLines() []string {
	return []string{
		fmt.Sprintf("%d FPS", t.fps()),
		fmt.Sprintf("%d mspt", int(t.frameTimes.Value())),
		fmt.Sprintf("%d verts", t.lastIndices),
		fmt.Sprintf("greed %d", t.world.GreedLimit()),
		"tex " + onOff(t.world.UsingTextures()),
		"half " + onOff(t.half),
	}
}

func (t *Task) drawOverlay() {
	d := &fbDisplayer{fb: t.fb}
	y := int16(overlayLineHeight)
	for _, line := range t.overlayLines() {
		tinyfont.WriteLine(d, overlayFont, 2, y, line, overlayColor)
		y += overlayLineHeight
	}
}

// fbDisplayer lets tinyfont draw straight into an RGB565 framebuffer.
type fbDisplayer struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplayer)(nil)

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := quarkgl.RGB565From888(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplayer) Display() error { return nil }

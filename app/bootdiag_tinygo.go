//go:build tinygo && bootdebug

package app

import (
	"image/color"
	"machine"
	"sync"
	"time"

	"tinygo.org/x/tinyfont"

	"sparkcraft/hal"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
)

// bootDiagStart streams the current boot step over the logger and USB CDC
// every 250 ms.
func bootDiagStart(h hal.HAL) {
	if h == nil {
		return
	}
	l := h.Logger()

	go func() {
		for {
			bootDiagMu.Lock()
			step := bootDiagStep
			bootDiagMu.Unlock()

			if step == "" {
				step = "<empty>"
			}
			line := "bootdiag: " + step
			if l != nil {
				l.WriteLineString(line)
			}
			if usb := machine.USBCDC; usb != nil {
				_, _ = usb.Write([]byte(line + "\r\n"))
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}

// bootStep records msg and shows it on screen.
func bootStep(h hal.HAL, msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()

	if h == nil || h.Display() == nil {
		return
	}
	fb := h.Display().Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(0, 0, 0)
	d := panicDisplay{fb: fb}
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	tinyfont.WriteLine(d, &tinyfont.TomThumb, 0, 8, "sparkcraft boot", fg)
	tinyfont.WriteLine(d, &tinyfont.TomThumb, 0, 16, msg, fg)
	_ = fb.Present()
}

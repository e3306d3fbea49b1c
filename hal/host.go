//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Host framebuffer size.
const (
	HostWidth  = 320
	HostHeight = 240
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	touch  *hostTouchpad
	t      *hostTime

	mouseDown    bool
	lastX, lastY int
}

// New returns a host HAL implementation.
func New() HAL {
	return newHostHAL(os.Stdout)
}

func newHostHAL(w io.Writer) *hostHAL {
	return &hostHAL{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(HostWidth, HostHeight),
		kbd:    newHostKeyboard(),
		touch:  &hostTouchpad{},
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, touch: h.touch} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd   *hostKeyboard
	touch *hostTouchpad
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Touchpad() Touchpad { return in.touch }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(code KeyCode, press bool) {
	select {
	case k.ch <- KeyEvent{Code: code, Press: press}:
	default:
	}
}

type hostTouchpad struct {
	mu      sync.Mutex
	contact bool
	dx, dy  int
}

func (t *hostTouchpad) Report() TouchReport {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := TouchReport{Contact: t.contact, XVel: t.dx, YVel: t.dy}
	t.dx, t.dy = 0, 0
	return r
}

// move accumulates pointer motion in screen pixels (y down).
func (t *hostTouchpad) move(contact bool, dx, dy int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.contact = contact
	if contact {
		t.dx += dx
		t.dy -= dy
	}
}

//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type keyBinding struct {
	key  ebiten.Key
	code KeyCode
}

// hostKeys maps desktop keys to handheld key codes. Digits, the numpad and
// WASD/QE/Space/Shift all drive the same keypad codes.
var hostKeys = []keyBinding{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyF1, KeyF1},
	{ebiten.KeyF2, KeyF2},
	{ebiten.KeyF3, KeyF3},

	{ebiten.KeyDigit0, Key0},
	{ebiten.KeyDigit1, Key1},
	{ebiten.KeyDigit2, Key2},
	{ebiten.KeyDigit3, Key3},
	{ebiten.KeyDigit4, Key4},
	{ebiten.KeyDigit5, Key5},
	{ebiten.KeyDigit6, Key6},
	{ebiten.KeyDigit7, Key7},
	{ebiten.KeyDigit8, Key8},
	{ebiten.KeyDigit9, Key9},

	{ebiten.KeyNumpad0, Key0},
	{ebiten.KeyNumpad1, Key1},
	{ebiten.KeyNumpad2, Key2},
	{ebiten.KeyNumpad3, Key3},
	{ebiten.KeyNumpad4, Key4},
	{ebiten.KeyNumpad5, Key5},
	{ebiten.KeyNumpad6, Key6},
	{ebiten.KeyNumpad7, Key7},
	{ebiten.KeyNumpad8, Key8},
	{ebiten.KeyNumpad9, Key9},

	{ebiten.KeyW, Key8},
	{ebiten.KeyS, Key2},
	{ebiten.KeyA, Key4},
	{ebiten.KeyD, Key6},
	{ebiten.KeyQ, Key7},
	{ebiten.KeyE, Key9},
	{ebiten.KeySpace, Key7},
	{ebiten.KeyShiftLeft, Key9},
	{ebiten.KeyF, Key5},
	{ebiten.KeyR, Key0},
}

func (h *hostHAL) pollInput() {
	for _, b := range hostKeys {
		if inpututil.IsKeyJustPressed(b.key) {
			h.kbd.emit(b.code, true)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			h.kbd.emit(b.code, false)
		}
	}

	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if down && !h.mouseDown {
		h.lastX, h.lastY = x, y
	}
	h.touch.move(down, x-h.lastX, y-h.lastY)
	h.lastX, h.lastY = x, y
	h.mouseDown = down
}

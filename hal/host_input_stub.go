//go:build !tinygo && !cgo

package hal

// No keyboard or pointer support without the window backend.
func (h *hostHAL) pollInput() {}

//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTouchpadReportResetsVelocity(t *testing.T) {
	tp := &hostTouchpad{}
	tp.move(true, 3, 4)
	tp.move(true, 1, -1)
	r := tp.Report()
	if !r.Contact || r.XVel != 4 || r.YVel != -3 {
		t.Fatalf("Report() = %+v, want contact x=4 y=-3", r)
	}
	if r := tp.Report(); r.XVel != 0 || r.YVel != 0 {
		t.Fatalf("second Report() = %+v, want zero velocity", r)
	}
	tp.move(false, 9, 9)
	if r := tp.Report(); r.Contact || r.XVel != 0 {
		t.Fatalf("Report() without contact = %+v", r)
	}
}

func TestRGB565ToRGBA(t *testing.T) {
	src := []byte{0x00, 0xF8, 0xE0, 0x07}
	dst := make([]byte, 8)
	rgb565ToRGBA(dst, src)
	want := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if !bytes.Equal(dst, want) {
		t.Fatalf("rgb565ToRGBA() = %v, want %v", dst, want)
	}
}

func TestFramebufferPresentSnapshots(t *testing.T) {
	fb := newHostFramebuffer(2, 1)
	fb.ClearRGB(255, 0, 0)
	if err := fb.Present(); err != nil {
		t.Fatalf("Present() err = %v", err)
	}
	fb.ClearRGB(0, 0, 255)

	got := make([]byte, 4)
	fb.snapshotRGB565(got)
	if got[1] != 0xF8 {
		t.Fatalf("snapshot = %x, want the presented red frame", got)
	}
}

func TestHostTimeStepN(t *testing.T) {
	ht := newHostTime()
	ht.stepN(3)
	for want := uint64(1); want <= 3; want++ {
		if got := <-ht.Ticks(); got != want {
			t.Fatalf("tick = %d, want %d", got, want)
		}
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var log bytes.Buffer
	steps := 0
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		if fb := h.Display().Framebuffer(); fb.Width() != HostWidth || fb.Height() != HostHeight {
			t.Errorf("framebuffer = %dx%d", fb.Width(), fb.Height())
		}
		h.Logger().WriteLineString("boot")
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 3, Log: &log})
	if err != nil {
		t.Fatalf("RunHeadless() err = %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
	if !strings.Contains(log.String(), "boot") {
		t.Fatalf("log = %q", log.String())
	}
}

func TestRunHeadlessReturnsStepError(t *testing.T) {
	stop := errors.New("stop")
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return stop }
	}, HeadlessConfig{Hz: 1000, Log: &bytes.Buffer{}})
	if !errors.Is(err, stop) {
		t.Fatalf("RunHeadless() err = %v, want stop", err)
	}
}

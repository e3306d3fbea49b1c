package voxel

import (
	"sync/atomic"
	"testing"
	"time"

	"sparkcraft/hal"
	"sparkcraft/sparkos/kernel"
	"sparkcraft/sparkos/perf"
	"sparkcraft/sparkos/proto"
	"sparkcraft/sparkos/quarkgl"
	vox "sparkcraft/sparkos/voxel"
	"sparkcraft/sparkos/voxel/terrain"
)

type memFramebuffer struct {
	w, h     int
	buf      []byte
	presents atomic.Int64
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFramebuffer) Width() int              { return f.w }
func (f *memFramebuffer) Height() int             { return f.h }
func (f *memFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte          { return f.buf }
func (f *memFramebuffer) ClearRGB(r, g, b uint8)  {}

func (f *memFramebuffer) Present() error {
	f.presents.Add(1)
	return nil
}

func (f *memFramebuffer) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type memDisplay struct{ fb hal.Framebuffer }

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type memTouchpad struct{ next hal.TouchReport }

func (p *memTouchpad) Report() hal.TouchReport {
	r := p.next
	p.next = hal.TouchReport{}
	return r
}

type memKeyboard struct{ ch chan hal.KeyEvent }

func (k memKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type memInput struct {
	kbd   memKeyboard
	touch *memTouchpad
}

func (in memInput) Keyboard() hal.Keyboard { return in.kbd }
func (in memInput) Touchpad() hal.Touchpad { return in.touch }

func newTestWorld(t *testing.T, dim, sx int, gen vox.Generator) *vox.World {
	t.Helper()
	w, err := vox.NewWorld(dim, sx, 1, 1, gen)
	if err != nil {
		t.Fatalf("NewWorld() err = %v", err)
	}
	return w
}

// newActiveTask returns an activated task drawing into a w x h framebuffer,
// with its camera in front of the -Z face of the first chunk.
func newActiveTask(t *testing.T, world *vox.World, opts Options, w, h int) (*Task, *memFramebuffer) {
	t.Helper()
	fb := newMemFramebuffer(w, h)
	in := memInput{kbd: memKeyboard{ch: make(chan hal.KeyEvent)}, touch: &memTouchpad{}}
	task := New(memDisplay{fb: fb}, in, kernel.Capability{}, kernel.Capability{}, world, opts)
	task.setActive(true)
	if !task.active {
		t.Fatal("setActive(true) left the task inactive")
	}
	half := world.Dim() * vox.BlockSize / 2
	task.player = player{pos: quarkgl.V3Int(half, half, -200)}
	return task, fb
}

func press(code hal.KeyCode) hal.KeyEvent   { return hal.KeyEvent{Code: code, Press: true} }
func release(code hal.KeyCode) hal.KeyEvent { return hal.KeyEvent{Code: code} }

func TestNewAppliesOptions(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task := New(memDisplay{}, nil, kernel.Capability{}, kernel.Capability{}, world, Options{GreedLimit: 2, Textures: true})
	if got := world.GreedLimit(); got != 2 {
		t.Fatalf("GreedLimit() = %d, want 2", got)
	}
	if !world.UsingTextures() {
		t.Fatal("UsingTextures() = false, want true")
	}
	if task.opts.Sheet == nil {
		t.Fatal("Options.Sheet was not defaulted")
	}
	if task.opts.StatsTicks != defaultStatsTicks {
		t.Fatalf("StatsTicks = %d, want %d", task.opts.StatsTicks, defaultStatsTicks)
	}
}

func TestHandleKeyToggles(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task, _ := newActiveTask(t, world, Options{}, 32, 24)

	task.handleKey(nil, press(hal.KeyF1))
	if !world.UsingTextures() {
		t.Fatal("F1 did not enable textures")
	}
	task.handleKey(nil, release(hal.KeyF1))
	if !world.UsingTextures() {
		t.Fatal("F1 release toggled textures")
	}

	var greeds []int
	for i := 0; i < 4; i++ {
		task.handleKey(nil, press(hal.KeyF2))
		greeds = append(greeds, world.GreedLimit())
	}
	if want := []int{1, 2, 3, 4}; !equalInts(greeds, want) {
		t.Fatalf("F2 greed cycle = %v, want %v", greeds, want)
	}

	task.handleKey(nil, press(hal.KeyF3))
	if !task.half {
		t.Fatal("F3 did not enable half resolution")
	}
	task.handleKey(nil, press(hal.KeyTab))
	if !task.fog {
		t.Fatal("Tab did not enable fog")
	}

	task.handleKey(nil, press(hal.KeyEscape))
	if task.active {
		t.Fatal("Esc left the task active")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHandleKeyTracksHeldKeys(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task, _ := newActiveTask(t, world, Options{}, 32, 24)

	task.handleKey(nil, press(hal.Key8))
	if !task.keys.held(hal.Key8) {
		t.Fatal("Key8 not held after press")
	}
	task.handleKey(nil, release(hal.Key8))
	if task.keys.held(hal.Key8) {
		t.Fatal("Key8 still held after release")
	}
}

func TestEditDigsAndPlaces(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Dirt))
	task, _ := newActiveTask(t, world, Options{}, 32, 24)
	task.player.pos = quarkgl.V3Int(vox.BlockSize+5, vox.BlockSize+5, vox.BlockSize+5)

	task.handleKey(nil, press(hal.Key5))
	if b, _ := world.Block(1, 1, 1); b.Solid() {
		t.Fatalf("Block(1,1,1) after dig = %v, want air", b.Type)
	}
	task.handleKey(nil, press(hal.Key0))
	if b, _ := world.Block(1, 1, 1); b.Type != vox.Stone {
		t.Fatalf("Block(1,1,1) after place = %v, want %v", b.Type, vox.Stone)
	}

	task.player.pos = quarkgl.V3Int(-10, 0, 0)
	task.handleKey(nil, press(hal.Key5))
	if b, _ := world.Block(0, 0, 0); b.Type != vox.Dirt {
		t.Fatalf("dig outside the world changed Block(0,0,0) to %v", b.Type)
	}
}

func TestFrameDrawsChunkAndPresents(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task, fb := newActiveTask(t, world, Options{}, 64, 48)

	task.frame()
	if task.lastIndices == 0 {
		t.Fatal("frame() drew no indices")
	}
	if task.lastChunks != 1 {
		t.Fatalf("lastChunks = %d, want 1", task.lastChunks)
	}
	if got := fb.pixel(32, 24); got == skyColor {
		t.Fatalf("center pixel = %#04x, want chunk color", got)
	}
	if got := fb.pixel(63, 47); got != skyColor {
		t.Fatalf("corner pixel = %#04x, want sky %#04x", got, skyColor)
	}
	if got := fb.presents.Load(); got != 1 {
		t.Fatalf("presents = %d, want 1", got)
	}
}

func TestFrameHalfResolutionUpscales(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task, fb := newActiveTask(t, world, Options{HalfRes: true}, 64, 48)

	task.frame()
	if w, h := task.r.Size(); w != 32 || h != 24 {
		t.Fatalf("renderer size = %dx%d, want 32x24", w, h)
	}
	// The overlay is drawn at full resolution in the top-left corner.
	for y := 0; y < 48; y += 2 {
		for x := 48; x < 64; x += 2 {
			c := fb.pixel(x, y)
			if fb.pixel(x+1, y) != c || fb.pixel(x, y+1) != c || fb.pixel(x+1, y+1) != c {
				t.Fatalf("2x2 block at (%d,%d) is not uniform", x, y)
			}
		}
	}
	if got := fb.pixel(32, 24); got == skyColor {
		t.Fatalf("center pixel = %#04x, want chunk color", got)
	}
}

func TestFogHidesDistantChunks(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task, fb := newActiveTask(t, world, Options{}, 128, 96)
	task.player.pos.Z = quarkgl.ScalarFromInt(-2 * fogDist)

	task.frame()
	if got := fb.pixel(64, 48); got == skyColor {
		t.Fatalf("center pixel without fog = %#04x, want chunk color", got)
	}

	task.fog = true
	task.frame()
	if got := fb.pixel(64, 48); got != skyColor {
		t.Fatalf("center pixel with fog = %#04x, want sky %#04x", got, skyColor)
	}
	w, _ := task.r.Size()
	depth := task.r.DepthBuffer()
	if got, want := depth[1*w+2], quarkgl.ScalarFromInt(fogDist-fogTile[1][2]*8); got != want {
		t.Fatalf("fog depth at (2,1) = %v, want %v", got.Float32(), want.Float32())
	}
}

func TestFrameBudgetSkipsChunks(t *testing.T) {
	world := newTestWorld(t, 4, 2, terrain.Solid(vox.Stone))

	task, _ := newActiveTask(t, world, Options{}, 32, 24)
	task.frame()
	if task.lastChunks != 2 {
		t.Fatalf("lastChunks without budget = %d, want 2", task.lastChunks)
	}

	var now uint64
	task, _ = newActiveTask(t, world, Options{FrameBudgetMs: 1}, 32, 24)
	task.clock = func() uint64 { now += 10; return now }
	task.budget = perf.NewStopwatch(task.clock)
	task.frame()
	if task.lastChunks != 0 {
		t.Fatalf("lastChunks over budget = %d, want 0", task.lastChunks)
	}
}

func TestFrameAppliesTouchLook(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task, _ := newActiveTask(t, world, Options{}, 32, 24)
	task.in.(memInput).touch.next = hal.TouchReport{Contact: true, XVel: 15, YVel: -5}

	task.frame()
	if got := task.player.yaw; got != quarkgl.ScalarFromInt(15) {
		t.Fatalf("yaw = %v, want 15", got.Float32())
	}
	if got := task.player.pitch; got != quarkgl.ScalarFromInt(5) {
		t.Fatalf("pitch = %v, want 5", got.Float32())
	}
}

func TestOverlayLines(t *testing.T) {
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task, _ := newActiveTask(t, world, Options{GreedLimit: 3}, 32, 24)
	task.frameTimes.Add(20)
	task.lastIndices = 96

	got := task.overlayLines()
	want := []string{"50 FPS", "20 mspt", "96 verts", "greed 3", "tex off", "half off"}
	if len(got) != len(want) {
		t.Fatalf("overlayLines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("overlayLines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

type probe struct {
	run func(ctx *kernel.Context)
}

func (p probe) Run(ctx *kernel.Context) { p.run(ctx) }

func TestRunRendersAndReportsExit(t *testing.T) {
	k := kernel.New()
	appEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ctrlEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	fb := newMemFramebuffer(32, 24)
	kbd := memKeyboard{ch: make(chan hal.KeyEvent, 1)}
	in := memInput{kbd: kbd, touch: &memTouchpad{}}
	world := newTestWorld(t, 4, 1, terrain.Solid(vox.Stone))
	task := New(memDisplay{fb: fb}, in, appEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), world, Options{})
	if _, err := k.AddTask(task); err != nil {
		t.Fatalf("AddTask() err = %v", err)
	}

	exit := make(chan kernel.Message, 1)
	_, err := k.AddTask(probe{run: func(ctx *kernel.Context) {
		ctx.SendToCap(appEP.Restrict(kernel.RightSend), uint16(proto.MsgAppControl), proto.AppControlPayload(true), ctrlEP.Restrict(kernel.RightSend))
		msg, _ := ctx.Recv(ctrlEP.Restrict(kernel.RightRecv))
		exit <- msg
		ctx.SendTo(appEP.Restrict(kernel.RightSend), uint16(proto.MsgAppShutdown), nil)
	}})
	if err != nil {
		t.Fatalf("AddTask() err = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	var tick uint64
	for fb.presents.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no frame presented")
		}
		tick += FrameIntervalTicks
		k.TickTo(tick)
		time.Sleep(time.Millisecond)
	}

	kbd.ch <- press(hal.KeyEscape)
	select {
	case msg := <-exit:
		if proto.Kind(msg.Kind) != proto.MsgAppControl {
			t.Fatalf("exit kind = %s, want %s", proto.Kind(msg.Kind), proto.MsgAppControl)
		}
		if active, ok := proto.DecodeAppControlPayload(msg.Payload()); !ok || active {
			t.Fatalf("exit payload active=%v ok=%v, want inactive", active, ok)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no exit notification")
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				tick++
				k.TickTo(tick)
				time.Sleep(time.Millisecond)
			}
		}
	}()
	defer close(done)
	waitTasks(t, k)
}

func waitTasks(t *testing.T, k *kernel.Kernel) {
	t.Helper()
	ok := make(chan struct{})
	go func() {
		k.Wait()
		close(ok)
	}()
	select {
	case <-ok:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not stop")
	}
}

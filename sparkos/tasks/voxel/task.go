// Package voxel is the voxel world app: it moves a camera through a chunk
// grid, renders it with quarkgl and draws a small debug overlay.
package voxel

import (
	"sparkcraft/hal"
	"sparkcraft/sparkos/assets"
	logclient "sparkcraft/sparkos/client/logger"
	"sparkcraft/sparkos/kernel"
	"sparkcraft/sparkos/perf"
	"sparkcraft/sparkos/proto"
	"sparkcraft/sparkos/quarkgl"
	vox "sparkcraft/sparkos/voxel"
)

// FrameIntervalTicks is the minimum number of ticks between two frames.
const FrameIntervalTicks = 33

const (
	frameAverageSize  = 8
	defaultStatsTicks = 5 * hal.TickHz
	exitRetryLimit    = 500
)

// Fog presets the depth buffer so that fragments further than fogDist fail
// the depth test, dithered with fogTile.
const fogDist = vox.BlockSize * 32

var fogTile = [4][4]int{
	{0, 4, 2, 4},
	{7, 3, 6, 3},
	{2, 4, 1, 4},
	{6, 3, 5, 3},
}

var skyColor = quarkgl.RGB565From888(102, 178, 255)

// Options configures the app. Zero values pick the defaults.
type Options struct {
	GreedLimit int
	Textures   bool
	HalfRes    bool
	Fog        bool

	// FrameBudgetMs skips the remaining chunks of a frame once rendering has
	// taken this long. 0 disables the budget.
	FrameBudgetMs uint64
	// StatsTicks is the interval between stats log lines. 0 uses 5 s.
	StatsTicks uint64

	// Sheet is the block spritesheet. nil uses assets.DefaultSpritesheet.
	Sheet *quarkgl.Texture
}

type Task struct {
	disp   hal.Display
	in     hal.Input
	ep     kernel.Capability
	logCap kernel.Capability

	world *vox.World
	opts  Options

	fb     hal.Framebuffer
	r      *quarkgl.Renderer
	full   *quarkgl.RGB565Target
	halfT  *quarkgl.RGB565Target
	player player
	keys   keyState

	active  bool
	ctrlCap kernel.Capability

	half bool
	fog  bool

	clock      func() uint64
	frameClock *perf.Stopwatch
	budget     *perf.Stopwatch
	frameTimes *perf.RunningAverage[float64]

	lastFrame   uint64
	lastStats   uint64
	frames      uint64
	lastIndices int
	lastChunks  int
}

// New returns the app task. It configures world from opts.
func New(disp hal.Display, in hal.Input, ep, logCap kernel.Capability, world *vox.World, opts Options) *Task {
	if opts.GreedLimit == 0 {
		opts.GreedLimit = vox.MaxGreedLimit
	}
	if opts.StatsTicks == 0 {
		opts.StatsTicks = defaultStatsTicks
	}
	if opts.Sheet == nil {
		opts.Sheet = assets.DefaultSpritesheet()
	}

	world.SetSpritesheet(opts.Sheet)
	world.SetGreedLimit(opts.GreedLimit)
	if opts.Textures {
		world.EnableTextures()
	} else {
		world.DisableTextures()
	}

	return &Task{
		disp:       disp,
		in:         in,
		ep:         ep,
		logCap:     logCap,
		world:      world,
		opts:       opts,
		half:       opts.HalfRes,
		fog:        opts.Fog,
		player:     newPlayer(world.Dim()),
		frameTimes: perf.NewRunningAverage[float64](frameAverageSize),
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if t.disp == nil {
		return
	}
	t.clock = ctx.NowTick

	var keyCh <-chan hal.KeyEvent
	if t.in != nil {
		if kbd := t.in.Keyboard(); kbd != nil {
			keyCh = kbd.Events()
		}
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			default:
			}

			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			switch proto.Kind(msg.Kind) {
			case proto.MsgAppShutdown:
				t.setActive(false)
				return

			case proto.MsgAppControl:
				if msg.Cap.Valid() {
					t.ctrlCap = msg.Cap
				}
				active, ok := proto.DecodeAppControlPayload(msg.Payload())
				if !ok {
					continue
				}
				t.setActive(active)
			}

		case ev := <-keyCh:
			if !t.active {
				continue
			}
			t.handleKey(ctx, ev)

		case seq := <-tickCh:
			if !t.active {
				continue
			}
			if seq-t.lastFrame < FrameIntervalTicks {
				continue
			}
			t.frame()
			if seq-t.lastStats >= t.opts.StatsTicks {
				t.lastStats = seq
				t.logStats(ctx)
			}
		}
	}
}

func (t *Task) setActive(active bool) {
	if active == t.active {
		return
	}
	t.active = active
	if !t.active {
		t.keys = keyState{}
		return
	}
	t.initScene()
}

func (t *Task) initScene() {
	t.fb = t.disp.Framebuffer()
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		t.active = false
		return
	}
	w, h := t.fb.Width(), t.fb.Height()
	if w < 2 || h < 2 {
		t.active = false
		return
	}

	t.full = &quarkgl.RGB565Target{Buf: t.fb.Buffer(), Stride: t.fb.StrideBytes(), W: w, H: h}
	t.halfT = &quarkgl.RGB565Target{Buf: t.fb.Buffer(), Stride: t.fb.StrideBytes(), W: w / 2, H: h / 2}
	if t.r == nil {
		t.r = quarkgl.NewRenderer(w, h)
	}
	if t.clock == nil {
		t.clock = func() uint64 { return 0 }
	}
	t.frameClock = perf.NewStopwatch(t.clock)
	t.budget = perf.NewStopwatch(t.clock)
	t.frameTimes.Reset()
	t.frames = 0
	t.lastFrame = t.clock()
	t.lastStats = t.lastFrame
}

func (t *Task) requestExit(ctx *kernel.Context) {
	t.setActive(false)
	if ctx == nil || !t.ctrlCap.Valid() {
		return
	}
	if res := ctx.SendToCapRetry(t.ctrlCap, uint16(proto.MsgAppControl), proto.AppControlPayload(false), kernel.Capability{}, exitRetryLimit); res != kernel.SendOK {
		logclient.Logf(ctx, t.logCap, "voxel: exit notify failed: %s", res)
	}
}

func (t *Task) handleKey(ctx *kernel.Context, ev hal.KeyEvent) {
	t.keys.set(ev.Code, ev.Press)
	if !ev.Press {
		return
	}

	switch ev.Code {
	case hal.KeyEscape:
		t.requestExit(ctx)

	case hal.KeyF1:
		if t.world.UsingTextures() {
			t.world.DisableTextures()
		} else {
			t.world.EnableTextures()
		}
	case hal.KeyF2:
		t.world.SetGreedLimit(t.world.GreedLimit()%vox.MaxGreedLimit + 1)
	case hal.KeyF3:
		t.half = !t.half
	case hal.KeyTab:
		t.fog = !t.fog

	case hal.Key5:
		t.edit(ctx, vox.Air)
	case hal.Key0:
		t.edit(ctx, vox.Stone)
	}
}

// edit replaces the block at the camera cell.
func (t *Task) edit(ctx *kernel.Context, bt vox.BlockType) {
	c := t.player.cell()
	if !t.world.SetBlock(c.X, c.Y, c.Z, bt) {
		return
	}
	if ctx != nil {
		logclient.Logf(ctx, t.logCap, "voxel: set block x=%d y=%d z=%d type=%d", c.X, c.Y, c.Z, bt)
	}
}

// frame advances the player by the time since the previous frame and draws.
func (t *Task) frame() {
	if t.r == nil || t.fb == nil {
		return
	}
	now := t.clock()
	dt := t.frameClock.Lap()
	t.lastFrame = now
	if t.frames > 0 {
		t.frameTimes.Add(float64(dt))
	}
	t.frames++

	if t.in != nil {
		if tp := t.in.Touchpad(); tp != nil {
			t.player.look(tp.Report())
		}
	}
	t.player.move(dt, &t.keys)

	t.render()
}

func (t *Task) overBudget() bool {
	return t.opts.FrameBudgetMs > 0 && t.budget.Elapsed() > t.opts.FrameBudgetMs
}

func (t *Task) render() {
	target := t.full
	if t.half {
		target = t.halfT
	}
	t.budget.Reset()
	t.r.Begin(target, skyColor)
	if t.fog {
		t.applyFog()
	}

	t.lastIndices, t.lastChunks = t.world.Render(t.r, t.player.view(), t.player.pos, t.overBudget)

	if t.half {
		quarkgl.UpscaleInto(t.full, t.halfT, t.halfT.W, t.halfT.H)
	}
	t.drawOverlay()
	_ = t.fb.Present()
}

func (t *Task) applyFog() {
	depth := t.r.DepthBuffer()
	w, _ := t.r.Size()
	if w <= 0 {
		return
	}
	for i := range depth {
		x, y := i%w, i/w
		depth[i] = quarkgl.ScalarFromInt(fogDist - fogTile[y%4][x%4]*8)
	}
}

func (t *Task) logStats(ctx *kernel.Context) {
	st := t.r.Stats()
	logclient.Logf(ctx, t.logCap, "voxel: fps=%d mspt=%d verts=%d chunks=%d/%d quads=%d culled=%d clipped=%d",
		t.fps(), int(t.frameTimes.Value()), t.lastIndices, t.lastChunks, len(t.world.Chunks()), t.world.QuadCount(), st.Culled, st.Clipped)
}

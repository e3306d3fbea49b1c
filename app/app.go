package app

import (
	"errors"
	"fmt"

	"sparkcraft/hal"
	"sparkcraft/sparkos/kernel"
	"sparkcraft/sparkos/services/logger"
	"sparkcraft/sparkos/tasks/bootmsg"
	voxelapp "sparkcraft/sparkos/tasks/voxel"
	"sparkcraft/sparkos/voxel"
)

// ErrQuit is returned by the step function once the user has left the app.
var ErrQuit = errors.New("app: quit")

type system struct {
	k    *kernel.Kernel
	boot *bootmsg.Task
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the OS and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

// NewWithConfig starts the OS and returns the host step function. The step
// reports setup errors, and ErrQuit after the app has exited.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(err.Error())
		}
		return func() error { return err }
	}
	return s.step
}

func RunWithConfig(h hal.HAL, cfg Config) {
	s, err := newSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(err.Error())
		}
		select {}
	}
	<-s.boot.Done()
	if l := h.Logger(); l != nil {
		l.WriteLineString("app: halted")
	}
	select {}
}

func (s *system) step() error {
	select {
	case <-s.boot.Done():
		return ErrQuit
	default:
		return nil
	}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	bootDiagStart(h)
	installPanicHandler(h)

	bootStep(h, "config")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sheet, err := loadSheet(cfg.Sheet)
	if err != nil {
		return nil, err
	}

	bootStep(h, "world")
	world, err := voxel.NewWorld(cfg.Dim, cfg.Chunks, cfg.ChunksY, cfg.Chunks, cfg.generator())
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	bootStep(h, "kernel")
	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	bootEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	appEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	craft := voxelapp.New(h.Display(), h.Input(), appEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), world, voxelapp.Options{
		GreedLimit:    cfg.GreedLimit,
		Textures:      cfg.Textures,
		HalfRes:       cfg.HalfRes,
		Fog:           cfg.Fog,
		FrameBudgetMs: cfg.FrameBudgetMs,
		StatsTicks:    uint64(cfg.StatsSeconds) * hal.TickHz,
		Sheet:         sheet,
	})
	boot := bootmsg.New(bootEP, logEP.Restrict(kernel.RightSend), appEP.Restrict(kernel.RightSend), cfg.summary())

	bootStep(h, "tasks")
	for _, t := range []kernel.Task{
		logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)),
		craft,
		boot,
	} {
		if _, err := k.AddTask(t); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k, boot: boot}, nil
}

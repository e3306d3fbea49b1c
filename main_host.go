//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sparkcraft/app"
	"sparkcraft/hal"
)

func main() {
	var run hal.HeadlessConfig
	def := app.DefaultConfig()
	var (
		configPath = flag.String("config", app.DefaultConfigPath(), "YAML config file (default $"+app.ConfigEnv+").")
		seed       = flag.Int64("seed", def.Seed, "Terrain seed.")
		terrain    = flag.String("terrain", def.Terrain, "Terrain generator: perlin|flat|hills|solid.")
		dim        = flag.Int("dim", def.Dim, "Chunk edge in blocks.")
		chunks     = flag.Int("chunks", def.Chunks, "Chunks along X and Z.")
		greed      = flag.Int("greed", def.GreedLimit, "Greedy merge limit (1-4).")
		noTex      = flag.Bool("notex", !def.Textures, "Start with textures disabled.")
		half       = flag.Bool("half", def.HalfRes, "Render at half resolution.")
		fog        = flag.Bool("fog", def.Fog, "Enable dithered distance fog.")
		budget     = flag.Uint64("budget", def.FrameBudgetMs, "Frame budget in ms; later chunks are skipped (0 = off).")
		sheet      = flag.String("sheet", def.Sheet, "PNG block strip to build the spritesheet from.")
	)
	flag.BoolVar(&run.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&run.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&run.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = app.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "terrain":
			cfg.Terrain = *terrain
		case "dim":
			cfg.Dim = *dim
		case "chunks":
			cfg.Chunks = *chunks
		case "greed":
			cfg.GreedLimit = *greed
		case "notex":
			cfg.Textures = !*noTex
		case "half":
			cfg.HalfRes = *half
		case "fog":
			cfg.Fog = *fog
		case "budget":
			cfg.FrameBudgetMs = *budget
		case "sheet":
			cfg.Sheet = *sheet
		}
	})

	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, cfg) }

	var err error
	if run.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, run)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(newApp)
	}
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

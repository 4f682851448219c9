package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swirl/config"
	"github.com/pthm-cable/swirl/game"
	"github.com/pthm-cable/swirl/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics under scripted input")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *maxTicks))
	}
	os.Exit(runWindowed(cfg, opts, *maxTicks))
}

// runHeadless steps the simulation at a fixed dt with autopilot input.
func runHeadless(cfg *config.Config, opts sim.Options, maxTicks int) int {
	s, err := sim.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		return 1
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	// Separate stream so cursor placement does not perturb particle sampling
	ap := sim.NewAutopilot(cfg, rand.New(rand.NewSource(opts.Seed+1)))

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"dt", cfg.Headless.DT,
		"max_ticks", maxTicks,
		"max_particles", cfg.Headless.MaxParticles,
		"workers", cfg.Force.Workers,
	)

	for {
		s.StepHeadless(ap)

		if maxTicks > 0 && int(s.Tick()) >= maxTicks {
			slog.Info("max ticks reached",
				"tick", s.Tick(),
				"particles", s.Store.Len(),
				"perf", s.Perf.Stats(),
			)
			return 0
		}
	}
}

// runWindowed opens the raylib window and runs until it is closed.
func runWindowed(cfg *config.Config, opts sim.Options, maxTicks int) int {
	if cfg.Screen.VSync {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Swirl")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer func() {
		if err := g.Unload(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	slog.Info("starting simulation", "seed", opts.Seed)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return 0
}

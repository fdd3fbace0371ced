package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/game"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "path to a JSON config file (defaults are used when empty)")
	seed := flag.Uint64("seed", 0, "override the configured random seed when non-zero")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		loaded, err := simulation.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("💥 error loading config %q: %v", *configFile, err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	ctx := context.Background()
	logger := cfg.NewLogger(os.Stdout)

	sim, err := simulation.Start(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("💥 error starting simulation: %v", err)
	}
	defer func() {
		if err := sim.Stop(ctx); err != nil {
			logger.Errorf("error stopping simulation: %v", err)
		}
	}()
	logger.Infof("Flock %s running %d agents (seed %d)", sim.RunID(), cfg.NumAgents, cfg.Seed)

	ebiten.SetWindowSize(int(2*cfg.ViewHalfWidth), int(2*cfg.ViewHalfHeight))
	ebiten.SetWindowTitle("Boids: inverse-distance flocking")
	ebiten.SetTPS(cfg.TicksPerSecond)

	if err := ebiten.RunGame(game.New(ctx, cfg, sim, logger)); err != nil {
		logger.Errorf("game stopped: %v", err)
	}
}

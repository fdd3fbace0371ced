package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// NewFlock creates cfg.NumAgents agents scattered over the visible area, each heading
// in a random direction at cfg.Speed. Equal seeds give equal flocks.
func NewFlock(cfg *Config) []*flock.Agent {
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	agents := make([]*flock.Agent, cfg.NumAgents)

	for i := range agents {
		pos := geometry.Vector2D{
			X: between(r, -cfg.ViewHalfWidth, cfg.ViewHalfWidth),
			Y: between(r, -cfg.ViewHalfHeight, cfg.ViewHalfHeight),
		}
		vel := geometry.NewVectorPolar(cfg.Speed, r.Float64()*2*math.Pi)
		agents[i] = flock.NewAgent(
			pos,
			vel,
			between(r, cfg.MinInfluenceRadius, cfg.MaxInfluenceRadius),
			between(r, cfg.MinSize, cfg.MaxSize),
		)
	}
	return agents
}

func between(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

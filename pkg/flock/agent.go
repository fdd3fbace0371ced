// Package flock holds the flocking update core: per-agent neighbor discovery and the
// tick that blends neighbor velocities into a new heading before moving every agent.
package flock

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// NeighborInfo is a copy of a neighbor's kinematic state taken at discovery time.
type NeighborInfo struct {
	Position geometry.Vector2D
	Velocity geometry.Vector2D
}

// Agent is a single boid. Position is only changed by integration, Velocity only by
// blending, Facing is the normalized heading cached for rendering.
type Agent struct {
	Position        geometry.Vector2D
	Velocity        geometry.Vector2D
	Facing          geometry.Vector2D
	InfluenceRadius float64
	Size            float64

	// rebuilt from scratch on every tick
	neighbors []NeighborInfo
}

// NewAgent creates an agent facing along its initial velocity.
func NewAgent(pos, vel geometry.Vector2D, influenceRadius, size float64) *Agent {
	return &Agent{
		Position:        pos,
		Velocity:        vel,
		Facing:          vel.Normalize(),
		InfluenceRadius: influenceRadius,
		Size:            size,
	}
}

// DiscoverNeighbors replaces the agent's neighbor list with a snapshot of every other
// agent of all lying strictly inside its influence radius.
// Self is skipped by identity, so a distinct agent at the same position still counts.
func (a *Agent) DiscoverNeighbors(all []*Agent) {
	a.neighbors = a.neighbors[:0]
	if a.InfluenceRadius <= 0 {
		return
	}
	for _, other := range all {
		if other == a || other == nil {
			continue
		}
		// same distance measure as the blend phase, so both agree on the boundary
		if a.Position.DistanceTo(other.Position) < a.InfluenceRadius {
			a.neighbors = append(a.neighbors, NeighborInfo{
				Position: other.Position,
				Velocity: other.Velocity,
			})
		}
	}
}

// Neighbors returns the neighbors found by the last DiscoverNeighbors call.
// The slice is owned by the agent and is overwritten on the next discovery.
func (a *Agent) Neighbors() []NeighborInfo {
	return a.neighbors
}

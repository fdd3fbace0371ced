package simulation

import (
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// AgentState is what the renderer needs to draw one agent.
type AgentState struct {
	Position        geometry.Vector2D
	Facing          geometry.Vector2D
	Size            float64
	InfluenceRadius float64
}

// Snapshot is a copy of the flock after a tick, safe to hand to another goroutine.
type Snapshot struct {
	RunID    string
	Tick     uint64 // ticks applied so far
	Frame    uint64 // frame number carried by the last tick request
	Paused   bool
	Speed    float64
	Stats    flock.TickStats
	Duration time.Duration // time spent in the last tick
	Agents   []AgentState
}

func takeSnapshot(agents []*flock.Agent) []AgentState {
	states := make([]AgentState, 0, len(agents))
	for _, a := range agents {
		if a == nil {
			continue
		}
		states = append(states, AgentState{
			Position:        a.Position,
			Facing:          a.Facing,
			Size:            a.Size,
			InfluenceRadius: a.InfluenceRadius,
		})
	}
	return states
}

// Latest drains ch and returns the newest snapshot in it, or current when ch is empty.
// It never blocks.
func Latest(ch <-chan *Snapshot, current *Snapshot) *Snapshot {
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				return current
			}
			current = snap
		default:
			return current
		}
	}
}

package simulation

import (
	"context"
	"fmt"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
)

const snapshotBuffer = 10

// Simulation runs a FlockActor inside its own actor system and exposes the
// snapshots it publishes.
type Simulation struct {
	system    actor.ActorSystem
	pid       *actor.PID
	runID     string
	snapshots chan *Snapshot
}

// Start spawns a flock built from cfg. logger may be nil.
func Start(ctx context.Context, cfg *Config, logger log.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.DiscardLogger
	}

	system, err := actor.NewActorSystem("flock-simulation", actor.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	snapshots := make(chan *Snapshot, snapshotBuffer)
	flockActor := NewFlockActor(
		NewFlock(cfg),
		flock.NewUpdater(cfg.UpdaterOptions(logger)...),
		snapshots,
	)
	pid, err := system.Spawn(ctx, "flock", flockActor)
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	return &Simulation{
		system:    system,
		pid:       pid,
		runID:     flockActor.RunID(),
		snapshots: snapshots,
	}, nil
}

// RunID identifies the running flock.
func (s *Simulation) RunID() string {
	return s.runID
}

// Snapshots delivers the state after each tick. Frames are dropped when nobody reads.
func (s *Simulation) Snapshots() <-chan *Snapshot {
	return s.snapshots
}

// Tick requests one simulation step for the given frame.
func (s *Simulation) Tick(ctx context.Context, frame uint64) error {
	return actor.Tell(ctx, s.pid, NewTick(frame))
}

// SetSpeed changes the flock speed. Invalid values are logged and ignored by the flock.
func (s *Simulation) SetSpeed(ctx context.Context, speed float64) error {
	return actor.Tell(ctx, s.pid, NewSpeedUpdate(speed))
}

// SetPaused freezes or resumes the flock.
func (s *Simulation) SetPaused(ctx context.Context, paused bool) error {
	return actor.Tell(ctx, s.pid, NewPause(paused))
}

// Stop shuts the actor system down.
func (s *Simulation) Stop(ctx context.Context) error {
	return s.system.Stop(ctx)
}

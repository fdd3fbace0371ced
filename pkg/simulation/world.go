package simulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
)

// FlockActor owns the agents and the updater. The mailbox serialises ticks and
// setting changes, so nothing touches the agents while a tick runs.
type FlockActor struct {
	runID      string
	agents     []*flock.Agent
	updater    *flock.Updater
	snapshotCh chan<- *Snapshot

	tick      uint64
	frame     uint64
	paused    bool
	lastStats flock.TickStats
	lastDur   time.Duration

	// --- Benchmark Stats ---
	tickCount   int
	tickTime    time.Duration
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor creates the flock logic unit. Snapshots are pushed on snapshotCh
// without blocking; a nil channel disables them.
func NewFlockActor(agents []*flock.Agent, updater *flock.Updater, snapshotCh chan<- *Snapshot) *FlockActor {
	return &FlockActor{
		runID:       uuid.NewString(),
		agents:      agents,
		updater:     updater,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

// RunID identifies this run in logs and snapshots.
func (w *FlockActor) RunID() string {
	return w.runID
}

func (w *FlockActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock %s starting with %d agents at speed %.2f",
		w.runID, len(w.agents), w.updater.Speed())
	return nil
}

func (w *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("Flock %s started", w.runID)
		w.pushSnapshot()

	case *wrapperspb.UInt64Value:
		w.frame = msg.GetValue()
		if !w.paused {
			w.step()
			w.logBenchmarks(ctx.Logger())
		}
		w.pushSnapshot()

	case *wrapperspb.DoubleValue:
		if err := w.updater.SetSpeed(msg.GetValue()); err != nil {
			ctx.Logger().Warnf("Flock %s ignoring speed %v: %v", w.runID, msg.GetValue(), err)
			return
		}
		ctx.Logger().Debugf("Flock %s speed set to %.2f", w.runID, msg.GetValue())

	case *wrapperspb.BoolValue:
		if w.paused != msg.GetValue() {
			w.paused = msg.GetValue()
			ctx.Logger().Infof("Flock %s paused=%t at tick %d", w.runID, w.paused, w.tick)
		}

	default:
		ctx.Unhandled()
	}
}

func (w *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock %s stopped after %d ticks", w.runID, w.tick)
	return nil
}

// step runs one tick of the flock.
func (w *FlockActor) step() {
	start := time.Now()
	w.lastStats = w.updater.Tick(w.agents)
	w.lastDur = time.Since(start)
	w.tick++

	w.tickCount++
	w.tickTime += w.lastDur
}

func (w *FlockActor) logBenchmarks(logger log.Logger) {
	if time.Since(w.lastLogTime) < time.Second || w.tickCount == 0 {
		return
	}
	logger.Infof("📊 TICK RATE: %d/sec | avg tick: %s | agents: %d | neighbors: %d | fallbacks: %d",
		w.tickCount, w.tickTime/time.Duration(w.tickCount), w.lastStats.Agents,
		w.lastStats.Neighbors, w.lastStats.Fallbacks)
	w.tickCount = 0
	w.tickTime = 0
	w.lastLogTime = time.Now()
}

func (w *FlockActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.buildSnapshot():
	default:
		// renderer busy, skip frame
	}
}

func (w *FlockActor) buildSnapshot() *Snapshot {
	return &Snapshot{
		RunID:    w.runID,
		Tick:     w.tick,
		Frame:    w.frame,
		Paused:   w.paused,
		Speed:    w.updater.Speed(),
		Stats:    w.lastStats,
		Duration: w.lastDur,
		Agents:   takeSnapshot(w.agents),
	}
}

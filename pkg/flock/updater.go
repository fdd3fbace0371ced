package flock

import (
	"errors"
	"math"

	"github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// DefaultSpeed is the magnitude every blended velocity is scaled to.
const DefaultSpeed = 1.0

// ErrInvalidSpeed is returned when a speed is not a positive finite number.
var ErrInvalidSpeed = errors.New("speed must be a positive finite number")

// Option configures an Updater.
type Option func(*Updater)

// WithSpeed sets the post-blend speed. Invalid values are ignored.
func WithSpeed(speed float64) Option {
	return func(u *Updater) {
		_ = u.SetSpeed(speed)
	}
}

// WithDefaultHeading sets the heading used by an agent that has no usable neighbor,
// no velocity and has never had a facing direction.
// A zero heading leaves such agents at rest.
func WithDefaultHeading(h geometry.Vector2D) Option {
	return func(u *Updater) {
		u.defaultHeading = h
	}
}

// WithWorkers spreads each phase of a tick over n goroutines.
// n <= 1 keeps the tick on the calling goroutine.
func WithWorkers(n int) Option {
	return func(u *Updater) {
		u.workers = n
	}
}

// WithLogger sets the logger used to report degenerate headings.
func WithLogger(logger log.Logger) Option {
	return func(u *Updater) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// WithContributors replaces the velocity contributors run after blending.
func WithContributors(c ...Contributor) Option {
	return func(u *Updater) {
		u.contributors = c
	}
}

// TickStats summarises one tick.
type TickStats struct {
	Agents    int // agents updated
	Neighbors int // neighbor records gathered over all agents
	Fallbacks int // agents that kept their own heading
	AtRest    int // agents left without any heading
	Rejected  int // non-finite contributions discarded
}

type blendResult int

const (
	blended blendResult = iota
	keptHeading
	atRest
)

// Updater advances a flock by one tick at a time.
// It keeps per-tick buffers, so a single Updater must not run two ticks concurrently.
type Updater struct {
	speed          float64
	defaultHeading geometry.Vector2D
	workers        int
	logger         log.Logger
	contributors   []Contributor

	next     []geometry.Vector2D
	results  []blendResult
	rejected []int
}

// NewUpdater creates an Updater running at DefaultSpeed with a no-op threat response.
func NewUpdater(opts ...Option) *Updater {
	u := &Updater{
		speed:          DefaultSpeed,
		defaultHeading: geometry.Vector2D{X: 1, Y: 0},
		workers:        1,
		logger:         log.DiscardLogger,
		contributors:   []Contributor{ThreatResponse{}},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Speed returns the current post-blend speed.
func (u *Updater) Speed() float64 {
	return u.speed
}

// SetSpeed changes the post-blend speed used from the next tick on.
func (u *Updater) SetSpeed(speed float64) error {
	if err := ValidateSpeed(speed); err != nil {
		return err
	}
	u.speed = speed
	return nil
}

// ValidateSpeed reports ErrInvalidSpeed unless speed is a positive finite number.
func ValidateSpeed(speed float64) error {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return ErrInvalidSpeed
	}
	return nil
}

// Tick advances every agent by one step.
//
// Phase 1 discovers neighbors for all agents from the pre-tick state.
// Phase 2 computes every new velocity from those snapshots.
// Phase 3 assigns velocities, refreshes facings and moves positions.
// Each phase completes for all agents before the next one starts.
func (u *Updater) Tick(all []*Agent) TickStats {
	n := len(all)
	u.grow(n)

	u.forEach(n, func(i int) {
		if a := all[i]; a != nil {
			a.DiscoverNeighbors(all)
		}
	})

	u.forEach(n, func(i int) {
		if a := all[i]; a != nil {
			u.next[i], u.results[i], u.rejected[i] = u.blend(a)
		}
	})

	u.forEach(n, func(i int) {
		if a := all[i]; a != nil {
			a.integrate(u.next[i])
		}
	})

	stats := TickStats{}
	for i, a := range all {
		if a == nil {
			continue
		}
		stats.Agents++
		stats.Neighbors += len(a.neighbors)
		stats.Rejected += u.rejected[i]
		switch u.results[i] {
		case keptHeading:
			stats.Fallbacks++
		case atRest:
			stats.AtRest++
		}
	}
	if stats.AtRest > 0 {
		u.logger.Debugf("%d agents have no heading and stay at rest", stats.AtRest)
	}
	if stats.Rejected > 0 {
		u.logger.Warnf("%d non-finite contributor velocities discarded", stats.Rejected)
	}
	return stats
}

// blend computes the agent's next velocity from its neighbor snapshots.
// A contributor returning a non-finite velocity is discarded and counted.
func (u *Updater) blend(a *Agent) (geometry.Vector2D, blendResult, int) {
	accumulated := geometry.Zero
	totalWeight := 0.0

	for _, n := range a.neighbors {
		distance := n.Position.DistanceTo(a.Position)
		if distance == 0 {
			continue
		}
		weight := 1 / distance
		accumulated = accumulated.Add(n.Velocity.Mul(weight))
		totalWeight += weight
	}

	var (
		next   geometry.Vector2D
		result = blended
		ok     bool
	)
	if totalWeight > 0 {
		next, ok = accumulated.Mul(1 / totalWeight).WithLen(u.speed)
	}
	if !ok {
		// neighbor velocities cancelled out or no usable neighbor
		next, result = u.ownHeading(a)
	}

	rejected := 0
	for _, c := range u.contributors {
		v := c.Contribute(a, next)
		if !v.IsFinite() {
			rejected++
			continue
		}
		next = v
	}
	return next, result, rejected
}

// ownHeading keeps the agent going its own way at the configured speed.
func (u *Updater) ownHeading(a *Agent) (geometry.Vector2D, blendResult) {
	for _, heading := range []geometry.Vector2D{a.Velocity, a.Facing, u.defaultHeading} {
		if v, ok := heading.WithLen(u.speed); ok {
			return v, keptHeading
		}
	}
	return geometry.Zero, atRest
}

// integrate applies the velocity computed in the blend phase.
func (a *Agent) integrate(velocity geometry.Vector2D) {
	a.Velocity = velocity
	if !velocity.IsZero() {
		a.Facing = velocity.Normalize()
	}
	a.Position = a.Position.Add(velocity)
}

func (u *Updater) grow(n int) {
	if cap(u.next) < n {
		u.next = make([]geometry.Vector2D, n)
		u.results = make([]blendResult, n)
		u.rejected = make([]int, n)
	}
	u.next = u.next[:n]
	u.results = u.results[:n]
	u.rejected = u.rejected[:n]
}

// forEach runs fn for every index in [0, n) and returns once all calls are done.
func (u *Updater) forEach(n int, fn func(i int)) {
	if u.workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + u.workers - 1) / u.workers
	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}

package flock

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

const tolerance = 1e-9

func assertVec(t *testing.T, want, got geometry.Vector2D, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tolerance, msgAndArgs...)
}

func randomFlock(seed uint64, n int) []*Agent {
	r := rand.New(rand.NewPCG(seed, seed+1))
	agents := make([]*Agent, n)
	for i := range agents {
		pos := vec(r.Float64()*200, r.Float64()*200)
		vel := vec(r.Float64()*2-1, r.Float64()*2-1)
		agents[i] = NewAgent(pos, vel, 10+r.Float64()*30, 8)
	}
	return agents
}

func cloneFlock(src []*Agent) []*Agent {
	dst := make([]*Agent, len(src))
	for i, a := range src {
		dst[i] = NewAgent(a.Position, a.Velocity, a.InfluenceRadius, a.Size)
	}
	return dst
}

func TestUpdater_Tick_Integration(t *testing.T) {
	a := NewAgent(vec(0, 0), vec(1, 0), 5, 1)
	u := NewUpdater(WithSpeed(1.0))

	stats := u.Tick([]*Agent{a})

	assertVec(t, vec(1, 0), a.Position)
	assertVec(t, vec(1, 0), a.Facing)
	assertVec(t, vec(1, 0), a.Velocity)
	assert.Equal(t, TickStats{Agents: 1, Fallbacks: 1}, stats)
}

func TestUpdater_Tick_NoNeighborKeepsHeading(t *testing.T) {
	a := NewAgent(vec(10, 10), vec(3, 4), 5, 1)
	far := NewAgent(vec(500, 500), vec(-1, 0), 5, 1)
	u := NewUpdater(WithSpeed(2))

	u.Tick([]*Agent{a, far})

	assertVec(t, vec(1.2, 1.6), a.Velocity, "same direction, rescaled to speed")
	assertVec(t, vec(11.2, 11.6), a.Position)
	assertVec(t, vec(0.6, 0.8), a.Facing)
}

func TestUpdater_Tick_SpeedInvariant(t *testing.T) {
	agents := randomFlock(42, 150)
	u := NewUpdater(WithSpeed(2.5))

	for range 5 {
		u.Tick(agents)
		for i, a := range agents {
			require.InDeltaf(t, 2.5, a.Velocity.Len(), tolerance, "agent %d speed", i)
			require.True(t, a.Position.IsFinite())
			require.InDeltaf(t, 1.0, a.Facing.Len(), tolerance, "agent %d facing", i)
		}
	}
}

func TestUpdater_Tick_InverseDistanceWeighting(t *testing.T) {
	me := NewAgent(vec(0, 0), vec(-1, 0), 5, 1)
	near := NewAgent(vec(1, 0), vec(0, 1), 0, 1) // d1 = 1
	far := NewAgent(vec(3, 0), vec(1, 0), 0, 1)  // d2 = 3
	u := NewUpdater()

	u.Tick([]*Agent{me, near, far})

	// weights 1/1 and 1/3: the near heading must dominate 3:1
	assert.Greater(t, me.Velocity.Y, me.Velocity.X)
	assert.InDelta(t, 3.0, me.Velocity.Y/me.Velocity.X, tolerance)
	assertVec(t, vec(1, 3).Normalize(), me.Velocity)
}

func TestUpdater_Tick_UsesPreTickSnapshot(t *testing.T) {
	build := func() (a, b, c *Agent) {
		a = NewAgent(vec(0, 0), vec(1, 0), 15, 1)
		b = NewAgent(vec(10, 0), vec(0, 1), 15, 1)
		c = NewAgent(vec(20, 0), vec(1, 1), 15, 1)
		return a, b, c
	}
	// b blends a (1,0) and c (1,1) with equal weights -> (2,1)
	want := vec(2, 1).Normalize()

	orders := map[string]func(a, b, c *Agent) []*Agent{
		"a b c": func(a, b, c *Agent) []*Agent { return []*Agent{a, b, c} },
		"a c b": func(a, b, c *Agent) []*Agent { return []*Agent{a, c, b} },
		"c a b": func(a, b, c *Agent) []*Agent { return []*Agent{c, a, b} },
	}
	for name, order := range orders {
		for _, workers := range []int{1, 3} {
			a, b, c := build()
			u := NewUpdater(WithWorkers(workers))

			u.Tick(order(a, b, c))

			assertVec(t, want, b.Velocity, "order %s workers %d", name, workers)
			// a and c only see b, so they turn to b's pre-tick heading
			assertVec(t, vec(0, 1), a.Velocity, "order %s workers %d", name, workers)
			assertVec(t, vec(0, 1), c.Velocity, "order %s workers %d", name, workers)
		}
	}
}

func TestUpdater_Tick_SkipsCoincidentNeighbor(t *testing.T) {
	a := NewAgent(vec(0, 0), vec(1, 0), 1, 1)
	b := NewAgent(vec(0, 0), vec(0, 1), 5, 1)
	c := NewAgent(vec(3, 0), vec(0, -2), 1, 1)
	u := NewUpdater()

	stats := u.Tick([]*Agent{a, b, c})

	// b sees a at distance 0 (skipped) and c at distance 3
	assertVec(t, vec(0, -1), b.Velocity)
	// a only sees b at distance 0: no usable neighbor, keeps its heading
	assertVec(t, vec(1, 0), a.Velocity)
	assertVec(t, vec(0, -1), c.Velocity)
	assert.Equal(t, 2, stats.Fallbacks)
}

func TestUpdater_Tick_CancellingNeighborsKeepHeading(t *testing.T) {
	me := NewAgent(vec(0, 0), vec(0, 1), 5, 1)
	left := NewAgent(vec(-2, 0), vec(1, 0), 0, 1)
	right := NewAgent(vec(2, 0), vec(-1, 0), 0, 1)
	u := NewUpdater()

	u.Tick([]*Agent{me, left, right})

	assertVec(t, vec(0, 1), me.Velocity)
	assert.True(t, me.Position.IsFinite())
}

func TestUpdater_Tick_ZeroVelocity(t *testing.T) {
	t.Run("reuses last facing", func(t *testing.T) {
		a := NewAgent(vec(0, 0), vec(0, 0), 5, 1)
		a.Facing = vec(0, 1)
		u := NewUpdater(WithSpeed(2))

		u.Tick([]*Agent{a})

		assertVec(t, vec(0, 2), a.Velocity)
		assertVec(t, vec(0, 2), a.Position)
	})

	t.Run("falls back to default heading", func(t *testing.T) {
		a := NewAgent(vec(0, 0), vec(0, 0), 5, 1)
		u := NewUpdater(WithDefaultHeading(vec(0, -4)))

		u.Tick([]*Agent{a})

		assertVec(t, vec(0, -1), a.Velocity)
		assertVec(t, vec(0, -1), a.Facing)
	})

	t.Run("stays at rest without default heading", func(t *testing.T) {
		a := NewAgent(vec(7, 7), vec(0, 0), 5, 1)
		u := NewUpdater(WithDefaultHeading(geometry.Zero))

		stats := u.Tick([]*Agent{a})

		assert.Equal(t, geometry.Zero, a.Velocity)
		assert.Equal(t, vec(7, 7), a.Position)
		assert.Equal(t, geometry.Zero, a.Facing)
		assert.Equal(t, 1, stats.AtRest)
	})
}

func TestUpdater_Tick_ParallelMatchesSequential(t *testing.T) {
	sequential := randomFlock(7, 300)
	parallel := cloneFlock(sequential)

	seqUpdater := NewUpdater(WithSpeed(1.5))
	parUpdater := NewUpdater(WithSpeed(1.5), WithWorkers(8))

	for range 10 {
		seqStats := seqUpdater.Tick(sequential)
		parStats := parUpdater.Tick(parallel)
		require.Equal(t, seqStats, parStats)
	}
	for i := range sequential {
		assert.Equal(t, sequential[i].Position, parallel[i].Position, "agent %d", i)
		assert.Equal(t, sequential[i].Velocity, parallel[i].Velocity, "agent %d", i)
	}
}

func TestUpdater_Tick_SkipsNilAgents(t *testing.T) {
	a := NewAgent(vec(0, 0), vec(1, 0), 5, 1)
	u := NewUpdater()

	stats := u.Tick([]*Agent{nil, a, nil})

	assert.Equal(t, 1, stats.Agents)
	assertVec(t, vec(1, 0), a.Position)
}

func TestUpdater_Contributors(t *testing.T) {
	t.Run("threat response is a no-op", func(t *testing.T) {
		a := NewAgent(vec(0, 0), vec(1, 0), 5, 1)
		assert.Equal(t, vec(3, 4), ThreatResponse{}.Contribute(a, vec(3, 4)))
	})

	t.Run("custom contributor runs after blending", func(t *testing.T) {
		var seen geometry.Vector2D
		double := ContributorFunc(func(_ *Agent, v geometry.Vector2D) geometry.Vector2D {
			seen = v
			return v.Mul(2)
		})
		a := NewAgent(vec(0, 0), vec(1, 0), 5, 1)
		u := NewUpdater(WithContributors(ThreatResponse{}, double))

		u.Tick([]*Agent{a})

		assertVec(t, vec(1, 0), seen)
		assertVec(t, vec(2, 0), a.Velocity)
		assertVec(t, vec(1, 0), a.Facing)
	})

	t.Run("non-finite contribution is discarded", func(t *testing.T) {
		tests := []struct {
			name string
			bad  geometry.Vector2D
		}{
			{"nan", vec(math.NaN(), 0)},
			{"inf", vec(0, math.Inf(-1))},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				broken := ContributorFunc(func(_ *Agent, _ geometry.Vector2D) geometry.Vector2D {
					return tt.bad
				})
				double := ContributorFunc(func(_ *Agent, v geometry.Vector2D) geometry.Vector2D {
					return v.Mul(2)
				})
				a := NewAgent(vec(0, 0), vec(1, 0), 5, 1)
				u := NewUpdater(WithContributors(broken, double))

				stats := u.Tick([]*Agent{a})

				assert.Equal(t, 1, stats.Rejected)
				assert.True(t, a.Position.IsFinite())
				assert.True(t, a.Facing.IsFinite())
				assertVec(t, vec(2, 0), a.Velocity)
				assertVec(t, vec(2, 0), a.Position)
				assertVec(t, vec(1, 0), a.Facing)
			})
		}
	})
}

func TestUpdater_SetSpeed(t *testing.T) {
	u := NewUpdater()
	assert.Equal(t, DefaultSpeed, u.Speed())

	require.NoError(t, u.SetSpeed(3))
	assert.Equal(t, 3.0, u.Speed())

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, u.SetSpeed(bad), ErrInvalidSpeed)
	}
	assert.Equal(t, 3.0, u.Speed())

	u = NewUpdater(WithSpeed(-2))
	assert.Equal(t, DefaultSpeed, u.Speed(), "invalid option is ignored")
}

func BenchmarkUpdater_Tick(b *testing.B) {
	agents := randomFlock(1, 500)
	u := NewUpdater()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.Tick(agents)
	}
}

func BenchmarkUpdater_TickParallel(b *testing.B) {
	agents := randomFlock(1, 500)
	u := NewUpdater(WithWorkers(4))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.Tick(agents)
	}
}

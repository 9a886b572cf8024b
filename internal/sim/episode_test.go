package sim

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/events"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/fire"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/states"
)

// certainParams is a small calm configuration in which every exposed tree ignites.
func certainParams(size, burnDuration int) Params {
	p := DefaultParams()
	p.GridSize = size
	p.IgnitionRadius = 0
	p.Fire = fire.Params{
		BaseIgnition:     1.0,
		SuppressionDecay: 1.0,
		BurnDuration:     burnDuration,
		Wind:             fire.WindParams{Direction: core.North},
	}
	return p
}

func newTestEpisode(t *testing.T, p Params) *Episode {
	t.Helper()
	e, err := NewEpisode(p, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return e
}

func TestNewEpisode_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		field  string
	}{
		{"zero grid", func(p *Params) { p.GridSize = 0 }, "sim.grid_size"},
		{"negative grid", func(p *Params) { p.GridSize = -3 }, "sim.grid_size"},
		{"zero drop rate", func(p *Params) { p.Aircraft.DropRate = 0 }, "agent.drop_rate"},
		{"zero max suppression", func(p *Params) { p.MaxSuppression = 0 }, "agent.max_suppression"},
		{"zero burn duration", func(p *Params) { p.Fire.BurnDuration = 0 }, "fire.burn_duration"},
		{"single cell grid", func(p *Params) { p.GridSize = 1 }, "fire.ignition_radius"},
		{"ignition only on airport", func(p *Params) {
			p.IgnitionRadius = 0
			p.IgnitionRow, p.IgnitionCol = 40, 40
		}, "fire.ignition_radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			_, err := NewEpisode(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
			var cfgErr *core.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestStep_BeforeReset(t *testing.T) {
	e := newTestEpisode(t, DefaultParams())
	_, err := e.Step(core.ActionNorth, 1)
	assert.ErrorIs(t, err, core.ErrNotReset)
	_, err = e.Snapshot()
	assert.ErrorIs(t, err, core.ErrNotReset)
}

func TestReset_InitialState(t *testing.T) {
	p := DefaultParams()
	p.GridSize = 30
	e := newTestEpisode(t, p)

	snap, agent := e.Reset(7)

	airport := core.NewCoordinate(20, 20)
	assert.Equal(t, airport, agent.Location)
	assert.Equal(t, p.Aircraft.PayloadCapacity, agent.Payload)
	assert.False(t, agent.Dropping)
	assert.Equal(t, core.Aircraft, snap.At(20, 20))

	grid := e.Grid()
	assert.Equal(t, core.Empty, grid.At(20, 20), "airport cell carries no fuel")
	assert.Equal(t, 9, grid.Count(core.Fire))
	for r := 14; r <= 16; r++ {
		for c := 14; c <= 16; c++ {
			assert.Equal(t, core.Fire, grid.At(r, c))
		}
	}
	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.NotEmpty(t, e.ID())
	assert.Equal(t, int64(7), e.Seed())
	assert.Len(t, e.Frames(), 1)
}

func TestReset_AirportInsideIgnitionStaysEmpty(t *testing.T) {
	p := DefaultParams()
	p.GridSize = 20 // airport and ignition centre both land on (10,10)
	e := newTestEpisode(t, p)
	e.Reset(1)

	grid := e.Grid()
	assert.Equal(t, core.Empty, grid.At(10, 10))
	assert.Equal(t, 8, grid.Count(core.Fire))
}

func TestReset_AirportOverlayOnlyInSnapshot(t *testing.T) {
	p := DefaultParams()
	p.GridSize = 30
	e := newTestEpisode(t, p)
	e.Reset(1)

	res, err := e.Step(core.ActionNorth, 1)
	require.NoError(t, err)
	assert.Equal(t, core.Airport, res.Snapshot.At(20, 20))
	assert.Equal(t, core.Aircraft, res.Snapshot.At(19, 20))
	for _, c := range res.Grid.Cells {
		assert.True(t, c.IsFireState(), "fire grid must never hold overlay markers")
	}
}

func TestStep_ConcreteScenario(t *testing.T) {
	p := certainParams(5, 1)
	p.AirportRow, p.AirportCol = 0, 0
	e := newTestEpisode(t, p)
	e.Reset(0)

	res, err := e.Step(core.ActionNorth, 1)
	require.NoError(t, err)
	for d := core.Direction(0); d < core.NumDirections; d++ {
		n := core.NewCoordinate(2, 2).Move(d)
		assert.Equal(t, core.Fire, res.Grid.At(n.Row, n.Col))
	}
	assert.Equal(t, core.Empty, res.Grid.At(2, 2))
	assert.False(t, res.Done)

	tick := 1
	for !res.Done {
		tick++
		require.Less(t, tick, 20)
		res, err = e.Step(core.ActionNorth, tick)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, tick)
	assert.Zero(t, res.Grid.Count(core.Fire))
	assert.Equal(t, 25, res.Grid.Count(core.Empty))
	assert.Equal(t, states.PhaseTerminated, e.Phase())

	_, err = e.Step(core.ActionNorth, tick+1)
	assert.ErrorIs(t, err, core.ErrEpisodeTerminated)
}

func TestStep_CentreKeepsBurning(t *testing.T) {
	e := newTestEpisode(t, certainParams(5, 2))
	e.Reset(0)

	res, err := e.Step(core.ActionWest, 1)
	require.NoError(t, err)
	assert.Equal(t, core.Fire, res.Grid.At(2, 2))
}

func TestStep_DoneOnFirstFireFreeTick(t *testing.T) {
	// A lone fire cell surrounded by Empty burns out on tick 1 without spreading.
	p := certainParams(3, 1)
	e := newTestEpisode(t, p)
	e.Reset(3)
	require.Equal(t, 1, e.Grid().Count(core.Fire))
	e.grid = core.NewGrid(3, core.Empty)
	e.grid.Set(1, 1, core.Fire)

	res, err := e.Step(core.ActionDrop, 1)
	require.NoError(t, err)
	assert.Zero(t, res.Grid.Count(core.Fire))
	assert.True(t, res.Done)
	assert.True(t, e.Done())
}

func TestReset_AlwaysStartsBurning(t *testing.T) {
	for size := 2; size <= 12; size++ {
		for radius := 0; radius <= 2; radius++ {
			p := DefaultParams()
			p.GridSize = size
			p.IgnitionRadius = radius
			e, err := NewEpisode(p, WithLogger(zerolog.Nop()))
			if err != nil {
				assert.ErrorIs(t, err, core.ErrInvalidConfig)
				continue
			}
			e.Reset(1)
			assert.Positive(t, e.Grid().Count(core.Fire), "size %d radius %d", size, radius)
			assert.False(t, e.Done())
		}
	}
}

func TestStep_DoneIffNoFire(t *testing.T) {
	p := DefaultParams()
	p.GridSize = 25
	e := newTestEpisode(t, p)
	e.Reset(11)
	rng := rand.New(rand.NewSource(11))

	for tick := 1; tick < 5000; tick++ {
		res, err := e.Step(core.Action(rng.Intn(core.NumActions)), tick)
		require.NoError(t, err)
		assert.Equal(t, res.Grid.Count(core.Fire) == 0, res.Done, "tick %d", tick)
		assert.Equal(t, res.Diagnostics.Burning, res.Grid.Count(core.Fire))
		if res.Done {
			return
		}
	}
	t.Fatal("episode never terminated")
}

func TestStep_Deterministic(t *testing.T) {
	p := DefaultParams()
	p.GridSize = 30

	run := func() []Snapshot {
		e := newTestEpisode(t, p)
		e.Reset(2024)
		actions := rand.New(rand.NewSource(5))
		for tick := 1; tick <= 60 && !e.Done(); tick++ {
			_, err := e.Step(core.Action(actions.Intn(core.NumActions)), tick)
			require.NoError(t, err)
		}
		return e.Frames()
	}

	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Cells, b[i].Cells, "frame %d", i)
		assert.Equal(t, a[i].Aircraft, b[i].Aircraft, "frame %d", i)
	}
}

func TestStep_SuppressionMonotoneAndAgentInBounds(t *testing.T) {
	p := DefaultParams()
	p.GridSize = 12
	p.Aircraft.DropRate = 1
	p.Aircraft.DropAmount = 0.2
	e := newTestEpisode(t, p)
	e.Reset(9)
	rng := rand.New(rand.NewSource(9))

	prev := e.Suppression()
	for tick := 1; tick <= 400 && !e.Done(); tick++ {
		_, err := e.Step(core.Action(rng.Intn(core.NumActions+2)-1), tick)
		require.NoError(t, err)

		cur := e.Suppression()
		for i := range cur.Levels {
			require.GreaterOrEqual(t, cur.Levels[i], prev.Levels[i])
		}
		prev = cur
		require.True(t, e.Aircraft().Location.IsValid(p.GridSize))
	}
}

func TestStep_PayloadDepletion(t *testing.T) {
	p := DefaultParams()
	p.GridSize = 20
	p.MaxSuppression = 100
	p.Aircraft.PayloadCapacity = 30
	p.Aircraft.DropRate = 10
	p.Aircraft.DropAmount = 1
	p.Fire.BurnDuration = 50
	e := newTestEpisode(t, p)
	e.Reset(1)

	var levels []float64
	for tick := 1; tick <= 6; tick++ {
		_, err := e.Step(core.ActionDrop, tick)
		require.NoError(t, err)
		loc := e.Aircraft().Location
		levels = append(levels, e.Suppression().At(loc.Row, loc.Col))
	}
	assert.Equal(t, []float64{1, 2, 3, 3, 3, 3}, levels)
	assert.Zero(t, e.Aircraft().Payload)
	assert.InDelta(t, 30.0, e.Stats().PayloadUsed, 1e-9)
	assert.Equal(t, 3, e.Stats().DropTicks)
}

func TestStep_Rewards(t *testing.T) {
	p := certainParams(5, 1)
	e := newTestEpisode(t, p)
	e.Reset(0)
	res, err := e.Step(core.ActionNorth, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Reward)

	p.Reward = RewardConfig{PerTick: 1, BurnedCellPenalty: 0.5}
	e = newTestEpisode(t, p)
	e.Reset(0)
	res, err = e.Step(core.ActionNorth, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Reward, "centre cell burnt out")
}

func TestStep_PublishesPeriodicDiagnostics(t *testing.T) {
	bus := events.NewEventBus()
	var diagTicks []int
	bus.SubscribeFunc(events.TypeDiagnostics, func(ev events.Event) {
		d := ev.(*events.DiagnosticsEvent)
		diagTicks = append(diagTicks, d.Tick)
		assert.Positive(t, d.CellsEvaluated)
	})
	ended := 0
	bus.SubscribeFunc(events.TypeEpisodeEnded, func(events.Event) { ended++ })

	p := DefaultParams()
	p.GridSize = 40
	p.Fire.BurnDuration = 50
	p.DiagnosticsInterval = 10
	e, err := NewEpisode(p, WithLogger(zerolog.Nop()), WithEventBus(bus))
	require.NoError(t, err)
	e.Reset(4)

	for tick := 1; tick <= 25; tick++ {
		_, err := e.Step(core.ActionEast, tick)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{10, 20}, diagTicks)
	assert.Zero(t, ended)
}

func TestReset_AfterTermination(t *testing.T) {
	e := newTestEpisode(t, certainParams(3, 1))
	e.Reset(0)
	firstID := e.ID()
	for tick := 1; !e.Done(); tick++ {
		_, err := e.Step(core.ActionSouth, tick)
		require.NoError(t, err)
	}

	e.Reset(0)
	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.NotEqual(t, firstID, e.ID())
	assert.Len(t, e.Frames(), 1)
	_, err := e.Step(core.ActionSouth, 1)
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	e := newTestEpisode(t, certainParams(5, 1))
	e.Reset(0)
	for tick := 1; !e.Done(); tick++ {
		_, err := e.Step(core.ActionNorth, tick)
		require.NoError(t, err)
	}
	s := e.Stats()
	assert.Equal(t, 3, s.Ticks)
	assert.Equal(t, 23, s.InitialTrees)
	assert.Equal(t, 0, s.TreesRemaining)
	assert.Equal(t, 23, s.Ignited)
	assert.Equal(t, 24, s.BurnedOut)
	assert.Equal(t, 15, s.PeakBurning)
	assert.InDelta(t, 1.0, s.BurnedFraction(), 1e-9)
}

package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/aircraft"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/events"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/fire"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/states"
)

// Diagnostics is the throughput information produced by one tick.
type Diagnostics struct {
	Tick           int
	CellsEvaluated int
	Burning        int
	Ignited        int
	BurnedOut      int
	Wind           core.Direction
}

// StepResult is everything a driver gets back from one tick.
type StepResult struct {
	Grid        *core.Grid // pure fire states, a copy
	Snapshot    Snapshot   // with overlay markers
	Reward      float64
	Done        bool
	Diagnostics Diagnostics
	Effect      aircraft.Effect
}

// Episode owns every piece of mutable simulation state: grid, suppression,
// aircraft, wind and the random generator. Episodes share nothing, so
// independent episodes may run on separate goroutines. A single Episode is
// not safe for concurrent use.
type Episode struct {
	params     Params
	id         string
	seed       int64
	rng        *rand.Rand
	grid       *core.Grid
	supp       *core.Suppression
	agent      *aircraft.Aircraft
	airport    core.Coordinate
	engine     *fire.Engine
	controller *aircraft.Controller
	phase      *states.Machine
	bus        *events.EventBus
	frames     []Snapshot
	stats      Stats
	startTime  time.Time
	lastTick   int
	logger     zerolog.Logger
}

// Option customises an Episode.
type Option func(*Episode)

// WithLogger sets the episode logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Episode) { e.logger = logger }
}

// WithEventBus publishes episode events on bus.
func WithEventBus(bus *events.EventBus) Option {
	return func(e *Episode) {
		if bus != nil {
			e.bus = bus
		}
	}
}

// NewEpisode validates params and builds an episode. Reset must be called before Step.
func NewEpisode(params Params, opts ...Option) (*Episode, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("new episode: %w", err)
	}
	e := &Episode{
		params: params,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = events.NewEventBus()
	}
	e.logger = e.logger.With().Str("component", "episode").Logger()
	e.controller = aircraft.NewController(params.Aircraft, e.logger)
	return e, nil
}

// Reset starts a fresh episode from seed and returns the initial snapshot and aircraft.
func (e *Episode) Reset(seed int64) (Snapshot, aircraft.Aircraft) {
	e.id = uuid.NewString()
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))
	e.engine = fire.NewEngine(e.params.Fire, e.logger)
	e.grid = newInitialGrid(e.params)
	e.supp = core.NewSuppression(e.params.GridSize, e.params.MaxSuppression)
	e.airport = e.params.Airport()
	e.agent = aircraft.New(e.airport, e.params.Aircraft)
	e.lastTick = 0
	e.startTime = time.Now()
	e.stats = Stats{InitialTrees: e.grid.Count(core.Tree)}
	e.stats.TreesRemaining = e.stats.InitialTrees

	if e.phase == nil {
		e.phase = states.NewMachine(e.id, e.bus, e.logger)
	} else {
		e.phase.SetEpisodeID(e.id)
		if err := e.phase.TransitionTo(states.PhaseRunning, 0, "reset"); err != nil {
			e.logger.Error().Err(err).Msg("Reset transition rejected")
		}
	}

	snap := e.snapshot(0)
	e.frames = e.frames[:0]
	if e.params.RecordFrames {
		e.frames = append(e.frames, snap)
	}

	burning := e.grid.Count(core.Fire)
	e.stats.PeakBurning = burning
	e.bus.Publish(events.NewEpisodeStartedEvent(e.id, seed, e.params.GridSize, burning))
	return snap, *e.agent
}

// Step applies action, then advances the fire one tick. tick is supplied by
// the caller and only drives diagnostics cadence and wind.
func (e *Episode) Step(action core.Action, tick int) (*StepResult, error) {
	if e.grid == nil {
		return nil, core.ErrNotReset
	}
	if e.phase.Current().IsTerminal() {
		return nil, core.ErrEpisodeTerminated
	}

	payloadBefore := e.agent.Payload
	eff := e.controller.Apply(e.agent, action, e.supp)

	res, err := e.engine.Advance(e.grid, e.supp, e.rng, tick)
	if err != nil {
		return nil, fmt.Errorf("advance tick %d: %w", tick, err)
	}
	e.grid = res.Grid
	e.lastTick = tick

	burning := e.grid.Count(core.Fire)
	done := burning == 0
	reward := e.params.Reward.Compute(res.BurnedOut)
	snap := e.snapshot(tick)
	if e.params.RecordFrames {
		e.frames = append(e.frames, snap)
	}

	e.stats.Ticks++
	e.stats.Ignited += res.Ignited
	e.stats.BurnedOut += res.BurnedOut
	e.stats.CellsEvaluated += res.CellsEvaluated
	e.stats.PayloadUsed += payloadBefore - e.agent.Payload
	e.stats.DropTicks = e.agent.DropTicks
	e.stats.TreesRemaining = e.grid.Count(core.Tree)
	if burning > e.stats.PeakBurning {
		e.stats.PeakBurning = burning
	}
	if res.WindVeered {
		e.stats.WindVeers++
	}

	wind := e.engine.Wind()
	diag := Diagnostics{
		Tick:           tick,
		CellsEvaluated: res.CellsEvaluated,
		Burning:        burning,
		Ignited:        res.Ignited,
		BurnedOut:      res.BurnedOut,
		Wind:           wind.Direction,
	}
	e.publishTick(action, eff, res, diag, reward)

	if done {
		if err := e.phase.TransitionTo(states.PhaseTerminated, tick, "fire extinguished"); err != nil {
			return nil, err
		}
		e.bus.Publish(events.NewEpisodeEndedEvent(e.id, tick, e.stats.Ticks, e.stats.InitialTrees-e.stats.TreesRemaining,
			e.stats.TreesRemaining, e.stats.PayloadUsed, time.Since(e.startTime)))
	}

	return &StepResult{
		Grid:        e.grid.Clone(),
		Snapshot:    snap,
		Reward:      reward,
		Done:        done,
		Diagnostics: diag,
		Effect:      eff,
	}, nil
}

func (e *Episode) publishTick(action core.Action, eff aircraft.Effect, res *fire.Result, diag Diagnostics, reward float64) {
	if eff.DropStarted {
		e.bus.Publish(events.NewDropStartedEvent(e.id, diag.Tick, e.agent.Location.Row, e.agent.Location.Col, e.agent.Payload))
	}
	if eff.PayloadExhausted {
		e.bus.Publish(events.NewPayloadExhaustedEvent(e.id, diag.Tick, e.agent.DropTicks))
	}
	if res.WindVeered {
		e.bus.Publish(events.NewWindVeeredEvent(e.id, diag.Tick, diag.Wind.String()))
	}
	e.bus.Publish(events.NewTickCompletedEvent(e.id, diag.Tick, int(action), diag.Burning, diag.Ignited, reward))
	if e.params.DiagnosticsInterval > 0 && diag.Tick%e.params.DiagnosticsInterval == 0 {
		e.bus.Publish(events.NewDiagnosticsEvent(e.id, diag.Tick, diag.CellsEvaluated, diag.Burning))
	}
}

func (e *Episode) snapshot(tick int) Snapshot {
	return newSnapshot(tick, e.grid, e.airport, e.agent.Location)
}

// ID returns the identifier assigned at the last reset.
func (e *Episode) ID() string { return e.id }

// Seed returns the seed of the last reset.
func (e *Episode) Seed() int64 { return e.seed }

// Params returns the episode configuration.
func (e *Episode) Params() Params { return e.params }

// Phase returns Running or Terminated.
func (e *Episode) Phase() states.EpisodePhase {
	if e.phase == nil {
		return states.PhaseRunning
	}
	return e.phase.Current()
}

// Done reports whether the episode has terminated.
func (e *Episode) Done() bool { return e.Phase().IsTerminal() }

// Snapshot exports the current overlaid grid.
func (e *Episode) Snapshot() (Snapshot, error) {
	if e.grid == nil {
		return Snapshot{}, core.ErrNotReset
	}
	return e.snapshot(e.lastTick), nil
}

// Grid returns a copy of the pure fire grid.
func (e *Episode) Grid() *core.Grid {
	if e.grid == nil {
		return nil
	}
	return e.grid.Clone()
}

// Suppression returns a copy of the suppression array.
func (e *Episode) Suppression() *core.Suppression {
	if e.supp == nil {
		return nil
	}
	return e.supp.Clone()
}

// Aircraft returns a copy of the agent state.
func (e *Episode) Aircraft() aircraft.Aircraft {
	if e.agent == nil {
		return aircraft.Aircraft{}
	}
	return *e.agent
}

// Wind returns the current wind state.
func (e *Episode) Wind() fire.Wind {
	if e.engine == nil {
		return *fire.NewWind(e.params.Fire.Wind)
	}
	return e.engine.Wind()
}

// Frames returns the recorded snapshots, starting with the reset snapshot.
func (e *Episode) Frames() []Snapshot {
	out := make([]Snapshot, len(e.frames))
	copy(out, e.frames)
	return out
}

// Stats returns the episode counters so far.
func (e *Episode) Stats() Stats { return e.stats }

// Events exposes the bus so callers can subscribe.
func (e *Episode) Events() *events.EventBus { return e.bus }

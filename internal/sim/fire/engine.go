package fire

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

// Result is the outcome of one propagation tick.
type Result struct {
	Grid           *core.Grid
	CellsEvaluated int // Tree cells examined
	Ignited        int
	BurnedOut      int
	WindVeered     bool
}

// Engine advances the fire grid one tick at a time. It holds the wind state,
// so every episode needs its own Engine.
type Engine struct {
	params Params
	wind   *Wind
	logger zerolog.Logger
}

// NewEngine creates a propagation engine. Params are assumed validated.
func NewEngine(params Params, logger zerolog.Logger) *Engine {
	return &Engine{
		params: params,
		wind:   NewWind(params.Wind),
		logger: logger.With().Str("component", "fire_engine").Logger(),
	}
}

// Params returns the engine configuration.
func (e *Engine) Params() Params { return e.params }

// Wind returns a copy of the current wind state.
func (e *Engine) Wind() Wind { return *e.wind }

// Advance computes the next grid from a read-only view of grid and suppression.
// Tree cells are scanned in row-major order and each one with a burning neighbour
// consumes exactly one draw from rng.
func (e *Engine) Advance(grid *core.Grid, suppression *core.Suppression, rng *rand.Rand, tick int) (*Result, error) {
	if !suppression.MatchesGrid(grid) {
		shapeErr := &core.ShapeError{}
		if grid != nil {
			shapeErr.GridSize = grid.Size
		}
		if suppression != nil {
			shapeErr.SuppressionSize = suppression.Size
		}
		return nil, shapeErr
	}

	res := &Result{Grid: grid.Clone()}
	res.WindVeered = e.wind.Update(tick, rng)
	if res.WindVeered {
		e.logger.Debug().
			Int("tick", tick).
			Str("wind_direction", e.wind.Direction.String()).
			Msg("Wind veered")
	}

	next := res.Grid
	for idx, state := range grid.Cells {
		switch state {
		case core.Tree:
			res.CellsEvaluated++
			windFactor, exposed := e.spreadFactor(grid, idx)
			if !exposed {
				continue
			}
			p := IgnitionProbability(e.params.BaseIgnition, e.params.SuppressionDecay,
				suppression.Levels[idx], suppression.Max, windFactor)
			if rng.Float64() < p {
				next.Cells[idx] = core.Fire
				next.Age[idx] = 0
				res.Ignited++
			}
		case core.Fire:
			age := grid.Age[idx] + 1
			if age >= e.params.BurnDuration {
				next.Cells[idx] = core.Empty
				next.Age[idx] = 0
				res.BurnedOut++
			} else {
				next.Age[idx] = age
			}
		}
	}

	return res, nil
}

// spreadFactor returns the strongest wind multiplier among burning neighbours of idx
// and whether any neighbour is burning at all.
func (e *Engine) spreadFactor(grid *core.Grid, idx int) (float64, bool) {
	row, col := grid.RowCol(idx)
	best := 0.0
	exposed := false
	for d := core.Direction(0); d < core.NumDirections; d++ {
		o := d.Offset()
		nr, nc := row+o.Row, col+o.Col
		if !grid.InBounds(nr, nc) || grid.At(nr, nc) != core.Fire {
			continue
		}
		// Fire travels from the neighbour back toward this cell.
		f := e.wind.Factor(d.Rotate(4))
		if !exposed || f > best {
			best = f
		}
		exposed = true
	}
	return best, exposed
}

// IgnitionProbability is base * (1 - level/max)^decay * windFactor clamped to [0,1].
// A cell at or above max is fire-proof and always gets exactly 0.
func IgnitionProbability(base, decay, level, max, windFactor float64) float64 {
	if max <= 0 || level >= max {
		return 0
	}
	remaining := 1.0
	if level > 0 {
		remaining = math.Pow(1-level/max, decay)
	}
	p := base * remaining * windFactor
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

package fire

import (
	"math/rand"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

// Wind is the per-episode wind state. It only changes on even ticks.
type Wind struct {
	Direction  core.Direction
	Strength   float64
	veerChance float64
}

// NewWind creates the initial wind state.
func NewWind(p WindParams) *Wind {
	return &Wind{
		Direction:  p.Direction,
		Strength:   p.Strength,
		veerChance: p.VeerChance,
	}
}

// Update may veer the wind one compass step on even ticks.
// The rng is only consumed when veering is enabled, so a calm configuration
// leaves the ignition draw sequence untouched.
func (w *Wind) Update(tick int, rng *rand.Rand) bool {
	if w.veerChance <= 0 || tick%2 != 0 {
		return false
	}
	if rng.Float64() >= w.veerChance {
		return false
	}
	if rng.Intn(2) == 0 {
		w.Direction = w.Direction.Rotate(1)
	} else {
		w.Direction = w.Direction.Rotate(-1)
	}
	return true
}

// Factor is the ignition multiplier for fire spreading in direction spread:
// 1 + Strength*cos(angle between spread and wind), never negative.
func (w *Wind) Factor(spread core.Direction) float64 {
	if w.Strength == 0 {
		return 1
	}
	wr, wc := w.Direction.Unit()
	sr, sc := spread.Unit()
	f := 1 + w.Strength*(wr*sr+wc*sc)
	if f < 0 {
		return 0
	}
	return f
}

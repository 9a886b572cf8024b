package runner

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/aircraft"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/fire"
)

// Observation is what a policy sees before choosing an action.
type Observation struct {
	Tick     int
	Grid     *core.Grid
	Aircraft aircraft.Aircraft
	Wind     fire.Wind
}

// Policy chooses one action per tick.
type Policy interface {
	Name() string
	Act(obs Observation) core.Action
}

const (
	PolicyRandom = "random"
	PolicySeeker = "seeker"
)

// PolicySeed derives the policy seed from an episode seed. Policy randomness
// is kept off the simulation stream; every driver must use this so that an
// episode seed replays the same actions.
func PolicySeed(episodeSeed int64) int64 {
	return episodeSeed ^ 0x5deece66d
}

// NewPolicy builds a policy by name. seed only matters for stochastic policies.
func NewPolicy(name string, seed int64) (Policy, error) {
	switch name {
	case PolicyRandom, "":
		return NewRandomPolicy(seed), nil
	case PolicySeeker:
		return NewSeekerPolicy(), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

// RandomPolicy samples uniformly from the 9 actions.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Name() string { return PolicyRandom }

func (p *RandomPolicy) Act(Observation) core.Action {
	return core.Action(p.rng.Intn(core.NumActions))
}

// SeekerPolicy flies toward the nearest burning cell and opens the doors once
// it is next to the fire.
type SeekerPolicy struct{}

func NewSeekerPolicy() *SeekerPolicy { return &SeekerPolicy{} }

func (p *SeekerPolicy) Name() string { return PolicySeeker }

func (p *SeekerPolicy) Act(obs Observation) core.Action {
	target, ok := nearestFire(obs.Grid, obs.Aircraft.Location)
	if !ok {
		return core.MoveAction(obs.Aircraft.Heading)
	}
	d, moving := directionToward(obs.Aircraft.Location, target)
	dist := obs.Aircraft.Location.ChebyshevDistance(target)
	if dist <= 1 && !obs.Aircraft.Dropping && obs.Aircraft.HasPayload() {
		return core.ActionDrop
	}
	if !moving {
		// Sitting on the fire: keep the current course.
		return core.MoveAction(obs.Aircraft.Heading)
	}
	return core.MoveAction(d)
}

// nearestFire returns the burning cell closest to from, first in row-major order on ties.
func nearestFire(g *core.Grid, from core.Coordinate) (core.Coordinate, bool) {
	best := core.Coordinate{}
	bestDist := -1
	for idx, c := range g.Cells {
		if c != core.Fire {
			continue
		}
		pos := core.FromIndex(idx, g.Size)
		d := from.ChebyshevDistance(pos)
		if bestDist < 0 || d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best, bestDist >= 0
}

// directionToward returns the compass direction of the single step that closes
// on to. moving is false when from equals to.
func directionToward(from, to core.Coordinate) (core.Direction, bool) {
	step := core.NewCoordinate(sign(to.Row-from.Row), sign(to.Col-from.Col))
	for d := core.Direction(0); d < core.NumDirections; d++ {
		if d.Offset().Equal(step) {
			return d, true
		}
	}
	return core.North, false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

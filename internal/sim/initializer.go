package sim

import (
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

// newInitialGrid builds the reset grid: all Tree, a Fire square around the
// ignition centre, and the airport cell cleared to Empty. The airport wins
// when it falls inside the ignition square.
func newInitialGrid(p Params) *core.Grid {
	g := core.NewGrid(p.GridSize, core.Tree)

	centre := p.IgnitionCentre()
	for r := centre.Row - p.IgnitionRadius; r <= centre.Row+p.IgnitionRadius; r++ {
		for c := centre.Col - p.IgnitionRadius; c <= centre.Col+p.IgnitionRadius; c++ {
			if g.InBounds(r, c) {
				g.Set(r, c, core.Fire)
			}
		}
	}

	airport := p.Airport()
	g.Set(airport.Row, airport.Col, core.Empty)
	return g
}

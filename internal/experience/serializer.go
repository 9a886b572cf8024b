package experience

import (
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/aircraft"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

// Channel layout of a state tensor. Each channel is size*size values, row-major.
const (
	ChannelTree = iota
	ChannelFire
	ChannelSuppression
	ChannelAircraft
	NumChannels
)

// Serializer turns simulation state into flat float tensors for learners.
type Serializer struct{}

// NewSerializer creates a new serializer
func NewSerializer() *Serializer {
	return &Serializer{}
}

// StateToTensor encodes the fire grid, suppression fraction and aircraft position.
func (s *Serializer) StateToTensor(grid *core.Grid, supp *core.Suppression, agent aircraft.Aircraft) []float32 {
	n := grid.Size * grid.Size
	out := make([]float32, NumChannels*n)
	for idx, c := range grid.Cells {
		switch c {
		case core.Tree:
			out[ChannelTree*n+idx] = 1
		case core.Fire:
			out[ChannelFire*n+idx] = 1
		}
		if supp != nil && idx < len(supp.Levels) {
			out[ChannelSuppression*n+idx] = float32(supp.Fraction(idx))
		}
	}
	if agent.Location.IsValid(grid.Size) {
		out[ChannelAircraft*n+agent.Location.ToIndex(grid.Size)] = 1
	}
	return out
}

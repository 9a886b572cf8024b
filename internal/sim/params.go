package sim

import (
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/aircraft"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/fire"
)

// Params is the full configuration surface of an episode.
type Params struct {
	GridSize       int
	MaxSuppression float64

	// Initial ignition square, centred on (IgnitionRow, IgnitionCol). -1 means grid centre.
	IgnitionRow    int
	IgnitionCol    int
	IgnitionRadius int

	// Airport cell, -1 means GridSize-10 clamped into the grid.
	AirportRow int
	AirportCol int

	Fire     fire.Params
	Aircraft aircraft.Params
	Reward   RewardConfig

	RecordFrames        bool
	DiagnosticsInterval int // 0 disables periodic diagnostics
}

// DefaultParams returns the reference episode configuration.
func DefaultParams() Params {
	return Params{
		GridSize:            50,
		MaxSuppression:      1.0,
		IgnitionRow:         -1,
		IgnitionCol:         -1,
		IgnitionRadius:      1,
		AirportRow:          -1,
		AirportCol:          -1,
		Fire:                fire.DefaultParams(),
		Aircraft:            aircraft.DefaultParams(),
		Reward:              DefaultRewardConfig(),
		RecordFrames:        true,
		DiagnosticsInterval: 10,
	}
}

// Validate reports the first configuration error. Errors match core.ErrInvalidConfig.
func (p Params) Validate() error {
	switch {
	case p.GridSize <= 0:
		return &core.ConfigError{Field: "sim.grid_size", Reason: "must be positive"}
	case p.MaxSuppression <= 0:
		return &core.ConfigError{Field: "agent.max_suppression", Reason: "must be positive"}
	case p.IgnitionRadius < 0:
		return &core.ConfigError{Field: "fire.ignition_radius", Reason: "must be non-negative"}
	case p.DiagnosticsInterval < 0:
		return &core.ConfigError{Field: "episode.diagnostics_interval", Reason: "must be non-negative"}
	case !p.ignitesOutsideAirport():
		return &core.ConfigError{Field: "fire.ignition_radius", Reason: "ignition region covers only the airport cell"}
	}
	if err := p.Aircraft.Validate(); err != nil {
		return err
	}
	return p.Fire.Validate()
}

// Airport resolves the configured airport cell.
func (p Params) Airport() core.Coordinate {
	row, col := p.AirportRow, p.AirportCol
	if row < 0 {
		row = p.GridSize - 10
	}
	if col < 0 {
		col = p.GridSize - 10
	}
	return core.NewCoordinate(row, col).Clamp(p.GridSize)
}

// ignitesOutsideAirport reports whether the initial ignition square holds at
// least one in-bounds cell other than the airport, so reset starts with fire.
func (p Params) ignitesOutsideAirport() bool {
	centre, airport := p.IgnitionCentre(), p.Airport()
	for r := centre.Row - p.IgnitionRadius; r <= centre.Row+p.IgnitionRadius; r++ {
		for c := centre.Col - p.IgnitionRadius; c <= centre.Col+p.IgnitionRadius; c++ {
			cell := core.NewCoordinate(r, c)
			if cell.IsValid(p.GridSize) && !cell.Equal(airport) {
				return true
			}
		}
	}
	return false
}

// IgnitionCentre resolves the configured ignition centre.
func (p Params) IgnitionCentre() core.Coordinate {
	row, col := p.IgnitionRow, p.IgnitionCol
	if row < 0 {
		row = p.GridSize / 2
	}
	if col < 0 {
		col = p.GridSize / 2
	}
	return core.NewCoordinate(row, col).Clamp(p.GridSize)
}

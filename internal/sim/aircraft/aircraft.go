package aircraft

import "github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"

// Params configures the suppression aircraft.
type Params struct {
	PayloadCapacity float64
	DropRate        float64 // payload spent per dropping tick
	DropAmount      float64 // suppression added to the cell below per dropping tick
	InitialHeading  core.Direction
}

// DefaultParams returns the reference aircraft configuration.
func DefaultParams() Params {
	return Params{
		PayloadCapacity: 100,
		DropRate:        10,
		DropAmount:      1.0,
		InitialHeading:  core.North,
	}
}

// Validate checks ranges. Errors match core.ErrInvalidConfig.
func (p Params) Validate() error {
	switch {
	case p.DropRate <= 0:
		return &core.ConfigError{Field: "agent.drop_rate", Reason: "must be positive"}
	case p.PayloadCapacity < 0:
		return &core.ConfigError{Field: "agent.payload_capacity", Reason: "must be non-negative"}
	case p.DropAmount <= 0:
		return &core.ConfigError{Field: "agent.drop_amount", Reason: "must be positive"}
	case !p.InitialHeading.Valid():
		return &core.ConfigError{Field: "agent.initial_heading", Reason: "must be a compass direction"}
	}
	return nil
}

// Aircraft is the agent state. Location always stays inside the grid.
type Aircraft struct {
	Location  core.Coordinate
	Heading   core.Direction
	Dropping  bool
	Payload   float64
	DropTicks int // ticks on which retardant actually fell
}

// New places a fully loaded aircraft at location.
func New(location core.Coordinate, p Params) *Aircraft {
	return &Aircraft{
		Location: location,
		Heading:  p.InitialHeading,
		Payload:  p.PayloadCapacity,
	}
}

// HasPayload reports whether any retardant is left.
func (a *Aircraft) HasPayload() bool { return a.Payload > 0 }

// Active reports whether retardant falls on the next drop tick.
func (a *Aircraft) Active() bool { return a.Dropping && a.HasPayload() }

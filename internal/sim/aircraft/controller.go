package aircraft

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

// Effect describes what one action did.
type Effect struct {
	Moved            bool
	DropStarted      bool
	Dropped          bool
	Amount           float64 // suppression added this tick
	PayloadExhausted bool    // payload reached zero this tick
}

// Controller applies discrete actions to an aircraft. It never rejects an action:
// moves are clamped to the grid and unknown actions do nothing.
type Controller struct {
	params Params
	logger zerolog.Logger
}

// NewController creates a controller. Params are assumed validated.
func NewController(params Params, logger zerolog.Logger) *Controller {
	return &Controller{
		params: params,
		logger: logger.With().Str("component", "aircraft_controller").Logger(),
	}
}

// Params returns the controller configuration.
func (c *Controller) Params() Params { return c.params }

// Apply moves the aircraft and, while it is dropping with payload left,
// paints retardant on the cell it ends up over.
func (c *Controller) Apply(a *Aircraft, action core.Action, suppression *core.Suppression) Effect {
	var eff Effect
	size := suppression.Size

	switch {
	case action.IsMove():
		d, _ := action.Direction()
		a.Location = a.Location.Move(d).Clamp(size)
		a.Heading = d
		eff.Moved = true
	case action.IsDrop() && !a.Dropping:
		a.Dropping = true
		a.Location = a.Location.Move(a.Heading).Clamp(size)
		eff.Moved = true
		eff.DropStarted = true
		c.logger.Debug().
			Str("location", a.Location.String()).
			Str("heading", a.Heading.String()).
			Float64("payload", a.Payload).
			Msg("Drop started")
	}

	if a.Active() {
		before := suppression.At(a.Location.Row, a.Location.Col)
		after := suppression.Add(a.Location.Row, a.Location.Col, c.params.DropAmount)
		a.Payload -= c.params.DropRate
		if a.Payload <= 0 {
			a.Payload = 0
			eff.PayloadExhausted = true
		}
		a.DropTicks++
		eff.Dropped = true
		eff.Amount = after - before
	}

	return eff
}

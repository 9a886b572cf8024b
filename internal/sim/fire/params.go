package fire

import "github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"

// Params configures the propagation engine.
type Params struct {
	// BaseIgnition is the ignition probability of an untreated cell next to fire with neutral wind.
	BaseIgnition float64
	// SuppressionDecay is the exponent k in (1 - level/max)^k.
	SuppressionDecay float64
	// BurnDuration is how many ticks a cell burns before it becomes Empty.
	BurnDuration int
	Wind         WindParams
}

// WindParams configures the wind model.
type WindParams struct {
	Direction  core.Direction // direction the wind blows toward
	Strength   float64        // 0 disables wind modulation, 1 doubles downwind spread
	VeerChance float64        // per even tick
}

// DefaultParams returns the reference policy used by the CLI.
func DefaultParams() Params {
	return Params{
		BaseIgnition:     0.35,
		SuppressionDecay: 1.0,
		BurnDuration:     3,
		Wind: WindParams{
			Direction:  core.East,
			Strength:   0.5,
			VeerChance: 0.1,
		},
	}
}

// Validate checks ranges. Errors match core.ErrInvalidConfig.
func (p Params) Validate() error {
	switch {
	case p.BaseIgnition < 0 || p.BaseIgnition > 1:
		return &core.ConfigError{Field: "fire.base_ignition", Reason: "must be between 0 and 1"}
	case p.SuppressionDecay <= 0:
		return &core.ConfigError{Field: "fire.suppression_decay", Reason: "must be positive"}
	case p.BurnDuration < 1:
		return &core.ConfigError{Field: "fire.burn_duration", Reason: "must be at least 1"}
	case !p.Wind.Direction.Valid():
		return &core.ConfigError{Field: "wind.direction", Reason: "must be a compass direction"}
	case p.Wind.Strength < 0 || p.Wind.Strength > 1:
		return &core.ConfigError{Field: "wind.strength", Reason: "must be between 0 and 1"}
	case p.Wind.VeerChance < 0 || p.Wind.VeerChance > 1:
		return &core.ConfigError{Field: "wind.veer_chance", Reason: "must be between 0 and 1"}
	}
	return nil
}

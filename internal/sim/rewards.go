package sim

// RewardConfig holds configurable reward values
type RewardConfig struct {
	PerTick           float64 // constant reward for every tick survived
	BurnedCellPenalty float64 // subtracted per cell that burnt out this tick
}

// DefaultRewardConfig returns the constant per-tick reward with no shaping.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{PerTick: 1.0}
}

// Compute returns the reward for a tick in which burnedOut cells turned to ash.
func (c RewardConfig) Compute(burnedOut int) float64 {
	return c.PerTick - c.BurnedCellPenalty*float64(burnedOut)
}

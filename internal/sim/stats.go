package sim

// Stats accumulates per-episode counters.
type Stats struct {
	Ticks          int
	InitialTrees   int
	TreesRemaining int
	Ignited        int
	BurnedOut      int
	PeakBurning    int
	CellsEvaluated int
	DropTicks      int
	PayloadUsed    float64
	WindVeers      int
}

// BurnedFraction is the share of the initial fuel that caught fire.
func (s Stats) BurnedFraction() float64 {
	if s.InitialTrees == 0 {
		return 0
	}
	return float64(s.InitialTrees-s.TreesRemaining) / float64(s.InitialTrees)
}

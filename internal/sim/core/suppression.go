package core

// Suppression holds accumulated retardant intensity per cell, row-major, same layout as Grid.
// Values never decrease and never exceed Max.
type Suppression struct {
	Size   int
	Max    float64
	Levels []float64
}

// NewSuppression returns an untreated suppression array.
func NewSuppression(size int, max float64) *Suppression {
	if size < 0 {
		size = 0
	}
	return &Suppression{
		Size:   size,
		Max:    max,
		Levels: make([]float64, size*size),
	}
}

func (s *Suppression) Idx(row, col int) int { return row*s.Size + col }
func (s *Suppression) At(row, col int) float64 { return s.Levels[s.Idx(row, col)] }

// Add increases the level at (row, col) by amount, clamped to Max.
// Non-positive amounts are ignored so levels stay monotone.
func (s *Suppression) Add(row, col int, amount float64) float64 {
	idx := s.Idx(row, col)
	if amount <= 0 {
		return s.Levels[idx]
	}
	v := s.Levels[idx] + amount
	if v > s.Max {
		v = s.Max
	}
	s.Levels[idx] = v
	return v
}

// FireProof reports whether the cell has reached the maximum intensity.
func (s *Suppression) FireProof(idx int) bool {
	return s.Levels[idx] >= s.Max
}

// Fraction returns the cell's level relative to Max, in [0,1].
func (s *Suppression) Fraction(idx int) float64 {
	if s.Max <= 0 {
		return 0
	}
	f := s.Levels[idx] / s.Max
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// Clone returns a deep copy.
func (s *Suppression) Clone() *Suppression {
	c := &Suppression{Size: s.Size, Max: s.Max, Levels: make([]float64, len(s.Levels))}
	copy(c.Levels, s.Levels)
	return c
}

// MatchesGrid reports whether the suppression array has the grid's shape.
func (s *Suppression) MatchesGrid(g *Grid) bool {
	return s != nil && g != nil && s.Size == g.Size && len(s.Levels) == len(g.Cells)
}

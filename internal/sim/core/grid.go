package core

// Grid is a square fire-state board stored row-major.
// Age tracks how many ticks each Fire cell has been burning and is 0 for any other state.
type Grid struct {
	Size  int
	Cells []CellState // length = Size*Size (row-major)
	Age   []int
}

// NewGrid returns a grid of the given size with every cell set to fill.
func NewGrid(size int, fill CellState) *Grid {
	if size < 0 {
		size = 0
	}
	g := &Grid{
		Size:  size,
		Cells: make([]CellState, size*size),
		Age:   make([]int, size*size),
	}
	for i := range g.Cells {
		g.Cells[i] = fill
	}
	return g
}

func (g *Grid) Idx(row, col int) int { return row*g.Size + col }
func (g *Grid) RowCol(idx int) (int, int) { return idx / g.Size, idx % g.Size }
func (g *Grid) At(row, col int) CellState { return g.Cells[g.Idx(row, col)] }

// InBounds checks if coordinates are within grid boundaries
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Size && col >= 0 && col < g.Size
}

// Set writes a fire state and resets the burn age of the cell.
func (g *Grid) Set(row, col int, s CellState) {
	idx := g.Idx(row, col)
	g.Cells[idx] = s
	g.Age[idx] = 0
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Size:  g.Size,
		Cells: make([]CellState, len(g.Cells)),
		Age:   make([]int, len(g.Age)),
	}
	copy(c.Cells, g.Cells)
	copy(c.Age, g.Age)
	return c
}

// Count returns the number of cells in state s. It always scans the full grid.
func (g *Grid) Count(s CellState) int {
	n := 0
	for _, c := range g.Cells {
		if c == s {
			n++
		}
	}
	return n
}

// HasFire reports whether at least one cell is burning.
func (g *Grid) HasFire() bool {
	for _, c := range g.Cells {
		if c == Fire {
			return true
		}
	}
	return false
}

// Equal compares cell states only.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Size != other.Size {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}

package sim

import (
	"strings"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

// Snapshot is a read-only copy of the fire grid with the Airport and Aircraft
// markers overlaid. It is the only view handed to renderers and recorders and
// is never fed back into the simulation.
type Snapshot struct {
	Tick     int
	Size     int
	Cells    []core.CellState
	Aircraft core.Coordinate
	Airport  core.Coordinate
}

func newSnapshot(tick int, grid *core.Grid, airport, agent core.Coordinate) Snapshot {
	cells := make([]core.CellState, len(grid.Cells))
	copy(cells, grid.Cells)
	cells[grid.Idx(airport.Row, airport.Col)] = core.Airport
	cells[grid.Idx(agent.Row, agent.Col)] = core.Aircraft
	return Snapshot{
		Tick:     tick,
		Size:     grid.Size,
		Cells:    cells,
		Aircraft: agent,
		Airport:  airport,
	}
}

// At returns the overlaid state at (row, col).
func (s Snapshot) At(row, col int) core.CellState {
	return s.Cells[row*s.Size+col]
}

// ANSI color codes used by Render
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

var cellSymbols = map[core.CellState]struct {
	symbol string
	color  string
}{
	core.Empty:    {".", ColorGray},
	core.Tree:     {"T", ColorGreen},
	core.Fire:     {"*", ColorRed},
	core.Aircraft: {"A", ColorCyan},
	core.Airport:  {"H", ColorYellow},
}

// Render draws the snapshot as text, one row per line.
func (s Snapshot) Render(color bool) string {
	var sb strings.Builder
	sb.Grow(s.Size * (s.Size*12 + 1))
	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			sym, ok := cellSymbols[s.At(r, c)]
			if !ok {
				sb.WriteString("?")
				continue
			}
			if color {
				sb.WriteString(sym.color)
				sb.WriteString(sym.symbol)
				sb.WriteString(ColorReset)
			} else {
				sb.WriteString(sym.symbol)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s Snapshot) String() string { return s.Render(false) }

package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// GridFromRows builds a square grid from rows of '.', 'T' and '*'.
func GridFromRows(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g := core.NewGrid(len(rows), core.Empty)
	for r, row := range rows {
		if len(row) != len(rows) {
			t.Fatalf("row %d has %d cells, want %d", r, len(row), len(rows))
		}
		for c, ch := range row {
			switch ch {
			case '.':
			case 'T':
				g.Set(r, c, core.Tree)
			case '*':
				g.Set(r, c, core.Fire)
			default:
				t.Fatalf("unknown cell %q at (%d,%d)", ch, r, c)
			}
		}
	}
	return g
}

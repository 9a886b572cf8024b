package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(4, Tree)
	require.Len(t, g.Cells, 16)
	require.Len(t, g.Age, 16)
	assert.Equal(t, 16, g.Count(Tree))
	assert.False(t, g.HasFire())
}

func TestGrid_SetResetsAge(t *testing.T) {
	g := NewGrid(3, Tree)
	g.Set(1, 1, Fire)
	g.Age[g.Idx(1, 1)] = 4

	g.Set(1, 1, Empty)
	assert.Equal(t, Empty, g.At(1, 1))
	assert.Equal(t, 0, g.Age[g.Idx(1, 1)])
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGrid(3, Tree)
	g.Set(0, 0, Fire)
	c := g.Clone()
	require.True(t, g.Equal(c))

	c.Set(2, 2, Empty)
	assert.Equal(t, Tree, g.At(2, 2))
	assert.False(t, g.Equal(c))
}

func TestGrid_CountAndHasFire(t *testing.T) {
	g := NewGrid(5, Tree)
	g.Set(0, 0, Fire)
	g.Set(4, 4, Fire)
	g.Set(2, 2, Empty)
	assert.Equal(t, 2, g.Count(Fire))
	assert.Equal(t, 1, g.Count(Empty))
	assert.Equal(t, 22, g.Count(Tree))
	assert.True(t, g.HasFire())
}

func TestGrid_RowColAndBounds(t *testing.T) {
	g := NewGrid(6, Empty)
	r, c := g.RowCol(g.Idx(4, 1))
	assert.Equal(t, 4, r)
	assert.Equal(t, 1, c)
	assert.True(t, g.InBounds(5, 5))
	assert.False(t, g.InBounds(6, 0))
	assert.False(t, g.InBounds(0, -1))
}

func TestCellState_String(t *testing.T) {
	assert.Equal(t, "Fire", Fire.String())
	assert.Equal(t, "Aircraft", Aircraft.String())
	assert.Equal(t, "CellState(9)", CellState(9).String())
	assert.True(t, Tree.IsFireState())
	assert.False(t, Airport.IsFireState())
}

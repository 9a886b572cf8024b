package core

import "fmt"

// CellState is the fire-relevant status of one grid position.
type CellState uint8

const (
	Empty CellState = iota // no fuel
	Tree                   // fuel present, flammable
	Fire                   // actively burning
)

// Overlay markers. These only ever appear in a Snapshot, never in a Grid.
const (
	Aircraft CellState = iota + 3
	Airport
)

// IsFireState reports whether s is one of the states the propagation engine understands.
func (s CellState) IsFireState() bool {
	return s == Empty || s == Tree || s == Fire
}

func (s CellState) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Tree:
		return "Tree"
	case Fire:
		return "Fire"
	case Aircraft:
		return "Aircraft"
	case Airport:
		return "Airport"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

package core

import (
	"fmt"
	"math"
	"strings"
)

// Coordinate represents a position on the grid
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a grid array index using row-major ordering
func FromIndex(idx, size int) Coordinate {
	return Coordinate{Row: idx / size, Col: idx % size}
}

// IsValid checks if the coordinate is within a size x size grid
func (c Coordinate) IsValid(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// ToIndex converts the coordinate to a grid array index using row-major ordering
func (c Coordinate) ToIndex(size int) int {
	return c.Row*size + c.Col
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// Clamp pins the coordinate inside [0, size-1] on both axes.
func (c Coordinate) Clamp(size int) Coordinate {
	return Coordinate{Row: clamp(c.Row, 0, size-1), Col: clamp(c.Col, 0, size-1)}
}

// ChebyshevDistance is the number of 8-connected moves between two coordinates.
func (c Coordinate) ChebyshevDistance(other Coordinate) int {
	dr := abs(c.Row - other.Row)
	dc := abs(c.Col - other.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is one of the 8 compass headings. Rows grow southward.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections = 8
)

// DirectionVectors is indexed by Direction.
var DirectionVectors = [NumDirections]Coordinate{
	North:     {Row: -1, Col: 0},
	NorthEast: {Row: -1, Col: 1},
	East:      {Row: 0, Col: 1},
	SouthEast: {Row: 1, Col: 1},
	South:     {Row: 1, Col: 0},
	SouthWest: {Row: 1, Col: -1},
	West:      {Row: 0, Col: -1},
	NorthWest: {Row: -1, Col: -1},
}

var directionNames = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Valid reports whether d is one of the 8 compass directions.
func (d Direction) Valid() bool { return d >= 0 && d < NumDirections }

// Offset returns the unit or diagonal step for d, or the zero offset for an invalid direction.
func (d Direction) Offset() Coordinate {
	if !d.Valid() {
		return Coordinate{}
	}
	return DirectionVectors[d]
}

// Rotate turns the direction by steps eighths of a circle clockwise (negative is counter-clockwise).
func (d Direction) Rotate(steps int) Direction {
	return Direction(((int(d)+steps)%NumDirections + NumDirections) % NumDirections)
}

// Unit returns the normalised (row, col) vector of the direction.
func (d Direction) Unit() (float64, float64) {
	o := d.Offset()
	n := math.Hypot(float64(o.Row), float64(o.Col))
	if n == 0 {
		return 0, 0
	}
	return float64(o.Row) / n, float64(o.Col) / n
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts compass abbreviations such as "N" or "sw".
func ParseDirection(s string) (Direction, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == up {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("unknown compass direction %q", s)
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	return c.Add(direction.Offset())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

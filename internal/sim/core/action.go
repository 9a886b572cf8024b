package core

// Action is one of the discrete inputs accepted each tick.
// 0..7 move the aircraft in the matching Direction, 8 starts a retardant drop.
type Action int

const (
	ActionNorth Action = iota
	ActionNorthEast
	ActionEast
	ActionSouthEast
	ActionSouth
	ActionSouthWest
	ActionWest
	ActionNorthWest
	ActionDrop

	NumActions = 9
)

// IsMove reports whether the action moves the aircraft.
func (a Action) IsMove() bool { return a >= ActionNorth && a <= ActionNorthWest }

// IsDrop reports whether the action requests a drop.
func (a Action) IsDrop() bool { return a == ActionDrop }

// Direction maps a move action onto its compass direction. ok is false for anything else.
func (a Action) Direction() (d Direction, ok bool) {
	if !a.IsMove() {
		return North, false
	}
	return Direction(a), true
}

// MoveAction returns the action that flies in direction d.
func MoveAction(d Direction) Action { return Action(d) }

func (a Action) String() string {
	if d, ok := a.Direction(); ok {
		return "move_" + d.String()
	}
	if a.IsDrop() {
		return "drop"
	}
	return "noop"
}

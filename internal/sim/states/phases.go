package states

import "fmt"

// EpisodePhase is the externally visible state of an episode.
type EpisodePhase int

const (
	// PhaseRunning - zero or more ticks completed and fire remains
	PhaseRunning EpisodePhase = iota

	// PhaseTerminated - no fire left; no further ticks are processed
	PhaseTerminated
)

// String returns the string representation of an EpisodePhase
func (p EpisodePhase) String() string {
	switch p {
	case PhaseRunning:
		return "Running"
	case PhaseTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p EpisodePhase) IsTerminal() bool {
	return p == PhaseTerminated
}

// CanReceiveActions returns true if the episode can process actions in this phase
func (p EpisodePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// CanTransitionTo reports whether target is reachable. Reset re-enters Running from either phase.
func (p EpisodePhase) CanTransitionTo(target EpisodePhase) bool {
	switch p {
	case PhaseRunning:
		return target == PhaseRunning || target == PhaseTerminated
	case PhaseTerminated:
		return target == PhaseRunning
	default:
		return false
	}
}

package states

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/events"
)

// Transition represents a phase transition in the history
type Transition struct {
	From      EpisodePhase
	To        EpisodePhase
	Tick      int
	Timestamp time.Time
	Reason    string
}

// Machine tracks the episode phase. It is owned by a single episode and is not
// safe for concurrent use.
type Machine struct {
	episodeID      string
	current        EpisodePhase
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
	logger         zerolog.Logger
}

// NewMachine creates a machine in the Running phase.
func NewMachine(episodeID string, publisher events.Publisher, logger zerolog.Logger) *Machine {
	return &Machine{
		episodeID:      episodeID,
		current:        PhaseRunning,
		history:        make([]Transition, 0, 4),
		maxHistorySize: 64,
		publisher:      publisher,
		logger:         logger.With().Str("component", "phase_machine").Logger(),
	}
}

// Current returns the current phase.
func (m *Machine) Current() EpisodePhase { return m.current }

// SetEpisodeID rebinds the machine after a reset.
func (m *Machine) SetEpisodeID(id string) { m.episodeID = id }

// TransitionTo moves to target, recording the transition and publishing an event.
func (m *Machine) TransitionTo(target EpisodePhase, tick int, reason string) error {
	if !m.current.CanTransitionTo(target) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, target)
	}

	t := Transition{
		From:      m.current,
		To:        target,
		Tick:      tick,
		Timestamp: time.Now(),
		Reason:    reason,
	}
	m.history = append(m.history, t)
	if len(m.history) > m.maxHistorySize {
		m.history = m.history[len(m.history)-m.maxHistorySize:]
	}
	m.current = target

	m.logger.Debug().
		Str("from", t.From.String()).
		Str("to", t.To.String()).
		Int("tick", tick).
		Str("reason", reason).
		Msg("Episode phase transition")

	if m.publisher != nil {
		m.publisher.Publish(events.NewPhaseTransitionEvent(m.episodeID, tick, t.From.String(), t.To.String(), reason))
	}
	return nil
}

// History returns a copy of the recorded transitions.
func (m *Machine) History() []Transition {
	out := make([]Transition, len(m.history))
	copy(out, m.history)
	return out
}

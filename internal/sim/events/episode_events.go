package events

import (
	"time"
)

// Event type constants
const (
	TypeEpisodeStarted   = "episode.started"
	TypeEpisodeEnded     = "episode.ended"
	TypeTickCompleted    = "tick.completed"
	TypeDiagnostics      = "episode.diagnostics"
	TypeDropStarted      = "drop.started"
	TypePayloadExhausted = "payload.exhausted"
	TypeWindVeered       = "wind.veered"
	TypePhaseTransition  = "phase.transition"
)

// EpisodeStartedEvent is published on reset
type EpisodeStartedEvent struct {
	BaseEvent
	Seed     int64
	GridSize int
	Burning  int
}

func NewEpisodeStartedEvent(episodeID string, seed int64, gridSize, burning int) *EpisodeStartedEvent {
	return &EpisodeStartedEvent{
		BaseEvent: newBase(TypeEpisodeStarted, episodeID, 0),
		Seed:      seed,
		GridSize:  gridSize,
		Burning:   burning,
	}
}

// EpisodeEndedEvent is published once, when the last fire goes out
type EpisodeEndedEvent struct {
	BaseEvent
	Ticks       int
	Burned      int
	TreesLeft   int
	PayloadUsed float64
	Duration    time.Duration
}

func NewEpisodeEndedEvent(episodeID string, tick, ticks, burned, treesLeft int, payloadUsed float64, duration time.Duration) *EpisodeEndedEvent {
	return &EpisodeEndedEvent{
		BaseEvent:   newBase(TypeEpisodeEnded, episodeID, tick),
		Ticks:       ticks,
		Burned:      burned,
		TreesLeft:   treesLeft,
		PayloadUsed: payloadUsed,
		Duration:    duration,
	}
}

// TickCompletedEvent is published after every step
type TickCompletedEvent struct {
	BaseEvent
	Action  int
	Burning int
	Ignited int
	Reward  float64
}

func NewTickCompletedEvent(episodeID string, tick, action, burning, ignited int, reward float64) *TickCompletedEvent {
	return &TickCompletedEvent{
		BaseEvent: newBase(TypeTickCompleted, episodeID, tick),
		Action:    action,
		Burning:   burning,
		Ignited:   ignited,
		Reward:    reward,
	}
}

// DiagnosticsEvent carries the periodic throughput diagnostics
type DiagnosticsEvent struct {
	BaseEvent
	CellsEvaluated int
	Burning        int
}

func NewDiagnosticsEvent(episodeID string, tick, cellsEvaluated, burning int) *DiagnosticsEvent {
	return &DiagnosticsEvent{
		BaseEvent:      newBase(TypeDiagnostics, episodeID, tick),
		CellsEvaluated: cellsEvaluated,
		Burning:        burning,
	}
}

// DropStartedEvent is published when the aircraft opens its doors
type DropStartedEvent struct {
	BaseEvent
	Row, Col int
	Payload  float64
}

func NewDropStartedEvent(episodeID string, tick, row, col int, payload float64) *DropStartedEvent {
	return &DropStartedEvent{
		BaseEvent: newBase(TypeDropStarted, episodeID, tick),
		Row:       row,
		Col:       col,
		Payload:   payload,
	}
}

// PayloadExhaustedEvent is published on the tick the last retardant falls
type PayloadExhaustedEvent struct {
	BaseEvent
	DropTicks int
}

func NewPayloadExhaustedEvent(episodeID string, tick, dropTicks int) *PayloadExhaustedEvent {
	return &PayloadExhaustedEvent{
		BaseEvent: newBase(TypePayloadExhausted, episodeID, tick),
		DropTicks: dropTicks,
	}
}

// WindVeeredEvent is published when the wind changes direction
type WindVeeredEvent struct {
	BaseEvent
	Direction string
}

func NewWindVeeredEvent(episodeID string, tick int, direction string) *WindVeeredEvent {
	return &WindVeeredEvent{
		BaseEvent: newBase(TypeWindVeered, episodeID, tick),
		Direction: direction,
	}
}

// PhaseTransitionEvent is published when the episode changes phase
type PhaseTransitionEvent struct {
	BaseEvent
	From   string
	To     string
	Reason string
}

func NewPhaseTransitionEvent(episodeID string, tick int, from, to, reason string) *PhaseTransitionEvent {
	return &PhaseTransitionEvent{
		BaseEvent: newBase(TypePhaseTransition, episodeID, tick),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}

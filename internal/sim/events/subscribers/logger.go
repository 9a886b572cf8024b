package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/events"
)

// LoggerSubscriber logs episode events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// NewDiagnosticsLogger logs only the periodic diagnostics and episode boundaries.
// Per-tick events are too chatty for normal runs.
func NewDiagnosticsLogger(id string, logger zerolog.Logger) *LoggerSubscriber {
	ls := NewLoggerSubscriber(id, logger, zerolog.InfoLevel)
	ls.SetEventFilter([]string{
		events.TypeEpisodeStarted,
		events.TypeDiagnostics,
		events.TypeDropStarted,
		events.TypePayloadExhausted,
		events.TypeEpisodeEnded,
	})
	return ls
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("episode_id", event.EpisodeID()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.EpisodeStartedEvent:
		logEvent.
			Int64("seed", e.Seed).
			Int("grid_size", e.GridSize).
			Int("burning", e.Burning)

	case *events.EpisodeEndedEvent:
		logEvent.
			Int("ticks", e.Ticks).
			Int("burned", e.Burned).
			Int("trees_left", e.TreesLeft).
			Float64("payload_used", e.PayloadUsed).
			Dur("duration", e.Duration)

	case *events.DiagnosticsEvent:
		logEvent.
			Int("tick", e.Tick).
			Int("cells_evaluated", e.CellsEvaluated).
			Int("burning", e.Burning)

	case *events.TickCompletedEvent:
		logEvent.
			Int("tick", e.Tick).
			Int("action", e.Action).
			Int("burning", e.Burning).
			Int("ignited", e.Ignited).
			Float64("reward", e.Reward)

	case *events.DropStartedEvent:
		logEvent.
			Int("tick", e.Tick).
			Int("row", e.Row).
			Int("col", e.Col).
			Float64("payload", e.Payload)

	case *events.PayloadExhaustedEvent:
		logEvent.
			Int("tick", e.Tick).
			Int("drop_ticks", e.DropTicks)

	case *events.WindVeeredEvent:
		logEvent.
			Int("tick", e.Tick).
			Str("direction", e.Direction)

	case *events.PhaseTransitionEvent:
		logEvent.
			Str("from", e.From).
			Str("to", e.To).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Episode event")
}

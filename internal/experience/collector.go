package experience

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

// Collector steps an episode and records each transition into a Buffer.
type Collector struct {
	buffer     *Buffer
	serializer *Serializer
	logger     zerolog.Logger
}

// NewCollector creates a collector writing into buffer.
func NewCollector(buffer *Buffer, logger zerolog.Logger) *Collector {
	return &Collector{
		buffer:     buffer,
		serializer: NewSerializer(),
		logger:     logger.With().Str("component", "experience_collector").Logger(),
	}
}

// Step runs one tick of ep and stores the resulting transition.
func (c *Collector) Step(ep *sim.Episode, action core.Action, tick int) (*sim.StepResult, error) {
	grid := ep.Grid()
	if grid == nil {
		return nil, core.ErrNotReset
	}
	state := c.serializer.StateToTensor(grid, ep.Suppression(), ep.Aircraft())

	res, err := ep.Step(action, tick)
	if err != nil {
		return nil, err
	}

	exp := &Experience{
		ID:        uuid.NewString(),
		EpisodeID: ep.ID(),
		Tick:      tick,
		State:     state,
		Action:    int(action),
		Reward:    res.Reward,
		NextState: c.serializer.StateToTensor(res.Grid, ep.Suppression(), ep.Aircraft()),
		Done:      res.Done,
		CreatedAt: time.Now(),
	}
	if err := c.buffer.Add(exp); err != nil {
		c.logger.Warn().Err(err).Str("episode_id", ep.ID()).Msg("Dropping experience")
	}
	return res, nil
}

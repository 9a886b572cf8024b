package runner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/events"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/events/subscribers"
)

// Config describes a batch of independent episodes.
type Config struct {
	Params   sim.Params
	Episodes int
	Workers  int
	MaxTicks int
	BaseSeed int64
	Policy   string
}

// Result summarises one finished episode.
type Result struct {
	Index      int
	EpisodeID  string
	Seed       int64
	Policy     string
	Terminated bool
	Stats      sim.Stats
	Frames     []sim.Snapshot
}

// Runner executes episodes in parallel. Every episode owns its own state,
// random generator and policy; only the optional experience buffer is shared.
type Runner struct {
	cfg    Config
	buffer *experience.Buffer
	logger zerolog.Logger
}

// New validates cfg and creates a runner. buffer may be nil.
func New(cfg Config, buffer *experience.Buffer, logger zerolog.Logger) (*Runner, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Episodes <= 0 {
		return nil, &core.ConfigError{Field: "runner.episodes", Reason: "must be positive"}
	}
	if cfg.MaxTicks <= 0 {
		return nil, &core.ConfigError{Field: "episode.max_ticks", Reason: "must be positive"}
	}
	if _, err := NewPolicy(cfg.Policy, 0); err != nil {
		return nil, &core.ConfigError{Field: "runner.policy", Reason: err.Error()}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Runner{
		cfg:    cfg,
		buffer: buffer,
		logger: logger.With().Str("component", "runner").Logger(),
	}, nil
}

// Run executes all episodes and returns their results in index order.
// Cancelling ctx abandons running episodes between ticks.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, r.cfg.Episodes)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := 0; i < r.cfg.Episodes; i++ {
		i := i
		g.Go(func() error {
			res, err := r.runEpisode(gctx, i)
			if err != nil {
				return fmt.Errorf("episode %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info().
		Int("episodes", r.cfg.Episodes).
		Int("workers", r.cfg.Workers).
		Msg("Batch complete")
	return results, nil
}

func (r *Runner) runEpisode(ctx context.Context, index int) (Result, error) {
	seed := r.cfg.BaseSeed + int64(index)
	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewDiagnosticsLogger(fmt.Sprintf("episode-%d", index), r.logger))

	ep, err := sim.NewEpisode(r.cfg.Params, sim.WithLogger(r.logger), sim.WithEventBus(bus))
	if err != nil {
		return Result{}, err
	}
	policy, err := NewPolicy(r.cfg.Policy, PolicySeed(seed))
	if err != nil {
		return Result{}, err
	}

	var collector *experience.Collector
	if r.buffer != nil {
		collector = experience.NewCollector(r.buffer, r.logger)
	}

	ep.Reset(seed)
	for tick := 1; tick <= r.cfg.MaxTicks && !ep.Done(); tick++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		obs := Observation{
			Tick:     tick,
			Grid:     ep.Grid(),
			Aircraft: ep.Aircraft(),
			Wind:     ep.Wind(),
		}
		action := policy.Act(obs)
		if collector != nil {
			_, err = collector.Step(ep, action, tick)
		} else {
			_, err = ep.Step(action, tick)
		}
		if err != nil {
			return Result{}, err
		}
	}

	if !ep.Done() {
		r.logger.Warn().
			Str("episode_id", ep.ID()).
			Int("max_ticks", r.cfg.MaxTicks).
			Msg("Episode hit tick limit while still burning")
	}

	return Result{
		Index:      index,
		EpisodeID:  ep.ID(),
		Seed:       seed,
		Policy:     policy.Name(),
		Terminated: ep.Done(),
		Stats:      ep.Stats(),
		Frames:     ep.Frames(),
	}, nil
}

// Summary aggregates a batch.
type Summary struct {
	Episodes           int
	Terminated         int
	MeanTicks          float64
	MeanBurnedFraction float64
	MeanPayloadUsed    float64
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	s := Summary{Episodes: len(results)}
	if len(results) == 0 {
		return s
	}
	for _, r := range results {
		if r.Terminated {
			s.Terminated++
		}
		s.MeanTicks += float64(r.Stats.Ticks)
		s.MeanBurnedFraction += r.Stats.BurnedFraction()
		s.MeanPayloadUsed += r.Stats.PayloadUsed
	}
	n := float64(len(results))
	s.MeanTicks /= n
	s.MeanBurnedFraction /= n
	s.MeanPayloadUsed /= n
	return s
}

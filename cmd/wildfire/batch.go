package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/runner"
)

func newBatchCmd() *cobra.Command {
	var (
		episodes   int
		workers    int
		policyName string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run independent episodes in parallel and report aggregate stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *config.Get()
			if episodes > 0 {
				cfg.Runner.Episodes = episodes
			}
			if workers > 0 {
				cfg.Runner.Workers = workers
			}
			if policyName != "" {
				cfg.Runner.Policy = policyName
			}

			var buffer *experience.Buffer
			if cfg.Runner.BufferCapacity > 0 {
				buffer = experience.NewBuffer(cfg.Runner.BufferCapacity, log.Logger)
				defer buffer.Close()
			}

			results, err := runBatch(cmd.Context(), &cfg, buffer, log.Logger)
			if err != nil {
				return err
			}
			summary := runner.Summarize(results)
			fmt.Fprintf(cmd.OutOrStdout(), "episodes=%d terminated=%d mean_ticks=%.1f mean_burned=%.1f%% mean_payload_used=%.1f\n",
				summary.Episodes, summary.Terminated, summary.MeanTicks, 100*summary.MeanBurnedFraction, summary.MeanPayloadUsed)
			if buffer != nil {
				added, dropped := buffer.Stats()
				fmt.Fprintf(cmd.OutOrStdout(), "transitions added=%d dropped=%d buffered=%d\n", added, dropped, buffer.Size())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&episodes, "episodes", 0, "Number of episodes (defaults to runner.episodes)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers (defaults to runner.workers)")
	cmd.Flags().StringVar(&policyName, "policy", "", "Policy: random or seeker (defaults to runner.policy)")
	return cmd
}

// runBatch runs one batch described by cfg.
func runBatch(ctx context.Context, cfg *config.Config, buffer *experience.Buffer, logger zerolog.Logger) ([]runner.Result, error) {
	params, err := cfg.EpisodeParams()
	if err != nil {
		return nil, err
	}

	r, err := runner.New(runner.Config{
		Params:   params,
		Episodes: cfg.Runner.Episodes,
		Workers:  cfg.Runner.Workers,
		MaxTicks: cfg.Episode.MaxTicks,
		BaseSeed: cfg.Sim.Seed,
		Policy:   cfg.Runner.Policy,
	}, buffer, logger)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/runner"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/events"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/events/subscribers"
)

func newRunCmd() *cobra.Command {
	var (
		seed       int64
		policyName string
		color      bool
		everyFrame bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single episode and print the final grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Sim.Seed
			}
			if policyName == "" {
				policyName = cfg.Runner.Policy
			}

			params, err := cfg.EpisodeParams()
			if err != nil {
				return err
			}
			policy, err := runner.NewPolicy(policyName, runner.PolicySeed(seed))
			if err != nil {
				return err
			}

			bus := events.NewEventBus()
			bus.Subscribe(subscribers.NewDiagnosticsLogger("run", log.Logger))
			ep, err := sim.NewEpisode(params, sim.WithLogger(log.Logger), sim.WithEventBus(bus))
			if err != nil {
				return err
			}

			ep.Reset(seed)
			out := cmd.OutOrStdout()
			for tick := 1; tick <= cfg.Episode.MaxTicks && !ep.Done(); tick++ {
				action := policy.Act(runner.Observation{
					Tick:     tick,
					Grid:     ep.Grid(),
					Aircraft: ep.Aircraft(),
					Wind:     ep.Wind(),
				})
				res, err := ep.Step(action, tick)
				if err != nil {
					return err
				}
				if everyFrame {
					fmt.Fprintf(out, "tick %d action %s reward %.2f\n%s\n", tick, action, res.Reward, res.Snapshot.Render(color))
				}
			}

			snap, err := ep.Snapshot()
			if err != nil {
				return err
			}
			stats := ep.Stats()
			if !everyFrame {
				fmt.Fprintln(out, snap.Render(color))
			}
			fmt.Fprintf(out, "ticks=%d burned=%.1f%% peak_burning=%d payload_used=%.1f terminated=%t\n",
				stats.Ticks, 100*stats.BurnedFraction(), stats.PeakBurning, stats.PayloadUsed, ep.Done())
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Episode seed (defaults to sim.seed)")
	cmd.Flags().StringVar(&policyName, "policy", "", "Policy: random or seeker (defaults to runner.policy)")
	cmd.Flags().BoolVar(&color, "color", false, "Render with ANSI colors")
	cmd.Flags().BoolVar(&everyFrame, "frames", false, "Print every tick instead of only the final grid")
	return cmd
}

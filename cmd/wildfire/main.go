package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/config"
)

var (
	configPath string
	logLevel   string
)

func main() {
	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wildfire",
		Short:         "Wildfire spread simulation with a retardant-dropping aircraft",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(configPath); err != nil {
				return err
			}
			if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
				return err
			}
			level := logLevel
			if level == "" {
				level = config.Get().Logging.Level
			}
			setupLogging(level, config.Get().Logging.Format)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")

	rootCmd.AddCommand(
		newRunCmd(),
		newBatchCmd(),
		newServeCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

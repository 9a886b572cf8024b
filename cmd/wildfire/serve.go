package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/monitoring"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/runner"
)

// runnerServiceName is the health service reported for the batch loop.
const runnerServiceName = "wildfire.Runner"

func newServeCmd() *cobra.Command {
	var (
		port     int
		host     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run batches continuously behind a gRPC health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if port <= 0 {
				port = cfg.Server.Port
			}
			if host == "" {
				host = cfg.Server.Host
			}
			return serve(cmd.Context(), host, port, interval)
		},
	}

	cmd.Flags().IntVar(&port, "port", -1, "The server port (-1 to use config default)")
	cmd.Flags().StringVar(&host, "host", "", "The server host (empty to use config default)")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Pause between batches")
	return cmd
}

func serve(ctx context.Context, host string, port int, interval time.Duration) error {
	cfg := config.Get()

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		loggingInterceptor,
		recoveryInterceptor,
	))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(runnerServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if cfg.Server.EnableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	// Batches pick up edits to the config file from the next iteration on.
	var mu sync.Mutex
	current := *cfg
	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(next *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			mu.Lock()
			current = *next
			mu.Unlock()
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		})
	}

	buffer := experience.NewBuffer(max(cfg.Runner.BufferCapacity, 1), log.Logger)
	defer buffer.Close()

	monitor := monitoring.NewMonitor(30*time.Second, log.Logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		monitor.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(runnerServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		time.Sleep(time.Duration(cfg.Server.GracefulShutdownDelay) * time.Second)
		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		return nil
	})

	g.Go(func() error {
		for batch := 1; ; batch++ {
			mu.Lock()
			batchCfg := current
			mu.Unlock()

			summary, err := serveBatch(gctx, &batchCfg, buffer, monitor)
			switch {
			case errors.Is(err, context.Canceled):
				return nil
			case err != nil:
				healthServer.SetServingStatus(runnerServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
				return err
			}

			log.Info().
				Int("batch", batch).
				Int("episodes", summary.Episodes).
				Int("terminated", summary.Terminated).
				Float64("mean_ticks", summary.MeanTicks).
				Float64("mean_burned_fraction", summary.MeanBurnedFraction).
				Msg("Batch finished")

			select {
			case <-gctx.Done():
				return nil
			case <-time.After(interval):
			}
		}
	})

	err = g.Wait()
	log.Info().Msg("Server shutdown complete")
	return err
}

// serveBatch runs one batch, feeds the monitor and drains every transition the
// batch buffered, leaving the buffer empty for the next batch.
func serveBatch(ctx context.Context, cfg *config.Config, buffer *experience.Buffer, monitor *monitoring.Monitor) (runner.Summary, error) {
	results, err := runBatch(ctx, cfg, buffer, log.Logger)
	if err != nil {
		return runner.Summary{}, err
	}

	ticks := 0
	fractions := make([]float64, len(results))
	for i, res := range results {
		ticks += res.Stats.Ticks
		fractions[i] = res.Stats.BurnedFraction()
	}
	monitor.RecordBatch(ticks, fractions)

	if buffer != nil {
		drained := buffer.Get(buffer.Size())
		rewardSum := 0.0
		for _, exp := range drained {
			rewardSum += exp.Reward
		}
		monitor.RecordTransitions(len(drained), rewardSum)

		if _, dropped := buffer.Stats(); dropped > 0 {
			log.Warn().Int64("dropped", dropped).Msg("Transition buffer overflowed, raise runner.buffer_capacity")
		}
	}

	return runner.Summarize(results), nil
}

// loggingInterceptor logs all unary RPC calls
func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			code = st.Code()
		}
	}

	log.Debug().
		Str("method", info.FullMethod).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gRPC call")

	return resp, err
}

// recoveryInterceptor catches panics and returns proper gRPC errors
func recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("method", info.FullMethod).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

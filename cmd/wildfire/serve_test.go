package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/monitoring"
)

func loadSmallConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallConfig), 0644))
	require.NoError(t, config.Init(path))
	c := *config.Get()
	return &c
}

func TestServeBatch_DrainsBuffer(t *testing.T) {
	cfg := loadSmallConfig(t)
	buffer := experience.NewBuffer(cfg.Runner.BufferCapacity, zerolog.Nop())
	monitor := monitoring.NewMonitor(time.Hour, zerolog.Nop())

	for batch := 1; batch <= 2; batch++ {
		summary, err := serveBatch(context.Background(), cfg, buffer, monitor)
		require.NoError(t, err)
		assert.Equal(t, cfg.Runner.Episodes, summary.Episodes)
		assert.Zero(t, buffer.Size(), "buffer must be empty after batch %d", batch)
	}

	added, dropped := buffer.Stats()
	metrics := monitor.Metrics()
	assert.Equal(t, 2, metrics.Batches)
	assert.Equal(t, metrics.Ticks, metrics.Transitions)
	assert.Equal(t, int64(metrics.Transitions), added)
	assert.Zero(t, dropped)
}

func TestServeBatch_WithoutBuffer(t *testing.T) {
	cfg := loadSmallConfig(t)
	monitor := monitoring.NewMonitor(time.Hour, zerolog.Nop())

	summary, err := serveBatch(context.Background(), cfg, nil, monitor)
	require.NoError(t, err)
	assert.Equal(t, cfg.Runner.Episodes, summary.Episodes)
	assert.Zero(t, monitor.Metrics().Transitions)
}

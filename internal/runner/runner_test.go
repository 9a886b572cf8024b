package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/testutil"
)

func smallConfig() Config {
	params := sim.DefaultParams()
	params.GridSize = 15
	params.DiagnosticsInterval = 0
	return Config{
		Params:   params,
		Episodes: 6,
		Workers:  3,
		MaxTicks: 500,
		BaseSeed: 100,
		Policy:   PolicyRandom,
	}
}

func TestNew_Validation(t *testing.T) {
	logger := testutil.NopLogger()

	cfg := smallConfig()
	cfg.Episodes = 0
	_, err := New(cfg, nil, logger)
	assert.True(t, errors.Is(err, core.ErrInvalidConfig))

	cfg = smallConfig()
	cfg.MaxTicks = 0
	_, err = New(cfg, nil, logger)
	assert.True(t, errors.Is(err, core.ErrInvalidConfig))

	cfg = smallConfig()
	cfg.Policy = "nope"
	_, err = New(cfg, nil, logger)
	assert.True(t, errors.Is(err, core.ErrInvalidConfig))

	cfg = smallConfig()
	cfg.Params.GridSize = 0
	_, err = New(cfg, nil, logger)
	assert.True(t, errors.Is(err, core.ErrInvalidConfig))
}

func TestRun_IndependentSeededEpisodes(t *testing.T) {
	cfg := smallConfig()
	r, err := New(cfg, nil, testutil.NopLogger())
	require.NoError(t, err)

	results, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, cfg.Episodes)

	ids := make(map[string]bool)
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, cfg.BaseSeed+int64(i), res.Seed)
		assert.Equal(t, PolicyRandom, res.Policy)
		assert.True(t, res.Terminated)
		assert.Greater(t, res.Stats.Ticks, 0)
		assert.Len(t, res.Frames, res.Stats.Ticks+1)
		ids[res.EpisodeID] = true
	}
	assert.Len(t, ids, cfg.Episodes)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 1
	seq, err := New(cfg, nil, testutil.NopLogger())
	require.NoError(t, err)
	seqResults, err := seq.Run(context.Background())
	require.NoError(t, err)

	cfg.Workers = 6
	par, err := New(cfg, nil, testutil.NopLogger())
	require.NoError(t, err)
	parResults, err := par.Run(context.Background())
	require.NoError(t, err)

	for i := range seqResults {
		assert.Equal(t, seqResults[i].Stats, parResults[i].Stats, "episode %d", i)
	}
}

func TestRun_TickCap(t *testing.T) {
	cfg := smallConfig()
	cfg.Episodes = 1
	cfg.MaxTicks = 1
	cfg.Params.Fire.BurnDuration = 50

	r, err := New(cfg, nil, testutil.NopLogger())
	require.NoError(t, err)
	results, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, results[0].Terminated)
	assert.Equal(t, 1, results[0].Stats.Ticks)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := New(smallConfig(), nil, testutil.NopLogger())
	require.NoError(t, err)
	_, err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_FillsSharedBuffer(t *testing.T) {
	cfg := smallConfig()
	cfg.Policy = PolicySeeker
	buffer := experience.NewBuffer(100000, testutil.NopLogger())

	r, err := New(cfg, buffer, testutil.NopLogger())
	require.NoError(t, err)
	results, err := r.Run(context.Background())
	require.NoError(t, err)

	total := 0
	for _, res := range results {
		total += res.Stats.Ticks
	}
	assert.Equal(t, total, buffer.Size())

	done := 0
	for _, exp := range buffer.Get(buffer.Size()) {
		if exp.Done {
			done++
		}
	}
	assert.Equal(t, cfg.Episodes, done)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	results := []Result{
		{Terminated: true, Stats: sim.Stats{Ticks: 10, InitialTrees: 10, TreesRemaining: 5, PayloadUsed: 20}},
		{Terminated: false, Stats: sim.Stats{Ticks: 30, InitialTrees: 10, TreesRemaining: 10}},
	}
	s := Summarize(results)
	assert.Equal(t, 2, s.Episodes)
	assert.Equal(t, 1, s.Terminated)
	assert.InDelta(t, 20.0, s.MeanTicks, 1e-9)
	assert.InDelta(t, 0.25, s.MeanBurnedFraction, 1e-9)
	assert.InDelta(t, 10.0, s.MeanPayloadUsed, 1e-9)
}

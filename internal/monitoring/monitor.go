package monitoring

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Monitor tracks throughput of the long-running batch loop together with the
// process goroutine count.
type Monitor struct {
	mu             sync.RWMutex
	started        time.Time
	batches        int
	episodes       int
	ticks          int
	burned         float64 // sum of burned fractions
	transitions    int
	rewardSum      float64
	baseline       int
	peakGoroutines int
	alertThreshold int
	interval       time.Duration
	logger         zerolog.Logger
}

// Metrics is a point-in-time copy of the monitor state.
type Metrics struct {
	Uptime             time.Duration `json:"uptime"`
	Batches            int           `json:"batches"`
	Episodes           int           `json:"episodes"`
	Ticks              int           `json:"ticks"`
	MeanBurnedFraction float64       `json:"mean_burned_fraction"`
	Transitions        int           `json:"transitions"`
	MeanReward         float64       `json:"mean_reward"`
	TicksPerSecond     float64       `json:"ticks_per_second"`
	Goroutines         int           `json:"goroutines"`
	PeakGoroutines     int           `json:"peak_goroutines"`
}

// NewMonitor creates a monitor that logs every interval once Run is called.
func NewMonitor(interval time.Duration, logger zerolog.Logger) *Monitor {
	baseline := runtime.NumGoroutine()
	return &Monitor{
		started:        time.Now(),
		baseline:       baseline,
		peakGoroutines: baseline,
		alertThreshold: 1000,
		interval:       interval,
		logger:         logger.With().Str("component", "monitor").Logger(),
	}
}

// RecordBatch adds one finished batch. burnedFractions holds one entry per episode.
func (m *Monitor) RecordBatch(ticks int, burnedFractions []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches++
	m.episodes += len(burnedFractions)
	m.ticks += ticks
	for _, f := range burnedFractions {
		m.burned += f
	}
}

// RecordTransitions adds n consumed transitions whose rewards sum to rewardSum.
func (m *Monitor) RecordTransitions(n int, rewardSum float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions += n
	m.rewardSum += rewardSum
}

// Run logs metrics until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.check()
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) check() {
	metrics := m.Metrics()

	m.logger.Info().
		Int("batches", metrics.Batches).
		Int("episodes", metrics.Episodes).
		Float64("ticks_per_second", metrics.TicksPerSecond).
		Float64("mean_burned_fraction", metrics.MeanBurnedFraction).
		Int("transitions", metrics.Transitions).
		Float64("mean_reward", metrics.MeanReward).
		Int("goroutines", metrics.Goroutines).
		Int("peak_goroutines", metrics.PeakGoroutines).
		Msg("Runner metrics")

	if metrics.Goroutines > m.alertThreshold {
		m.logger.Warn().
			Int("current", metrics.Goroutines).
			Int("baseline", m.baseline).
			Int("threshold", m.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
}

// Metrics returns current metrics and updates the goroutine peak.
func (m *Monitor) Metrics() Metrics {
	current := runtime.NumGoroutine()

	m.mu.Lock()
	defer m.mu.Unlock()
	if current > m.peakGoroutines {
		m.peakGoroutines = current
	}

	uptime := time.Since(m.started)
	out := Metrics{
		Uptime:         uptime,
		Batches:        m.batches,
		Episodes:       m.episodes,
		Ticks:          m.ticks,
		Transitions:    m.transitions,
		Goroutines:     current,
		PeakGoroutines: m.peakGoroutines,
	}
	if m.episodes > 0 {
		out.MeanBurnedFraction = m.burned / float64(m.episodes)
	}
	if m.transitions > 0 {
		out.MeanReward = m.rewardSum / float64(m.transitions)
	}
	if secs := uptime.Seconds(); secs > 0 {
		out.TicksPerSecond = float64(m.ticks) / secs
	}
	return out
}

package sim

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram tracks run latency distribution with percentile support
type Histogram struct {
	samples []float64 // Latencies in microseconds
	mu sync.Mutex
	maxSize int // Maximum samples to retain
	sorted bool
}

// NewHistogram creates a new histogram with a max sample size
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 10000 // Default: keep last 10k samples
	}
	return &Histogram{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
		sorted: true,
	}
}

// Record adds a latency sample (in microseconds)
func (h *Histogram) Record(latencyUs float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// If at capacity, drop the oldest sample
	if len(h.samples) >= h.maxSize {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}

	h.samples = append(h.samples, latencyUs)
	h.sorted = false
}

// Percentile calculates the given percentile (0-100)
func (h *Histogram) Percentile(p float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.percentileLocked(p)
}

func (h *Histogram) percentileLocked(p float64) float64 {
	if len(h.samples) == 0 {
		return 0
	}

	if !h.sorted {
		sort.Float64s(h.samples)
		h.sorted = true
	}

	rank := (p / 100.0) * float64(len(h.samples)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return h.samples[lower]
	}

	// Linear interpolation between lower and upper
	weight := rank - float64(lower)
	return h.samples[lower]*(1-weight) + h.samples[upper]*weight
}

// Count returns the number of samples
func (h *Histogram) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.samples)
}

// Reset clears all samples
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
	h.sorted = true
}

// HistogramSnapshot holds current percentile statistics
type HistogramSnapshot struct {
	Count int
	Min float64
	Max float64
	Mean float64
	P50 float64 // Median
	P95 float64
	P99 float64
}

// Snapshot captures current histogram statistics in one pass
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap := HistogramSnapshot{Count: len(h.samples)}
	if snap.Count == 0 {
		return snap
	}

	sum := 0.0
	snap.Min = h.samples[0]
	snap.Max = h.samples[0]
	for _, v := range h.samples {
		sum += v
		if v < snap.Min {
			snap.Min = v
		}
		if v > snap.Max {
			snap.Max = v
		}
	}
	snap.Mean = sum / float64(snap.Count)
	snap.P50 = h.percentileLocked(50)
	snap.P95 = h.percentileLocked(95)
	snap.P99 = h.percentileLocked(99)
	return snap
}

// Metrics tracks simulator performance metrics
type Metrics struct {
	// Run Metrics
	runsCompleted atomic.Uint64
	batchRuns atomic.Uint64

	// Reference Metrics (aggregated over completed runs)
	pageFaults atomic.Uint64
	pageHits atomic.Uint64
	pageEvictions atomic.Uint64

	// Latency Histogram (microseconds)
	runLatency *Histogram

	startTime time.Time
	mu sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
		runLatency: NewHistogram(10000),
	}
}

// RecordRun accumulates the counters of one finished policy run
func (m *Metrics) RecordRun(result *RunResult, duration time.Duration) {
	m.runsCompleted.Add(1)
	m.pageFaults.Add(uint64(result.Faults))
	m.pageHits.Add(uint64(result.Hits()))
	m.pageEvictions.Add(uint64(result.Evictions()))
	m.runLatency.Record(float64(duration.Microseconds()))
}

// RecordBatch counts one all-policy batch
func (m *Metrics) RecordBatch() {
	m.batchRuns.Add(1)
}

// Getters

func (m *Metrics) GetRunsCompleted() uint64 {
	return m.runsCompleted.Load()
}

func (m *Metrics) GetBatchRuns() uint64 {
	return m.batchRuns.Load()
}

func (m *Metrics) GetPageFaults() uint64 {
	return m.pageFaults.Load()
}

func (m *Metrics) GetPageHits() uint64 {
	return m.pageHits.Load()
}

func (m *Metrics) GetPageEvictions() uint64 {
	return m.pageEvictions.Load()
}

// GetFaultRate returns the fraction of references that faulted
func (m *Metrics) GetFaultRate() float64 {
	faults := m.pageFaults.Load()
	total := faults + m.pageHits.Load()
	if total == 0 {
		return 0.0
	}
	return float64(faults) / float64(total)
}

// GetRunLatency returns a snapshot of the run latency distribution
func (m *Metrics) GetRunLatency() HistogramSnapshot {
	return m.runLatency.Snapshot()
}

func (m *Metrics) GetUptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Since(m.startTime)
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	latency := m.GetRunLatency()

	logger.Info("Simulator Metrics",
		slog.Group("runs",
			slog.Uint64("completed", m.GetRunsCompleted()),
			slog.Uint64("batches", m.GetBatchRuns()),
		),
		slog.Group("references",
			slog.Uint64("faults", m.GetPageFaults()),
			slog.Uint64("hits", m.GetPageHits()),
			slog.Uint64("evictions", m.GetPageEvictions()),
			slog.Float64("fault_rate", m.GetFaultRate()),
		),
		slog.Group("latency_us",
			slog.Int("count", latency.Count),
			slog.Float64("mean", latency.Mean),
			slog.Float64("p50", latency.P50),
			slog.Float64("p95", latency.P95),
			slog.Float64("p99", latency.P99),
		),
		slog.Duration("uptime", m.GetUptime()),
	)
}

// Reset resets all metrics (useful for testing)
func (m *Metrics) Reset() {
	m.runsCompleted.Store(0)
	m.batchRuns.Store(0)
	m.pageFaults.Store(0)
	m.pageHits.Store(0)
	m.pageEvictions.Store(0)
	m.runLatency.Reset()

	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}

package sim

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestMetricsCreation(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("Metrics should not be nil")
	}

	// All counters should start at 0
	if m.GetRunsCompleted() != 0 {
		t.Errorf("Expected 0 runs, got %d", m.GetRunsCompleted())
	}

	if m.GetPageFaults() != 0 {
		t.Errorf("Expected 0 faults, got %d", m.GetPageFaults())
	}
}

func TestMetricsRecordRun(t *testing.T) {
	m := NewMetrics()

	result, err := RunFIFO([]int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("RunFIFO failed: %v", err)
	}

	m.RecordRun(result, 25*time.Microsecond)

	if m.GetRunsCompleted() != 1 {
		t.Errorf("Expected 1 run, got %d", m.GetRunsCompleted())
	}
	if m.GetPageFaults() != 9 {
		t.Errorf("Expected 9 faults, got %d", m.GetPageFaults())
	}
	if m.GetPageHits() != 3 {
		t.Errorf("Expected 3 hits, got %d", m.GetPageHits())
	}
	// 3 faults filled free frames; the other 6 displaced a page
	if m.GetPageEvictions() != 6 {
		t.Errorf("Expected 6 evictions, got %d", m.GetPageEvictions())
	}

	latency := m.GetRunLatency()
	if latency.Count != 1 {
		t.Errorf("Expected 1 latency sample, got %d", latency.Count)
	}
}

func TestMetricsFaultRate(t *testing.T) {
	m := NewMetrics()

	result, err := RunFIFO([]int{1, 1, 1, 1}, 2)
	if err != nil {
		t.Fatalf("RunFIFO failed: %v", err)
	}
	m.RecordRun(result, time.Microsecond)

	// 1 fault out of 4 references
	if rate := m.GetFaultRate(); rate != 0.25 {
		t.Errorf("Expected fault rate 0.25, got %f", rate)
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()

	result, err := RunLRU([]int{1, 2, 3}, 2)
	if err != nil {
		t.Fatalf("RunLRU failed: %v", err)
	}
	m.RecordRun(result, time.Microsecond)
	m.RecordBatch()

	m.Reset()

	if m.GetRunsCompleted() != 0 || m.GetBatchRuns() != 0 || m.GetPageFaults() != 0 {
		t.Error("Expected all counters to be 0 after reset")
	}
	if m.GetRunLatency().Count != 0 {
		t.Error("Expected empty latency histogram after reset")
	}
}

func TestHistogramPercentiles(t *testing.T) {
	h := NewHistogram(100)

	for i := 1; i <= 100; i++ {
		h.Record(float64(i))
	}

	if p50 := h.Percentile(50); p50 < 50 || p50 > 51 {
		t.Errorf("Expected P50 near 50.5, got %f", p50)
	}
	if p99 := h.Percentile(99); p99 < 99 || p99 > 100 {
		t.Errorf("Expected P99 near 99, got %f", p99)
	}

	snap := h.Snapshot()
	if snap.Count != 100 {
		t.Errorf("Expected 100 samples, got %d", snap.Count)
	}
	if snap.Min != 1 || snap.Max != 100 {
		t.Errorf("Expected min 1 and max 100, got %f and %f", snap.Min, snap.Max)
	}
	if snap.Mean != 50.5 {
		t.Errorf("Expected mean 50.5, got %f", snap.Mean)
	}
}

func TestHistogramBoundedSize(t *testing.T) {
	h := NewHistogram(10)

	for i := 0; i < 25; i++ {
		h.Record(float64(i))
	}

	if h.Count() != 10 {
		t.Errorf("Expected 10 retained samples, got %d", h.Count())
	}

	// Oldest samples were dropped
	snap := h.Snapshot()
	if snap.Min != 15 {
		t.Errorf("Expected min 15 after overflow, got %f", snap.Min)
	}
}

func TestLogMetrics(t *testing.T) {
	m := NewMetrics()

	result, err := RunClock([]int{1, 2, 3, 1}, 2)
	if err != nil {
		t.Fatalf("RunClock failed: %v", err)
	}
	m.RecordRun(result, 10*time.Microsecond)

	// Should not panic with a real logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	m.LogMetrics(logger)
}

package sim

import (
	"log/slog"
	"sync"
	"time"
)

// Simulator orchestrates policy runs with configuration, metrics and
// structured logging. The policy functions themselves stay pure; the
// Simulator is the stateful shell callers talk to
type Simulator struct {
	config *Config
	metrics *Metrics
	logger *slog.Logger
}

// NewSimulator creates a simulator from the given configuration
// A nil config uses defaults; a nil logger uses slog.Default()
func NewSimulator(config *Config, logger *slog.Logger) (*Simulator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Simulator{
		config: config.Clone(),
		metrics: NewMetrics(),
		logger: logger,
	}, nil
}

// Metrics returns the simulator's metrics tracker
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Config returns a copy of the simulator's configuration
func (s *Simulator) Config() *Config {
	return s.config.Clone()
}

// Run executes one policy by name on the given input
func (s *Simulator) Run(policy string, sequence []int, capacity int) (*RunResult, error) {
	start := time.Now()

	result, err := Run(policy, sequence, capacity)
	if err != nil {
		s.logger.Warn("simulation rejected",
			slog.String("policy", policy),
			slog.Int("capacity", capacity),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if s.config.EnableMetrics {
		s.metrics.RecordRun(result, time.Since(start))
	}

	s.logger.Debug("simulation complete",
		slog.String("policy", policy),
		slog.Int("references", len(sequence)),
		slog.Int("capacity", capacity),
		slog.Int("faults", result.Faults),
	)

	return result, nil
}

// RunDefault executes the configured default policy with the configured
// frame capacity
func (s *Simulator) RunDefault(sequence []int) (*RunResult, error) {
	return s.Run(s.config.DefaultPolicy, sequence, s.config.FrameCapacity)
}

// RunAll executes every registered policy on the same input
// With ParallelRunAll set, runs execute concurrently; each run owns its
// frame set, so no state is shared beyond the read-only registry
func (s *Simulator) RunAll(sequence []int, capacity int) (map[string]*RunResult, error) {
	if s.config.EnableMetrics {
		s.metrics.RecordBatch()
	}

	if !s.config.ParallelRunAll {
		results := make(map[string]*RunResult, len(registry))
		for _, name := range Policies() {
			result, err := s.Run(name, sequence, capacity)
			if err != nil {
				return nil, err
			}
			results[name] = result
		}
		return results, nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make(map[string]*RunResult, len(registry))
	var firstErr error

	for _, name := range Policies() {
		wg.Add(1)
		go func(policy string) {
			defer wg.Done()
			result, err := s.Run(policy, sequence, capacity)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[policy] = result
		}(name)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// EncodeTrace serializes a result using the configured trace compression
func (s *Simulator) EncodeTrace(result *RunResult) ([]byte, error) {
	compression, err := CompressionTypeFromName(s.config.TraceCompression)
	if err != nil {
		return nil, err
	}
	return EncodeTrace(result, compression)
}

// PolicySummary is one row of a comparative batch report
type PolicySummary struct {
	Policy string `json:"policy"`
	Faults int `json:"faults"`
	Hits int `json:"hits"`
	Evictions int `json:"evictions"`
}

// Summarize flattens a RunAll result into rows ordered by policy
// registration, ready for comparative display
func Summarize(results map[string]*RunResult) []PolicySummary {
	summaries := make([]PolicySummary, 0, len(results))
	for _, name := range Policies() {
		result, ok := results[name]
		if !ok {
			continue
		}
		summaries = append(summaries, PolicySummary{
			Policy: name,
			Faults: result.Faults,
			Hits: result.Hits(),
			Evictions: result.Evictions(),
		})
	}
	return summaries
}

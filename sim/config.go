package sim

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Frame capacity range accepted by the deployment (the engine itself only
// requires capacity >= 1; the upper bound is a front-end constraint)
const (
	MinFrameCapacity = 1
	MaxFrameCapacity = 10
)

// Config holds simulator configuration
type Config struct {
	// Simulation Configuration
	DefaultPolicy string `json:"default_policy" env:"FRAMESIM_DEFAULT_POLICY"` // Policy used when none is selected
	FrameCapacity int `json:"frame_capacity" env:"FRAMESIM_FRAME_CAPACITY"` // Number of physical frames
	ParallelRunAll bool `json:"parallel_run_all" env:"FRAMESIM_PARALLEL_RUN_ALL"` // Run the all-policy batch concurrently

	// Trace Configuration
	TraceCompression string `json:"trace_compression" env:"FRAMESIM_TRACE_COMPRESSION"` // Trace codec compression (none, lz4, snappy)

	// Performance Configuration
	EnableMetrics bool `json:"enable_metrics" env:"FRAMESIM_ENABLE_METRICS"` // Whether to collect performance metrics
	LogLevel string `json:"log_level" env:"FRAMESIM_LOG_LEVEL"` // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultPolicy: PolicyFIFO,
		FrameCapacity: 3,
		ParallelRunAll: false,
		TraceCompression: "none",
		EnableMetrics: true,
		LogLevel: "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Unset variables fall back to default values
func LoadConfigFromEnv() (*Config, error) {
	config := DefaultConfig()

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, ok := Lookup(c.DefaultPolicy); !ok {
		return fmt.Errorf("unknown default policy: %s", c.DefaultPolicy)
	}

	if c.FrameCapacity < MinFrameCapacity || c.FrameCapacity > MaxFrameCapacity {
		return fmt.Errorf("frame capacity must be between %d and %d, got %d", MinFrameCapacity, MaxFrameCapacity, c.FrameCapacity)
	}

	switch c.TraceCompression {
	case "none", "lz4", "snappy":
	default:
		return fmt.Errorf("invalid trace compression: %s (must be none, lz4, or snappy)", c.TraceCompression)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info": true,
		"warn": true,
		"error": true,
	}

	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

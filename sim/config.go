package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MinMemorySize is the smallest memory a run accepts; generated processes
// need at least 100 units and may take up to a quarter of memory.
const MinMemorySize = 400

// Config groups the five run parameters plus the RNG seed.
// All values are in abstract capacity units or ticks.
type Config struct {
	MemorySize         int64 `yaml:"memory_size"`          // memory capacity (>= 400)
	MaxCPUTime         int64 `yaml:"max_cpu_time"`         // Round-Robin quantum (>= 1)
	AvgIOTime          int64 `yaml:"avg_io_time"`          // mean I/O service time
	SimulationLength   int64 `yaml:"simulation_length"`    // horizon (>= 1)
	AvgArrivalInterval int64 `yaml:"avg_arrival_interval"` // mean time between arrivals
	Seed               int64 `yaml:"seed"`                 // RNG master seed
}

// DefaultConfig returns the parameters used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		MemorySize:         2048,
		MaxCPUTime:         500,
		AvgIOTime:          225,
		SimulationLength:   250000,
		AvgArrivalInterval: 5000,
		Seed:               42,
	}
}

// Validate checks parameter ranges.
func (c Config) Validate() error {
	var errs []error
	if c.MemorySize < MinMemorySize {
		errs = append(errs, fmt.Errorf("memory size must be at least %d, got %d", MinMemorySize, c.MemorySize))
	}
	if c.MaxCPUTime < 1 {
		errs = append(errs, fmt.Errorf("max cpu time must be at least 1, got %d", c.MaxCPUTime))
	}
	if c.AvgIOTime < 0 {
		errs = append(errs, fmt.Errorf("average I/O time must be non-negative, got %d", c.AvgIOTime))
	}
	if c.SimulationLength < 1 {
		errs = append(errs, fmt.Errorf("simulation length must be at least 1, got %d", c.SimulationLength))
	}
	if c.AvgArrivalInterval < 0 {
		errs = append(errs, fmt.Errorf("average arrival interval must be non-negative, got %d", c.AvgArrivalInterval))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML file on top of base. Keys absent from the file keep
// their base values; unknown keys are rejected.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config: %w", err)
	}
	cfg := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	sim "github.com/inference-sim/procsim/sim"
)

// Flag names for the simulation parameters.
const (
	flagMemorySize         = "memory-size"
	flagMaxCPUTime         = "max-cpu-time"
	flagAvgIOTime          = "avg-io-time"
	flagSimulationLength   = "simulation-length"
	flagAvgArrivalInterval = "avg-arrival-interval"
	flagSeed               = "seed"
)

// registerConfigFlags defines one flag per simulation parameter on fs.
// Defaults mirror sim.DefaultConfig so --help shows the effective values.
func registerConfigFlags(fs *pflag.FlagSet) {
	def := sim.DefaultConfig()
	fs.Int64(flagMemorySize, def.MemorySize, "Memory size in capacity units (at least 400)")
	fs.Int64(flagMaxCPUTime, def.MaxCPUTime, "Maximum uninterrupted CPU time for a process (Round-Robin quantum, in ticks)")
	fs.Int64(flagAvgIOTime, def.AvgIOTime, "Average I/O operation time (in ticks)")
	fs.Int64(flagSimulationLength, def.SimulationLength, "Simulation length (in ticks, at least 1)")
	fs.Int64(flagAvgArrivalInterval, def.AvgArrivalInterval, "Average time between process arrivals (in ticks)")
	fs.Int64(flagSeed, def.Seed, "Seed for the random number generators")
}

// envPrefix prefixes the dotenv keys that set simulation parameters, e.g.
// PROCSIM_MEMORY_SIZE=4096.
const envPrefix = "PROCSIM_"

// applyEnvFile loads a dotenv file and copies the PROCSIM_* keys it sets onto cfg.
// Other keys are ignored.
func applyEnvFile(path string, cfg sim.Config) (sim.Config, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return cfg, fmt.Errorf("reading env file: %w", err)
	}
	targets := []struct {
		key string
		dst *int64
	}{
		{"MEMORY_SIZE", &cfg.MemorySize},
		{"MAX_CPU_TIME", &cfg.MaxCPUTime},
		{"AVG_IO_TIME", &cfg.AvgIOTime},
		{"SIMULATION_LENGTH", &cfg.SimulationLength},
		{"AVG_ARRIVAL_INTERVAL", &cfg.AvgArrivalInterval},
		{"SEED", &cfg.Seed},
	}
	for _, tgt := range targets {
		raw, ok := env[envPrefix+tgt.key]
		if !ok {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s%s in %s: %w", envPrefix, tgt.key, path, err)
		}
		*tgt.dst = v
	}
	return cfg, nil
}

// applyFlagOverrides copies every explicitly set parameter flag onto cfg.
// Flags left at their default never override values loaded from a file.
func applyFlagOverrides(fs *pflag.FlagSet, cfg sim.Config) (sim.Config, error) {
	targets := []struct {
		name string
		dst  *int64
	}{
		{flagMemorySize, &cfg.MemorySize},
		{flagMaxCPUTime, &cfg.MaxCPUTime},
		{flagAvgIOTime, &cfg.AvgIOTime},
		{flagSimulationLength, &cfg.SimulationLength},
		{flagAvgArrivalInterval, &cfg.AvgArrivalInterval},
		{flagSeed, &cfg.Seed},
	}
	for _, tgt := range targets {
		if !fs.Changed(tgt.name) {
			continue
		}
		v, err := fs.GetInt64(tgt.name)
		if err != nil {
			return cfg, fmt.Errorf("reading --%s: %w", tgt.name, err)
		}
		*tgt.dst = v
	}
	return cfg, nil
}

// configSources names the optional files feeding resolveConfig.
type configSources struct {
	yamlPath string // YAML file with simulation parameters
	envPath  string // dotenv file with PROCSIM_* keys
}

// resolveConfig layers the configuration sources: defaults, then the YAML file,
// then the env file, then explicitly set flags, then stdin prompts when
// interactive.
func resolveConfig(fs *pflag.FlagSet, src configSources, interactive bool, in io.Reader, out io.Writer) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if src.yamlPath != "" {
		loaded, err := sim.LoadConfig(src.yamlPath, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if src.envPath != "" {
		loaded, err := applyEnvFile(src.envPath, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg, err := applyFlagOverrides(fs, cfg)
	if err != nil {
		return cfg, err
	}
	if interactive {
		cfg = promptConfig(in, out, cfg)
	}
	return cfg, nil
}

package cmd

import (
	"os"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/procsim/sim"
	"github.com/inference-sim/procsim/sim/trace"
)

var (
	// CLI flags that are not simulation parameters
	configPath   string // YAML file with simulation parameters
	envFile      string // dotenv file with PROCSIM_* parameters
	interactive  bool   // Prompt for parameters on stdin
	logLevel     string // Log verbosity level
	traceLevel   string // Trace verbosity: "none" or "events"
	traceOut     string // CSV path for the event trace
	traceSummary bool   // Print a YAML summary of the event trace
	summaryYAML  string // YAML path for the statistics summary
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsim",
	Short: "Discrete-event simulator for OS process scheduling",
}

// runCmd executes the simulation using parameters from defaults, config file, flags and prompts
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the process scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg, err := resolveConfig(cmd.Flags(), configSources{yamlPath: configPath, envPath: envFile}, interactive, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			logrus.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		level, err := parseTraceLevel(traceLevel)
		if err != nil {
			logrus.Fatalf("Invalid trace level: %v", err)
		}
		traceEvents := level == trace.TraceLevelEvents

		runID := xid.New().String()
		logger := logrus.WithField("run", runID)
		logger.Infof("Starting simulation with memory=%d, quantum=%d, avgIO=%d, length=%d, avgArrival=%d, seed=%d",
			cfg.MemorySize, cfg.MaxCPUTime, cfg.AvgIOTime, cfg.SimulationLength, cfg.AvgArrivalInterval, cfg.Seed)

		var st *trace.SimulationTrace
		if traceEvents || traceSummary {
			st = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents, RunID: runID})
		}

		startTime := time.Now()
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
		s := sim.NewSimulator(cfg, sim.NewRandomWorkload(cfg, rng),
			sim.WithRunID(runID),
			sim.WithObserver(sim.NewLogObserver(logger)),
			sim.WithTrace(st),
		)
		s.Run()

		if err := s.Statistics.Print(cmd.OutOrStdout(), s.Horizon); err != nil {
			logrus.Fatalf("Failed to print statistics: %v", err)
		}
		if summaryYAML != "" {
			if err := writeSummaryFile(s.Statistics, s.Horizon, summaryYAML); err != nil {
				logrus.Fatalf("Failed to write statistics summary: %v", err)
			}
			logger.Infof("Wrote statistics summary to %s", summaryYAML)
		}
		if traceEvents {
			path, err := writeTraceFile(st, traceOut)
			if err != nil {
				logrus.Fatalf("Failed to write trace: %v", err)
			}
			logger.Infof("Wrote %d trace records to %s", len(st.Records), path)
		}
		if traceSummary {
			if err := trace.WriteSummaryYAML(cmd.OutOrStdout(), trace.Summarize(st)); err != nil {
				logrus.Fatalf("Failed to print trace summary: %v", err)
			}
		}

		logger.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// validateCmd resolves the configuration without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the simulation parameters without running",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg, err := resolveConfig(cmd.Flags(), configSources{yamlPath: configPath, envPath: envFile}, false, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			logrus.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		cmd.Printf("configuration OK: memory=%d quantum=%d avg-io=%d length=%d avg-arrival=%d seed=%d\n",
			cfg.MemorySize, cfg.MaxCPUTime, cfg.AvgIOTime, cfg.SimulationLength, cfg.AvgArrivalInterval, cfg.Seed)
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with simulation parameters")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file with PROCSIM_* simulation parameters")

	registerConfigFlags(runCmd.Flags())
	runCmd.Flags().BoolVar(&interactive, "interactive", false, "Prompt for the five simulation parameters on stdin")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Trace verbosity (none, events); events writes every handled event as CSV")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "CSV path for the event trace (default procsim_trace_<run-id>.csv)")
	runCmd.Flags().BoolVar(&traceSummary, "trace-summary", false, "Print a YAML summary of the event trace")
	runCmd.Flags().StringVar(&summaryYAML, "summary-yaml", "", "Also write the statistics summary as YAML to this path")

	registerConfigFlags(validateCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

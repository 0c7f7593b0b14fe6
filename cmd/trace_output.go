package cmd

import (
	"fmt"
	"os"

	sim "github.com/inference-sim/procsim/sim"
	"github.com/inference-sim/procsim/sim/trace"
)

// parseTraceLevel checks the --trace-level value. Empty means none.
func parseTraceLevel(s string) (trace.TraceLevel, error) {
	if !trace.IsValidTraceLevel(s) {
		return trace.TraceLevelNone, fmt.Errorf("unknown trace level %q (want %q or %q)", s, trace.TraceLevelNone, trace.TraceLevelEvents)
	}
	if s == "" {
		return trace.TraceLevelNone, nil
	}
	return trace.TraceLevel(s), nil
}

// writeTraceFile writes st as CSV to path, or to procsim_trace_<run-id>.csv
// when path is empty. An existing file is never overwritten.
func writeTraceFile(st *trace.SimulationTrace, path string) (string, error) {
	if path == "" {
		path = "procsim_trace_" + st.Config.RunID + ".csv"
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("trace file %s already exists", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("creating trace file: %w", err)
	}
	if err := trace.WriteCSV(f, st); err != nil {
		_ = f.Close()
		return path, err
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("closing trace file: %w", err)
	}
	return path, nil
}

// writeSummaryFile writes the statistics summary of a run as YAML to path.
func writeSummaryFile(stats *sim.Statistics, horizon int64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary file: %w", err)
	}
	if err := stats.WriteYAML(f, horizon); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing summary file: %w", err)
	}
	return nil
}

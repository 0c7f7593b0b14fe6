package trace

// TraceSummary aggregates statistics from a SimulationTrace.
// EventCounts maps event type to count; UniqueProcs counts processes named by
// at least one event.
type TraceSummary struct {
	RunID          string         `yaml:"run_id"`
	TotalEvents    int            `yaml:"total_events"`
	FirstClock     int64          `yaml:"first_clock"`
	LastClock      int64          `yaml:"last_clock"`
	EventCounts    map[string]int `yaml:"event_counts"`
	UniqueProcs    int            `yaml:"unique_processes"`
	MaxReadyQueue  int            `yaml:"max_ready_queue"`
	MaxIOQueue     int            `yaml:"max_io_queue"`
	MaxMemoryQueue int            `yaml:"max_memory_queue"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		EventCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}
	summary.RunID = st.Config.RunID
	summary.TotalEvents = len(st.Records)
	if len(st.Records) == 0 {
		return summary
	}

	procs := make(map[int64]bool)
	summary.FirstClock = st.Records[0].Clock
	for _, r := range st.Records {
		summary.EventCounts[r.Type]++
		if r.ProcessID != 0 {
			procs[r.ProcessID] = true
		}
		summary.LastClock = r.Clock
		summary.MaxReadyQueue = max(summary.MaxReadyQueue, r.ReadyQueue)
		summary.MaxIOQueue = max(summary.MaxIOQueue, r.IOQueue)
		summary.MaxMemoryQueue = max(summary.MaxMemoryQueue, r.MemoryQueue)
	}
	summary.UniqueProcs = len(procs)

	return summary
}

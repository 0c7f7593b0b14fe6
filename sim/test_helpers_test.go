package sim

import (
	"testing"

	"github.com/inference-sim/procsim/sim/trace"
)

// farFuture is later than any horizon used in tests.
const farFuture = int64(1) << 40

// scriptedProcess describes one arrival of a scriptedWorkload.
type scriptedProcess struct {
	arrival    int64   // absolute arrival time; the first must be 0
	memory     int64   // footprint
	cpu        int64   // total CPU demand
	ioTriggers []int64 // successive time-to-next-I/O values; none left means no more I/O
}

// scriptedWorkload replays a fixed list of processes with constant I/O time.
type scriptedWorkload struct {
	procs   []scriptedProcess
	ioTime  int64
	created int
	draws   map[int64]int // process ID → I/O triggers handed out so far
}

func newScriptedWorkload(ioTime int64, procs ...scriptedProcess) *scriptedWorkload {
	return &scriptedWorkload{procs: procs, ioTime: ioTime, draws: make(map[int64]int)}
}

func (w *scriptedWorkload) ArrivalInterval() int64 {
	if w.created >= len(w.procs) {
		return farFuture
	}
	return w.procs[w.created].arrival - w.procs[w.created-1].arrival
}

func (w *scriptedWorkload) NewProcess(id, clock int64) *Process {
	sp := w.procs[w.created]
	w.created++
	return NewProcess(id, clock, sp.memory, sp.cpu, 0)
}

func (w *scriptedWorkload) TimeToNextIO(p *Process) int64 {
	triggers := w.procs[p.ID-1].ioTriggers
	i := w.draws[p.ID]
	w.draws[p.ID]++
	if i >= len(triggers) {
		return farFuture
	}
	return triggers[i]
}

func (w *scriptedWorkload) IOServiceTime() int64 {
	return w.ioTime
}

// newTracedSimulator builds a simulator with event tracing enabled.
func newTracedSimulator(t *testing.T, cfg Config, w Workload, opts ...Option) *Simulator {
	t.Helper()
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents, RunID: t.Name()})
	opts = append([]Option{WithTrace(st), WithRunID(t.Name())}, opts...)
	return NewSimulator(cfg, w, opts...)
}

// testConfig returns a config with the given memory, quantum and horizon.
func testConfig(memory, quantum, horizon int64) Config {
	cfg := DefaultConfig()
	cfg.MemorySize = memory
	cfg.MaxCPUTime = quantum
	cfg.SimulationLength = horizon
	return cfg
}

// eventTypes lists the types of all recorded events in order.
func eventTypes(st *trace.SimulationTrace) []string {
	types := make([]string, 0, len(st.Records))
	for _, r := range st.Records {
		types = append(types, r.Type)
	}
	return types
}

// eventClocks lists the clocks of all recorded events in order.
func eventClocks(st *trace.SimulationTrace) []int64 {
	clocks := make([]int64, 0, len(st.Records))
	for _, r := range st.Records {
		clocks = append(clocks, r.Clock)
	}
	return clocks
}

// admittedFootprint sums the memory of every process past admission.
func admittedFootprint(s *Simulator) int64 {
	var sum int64
	for _, p := range s.CPU.ready.Items() {
		sum += p.MemoryNeeded
	}
	for _, p := range s.IO.queue.Items() {
		sum += p.MemoryNeeded
	}
	if p := s.CPU.Current(); p != nil {
		sum += p.MemoryNeeded
	}
	if p := s.IO.Current(); p != nil {
		sum += p.MemoryNeeded
	}
	return sum
}

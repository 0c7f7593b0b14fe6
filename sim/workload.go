package sim

import "math/rand"

// Workload supplies every random quantity the simulation consumes. Injecting it
// keeps the engine deterministic: tests script exact processes and durations,
// production runs use a seeded RandomWorkload.
type Workload interface {
	// ArrivalInterval returns the delay until the next NEW_PROCESS event.
	ArrivalInterval() int64
	// NewProcess creates the process with the given id arriving at clock.
	NewProcess(id, clock int64) *Process
	// TimeToNextIO draws how much CPU time p runs before its next I/O request.
	TimeToNextIO(p *Process) int64
	// IOServiceTime draws the duration of one I/O operation.
	IOServiceTime() int64
}

// Process generation constants.
const (
	minProcessMemory   = 100  // smallest footprint of a generated process
	minProcessCPUTime  = 100  // smallest CPU demand of a generated process
	processCPUTimeSpan = 9900 // CPU demand is drawn from [min, min+span)
	maxIOIntervalPct   = 25   // avg I/O interval is 1..25 percent of the CPU demand
)

// RandomWorkload draws uniform quantities from a PartitionedRNG, one subsystem
// per concern.
type RandomWorkload struct {
	memorySize         int64
	avgArrivalInterval int64
	avgIOTime          int64

	arrivals  *rand.Rand
	processes *rand.Rand
	io        *rand.Rand
}

// NewRandomWorkload creates a workload for the given configuration.
func NewRandomWorkload(cfg Config, rng *PartitionedRNG) *RandomWorkload {
	return &RandomWorkload{
		memorySize:         cfg.MemorySize,
		avgArrivalInterval: cfg.AvgArrivalInterval,
		avgIOTime:          cfg.AvgIOTime,
		arrivals:           rng.ForSubsystem(SubsystemArrivals),
		processes:          rng.ForSubsystem(SubsystemProcesses),
		io:                 rng.ForSubsystem(SubsystemIO),
	}
}

// ArrivalInterval is 1 + Uniform(0, 2*avgArrivalInterval), so consecutive
// arrivals are never simultaneous and the mean is avgArrivalInterval + 1.
func (w *RandomWorkload) ArrivalInterval() int64 {
	return 1 + int64(2*w.arrivals.Float64()*float64(w.avgArrivalInterval))
}

// NewProcess draws a footprint in [100, memorySize/4), a CPU demand in
// [100, 10000) and a mean I/O interval of 1-25% of the demand.
func (w *RandomWorkload) NewProcess(id, clock int64) *Process {
	memory := minProcessMemory + int64(w.processes.Float64()*float64(w.memorySize/4-minProcessMemory))
	cpuTime := minProcessCPUTime + int64(w.processes.Float64()*processCPUTimeSpan)
	avgIOInterval := (1 + int64(w.processes.Float64()*maxIOIntervalPct)) * cpuTime / 100
	return NewProcess(id, clock, memory, cpuTime, avgIOInterval)
}

// TimeToNextIO is Uniform(0, 2*avgIOInterval) of p.
func (w *RandomWorkload) TimeToNextIO(p *Process) int64 {
	return int64(w.processes.Float64() * 2 * float64(p.AvgIOInterval))
}

// IOServiceTime is Uniform(0, 2*avgIOTime).
func (w *RandomWorkload) IOServiceTime() int64 {
	return int64(w.io.Float64() * 2 * float64(w.avgIOTime))
}

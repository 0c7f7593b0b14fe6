// Defines the Process struct that models a single process in the simulation.
// Tracks its footprint, CPU demand, I/O trigger and the time it spends in each phase.

package sim

import (
	"fmt"
)

// ProcessState represents where a live process currently is.
// A process occupies exactly one of these places at any instant.
type ProcessState string

const (
	StateMemoryWait ProcessState = "memory-wait"
	StateReady      ProcessState = "ready"
	StateRunning    ProcessState = "running"
	StateIOWait     ProcessState = "io-wait"
	StateIO         ProcessState = "io"
	StateCompleted  ProcessState = "completed"
)

// Process models one process's lifecycle: memory admission, CPU bursts
// interleaved with I/O, and termination.
type Process struct {
	ID            int64 // Sequential identifier, 1-based in creation order
	CreationTime  int64 // Clock value at the NEW_PROCESS event
	MemoryNeeded  int64 // Footprint in memory units
	CPUTimeNeeded int64 // Total CPU demand
	AvgIOInterval int64 // Mean CPU time between I/O requests

	State        ProcessState
	RemainingCPU int64 // CPU demand not yet served, only ever decreases
	TimeToNextIO int64 // CPU time left before the next I/O request

	// Phase markers: clock value when the process last entered each phase.
	enteredMemoryQueue int64
	enteredReadyQueue  int64
	enteredCPU         int64
	enteredIOQueue     int64
	enteredIO          int64

	// Per-phase accumulated durations.
	TimeWaitingForMemory int64
	TimeInReadyQueue     int64
	TimeInCPU            int64
	TimeWaitingForIO     int64
	TimeInIO             int64
	TimesInReadyQueue    int64
	TimesInIOQueue       int64
	CompletionTime       int64
}

// NewProcess creates a process waiting for memory admission.
// TimeToNextIO is left at zero; the Workload draws it right after creation.
func NewProcess(id, creationTime, memoryNeeded, cpuTimeNeeded, avgIOInterval int64) *Process {
	return &Process{
		ID:                 id,
		CreationTime:       creationTime,
		MemoryNeeded:       memoryNeeded,
		CPUTimeNeeded:      cpuTimeNeeded,
		AvgIOInterval:      avgIOInterval,
		State:              StateMemoryWait,
		RemainingCPU:       cpuTimeNeeded,
		enteredMemoryQueue: creationTime,
	}
}

func (p *Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Memory: %d, RemainingCPU: %d, TimeToNextIO: %d)",
		p.ID, p.State, p.MemoryNeeded, p.RemainingCPU, p.TimeToNextIO)
}

func (p *Process) EnteredMemoryQueue(clock int64) {
	p.State = StateMemoryWait
	p.enteredMemoryQueue = clock
}

func (p *Process) LeftMemoryQueue(clock int64) {
	p.TimeWaitingForMemory += clock - p.enteredMemoryQueue
}

func (p *Process) EnteredReadyQueue(clock int64) {
	p.State = StateReady
	p.enteredReadyQueue = clock
	p.TimesInReadyQueue++
}

func (p *Process) LeftReadyQueue(clock int64) {
	p.TimeInReadyQueue += clock - p.enteredReadyQueue
}

func (p *Process) EnteredCPU(clock int64) {
	p.State = StateRunning
	p.enteredCPU = clock
}

// LeftCPU closes the running phase and returns how long the process ran.
func (p *Process) LeftCPU(clock int64) int64 {
	ran := clock - p.enteredCPU
	p.TimeInCPU += ran
	return ran
}

func (p *Process) EnteredIOQueue(clock int64) {
	p.State = StateIOWait
	p.enteredIOQueue = clock
	p.TimesInIOQueue++
}

func (p *Process) LeftIOQueue(clock int64) {
	p.TimeWaitingForIO += clock - p.enteredIOQueue
}

func (p *Process) EnteredIO(clock int64) {
	p.State = StateIO
	p.enteredIO = clock
}

func (p *Process) LeftIO(clock int64) {
	p.TimeInIO += clock - p.enteredIO
}

// ConsumeCPU charges d units of served CPU time against both the remaining
// demand and the countdown to the next I/O request.
func (p *Process) ConsumeCPU(d int64) {
	if d < 0 {
		panic(fmt.Sprintf("ConsumeCPU: negative duration %d for process %d", d, p.ID))
	}
	if d > p.RemainingCPU {
		panic(fmt.Sprintf("ConsumeCPU: process %d consumed %d with only %d remaining", p.ID, d, p.RemainingCPU))
	}
	p.RemainingCPU -= d
	p.TimeToNextIO = max(p.TimeToNextIO-d, 0)
}

// Complete marks the process finished at clock.
func (p *Process) Complete(clock int64) {
	p.RemainingCPU = 0
	p.State = StateCompleted
	p.CompletionTime = clock
}

// FoldInto adds this process's per-phase durations to the run statistics.
// Called exactly once, when the process completes.
func (p *Process) FoldInto(stats *Statistics) {
	stats.CompletedProcesses++
	stats.TotalTimeWaitingForMemory += p.TimeWaitingForMemory
	stats.TotalTimeWaitingForCPU += p.TimeInReadyQueue
	stats.TotalTimeInCPU += p.TimeInCPU
	stats.TotalTimeWaitingForIO += p.TimeWaitingForIO
	stats.TotalTimeInIO += p.TimeInIO
	stats.TotalTimesInReadyQueue += p.TimesInReadyQueue
	stats.TotalTimesInIOQueue += p.TimesInIOQueue
}

// ProcessSnapshot is a read-only copy of a process handed to observers.
type ProcessSnapshot struct {
	ID           int64
	State        ProcessState
	MemoryNeeded int64
	RemainingCPU int64
	TimeToNextIO int64
}

// Snapshot copies the observable fields of p. A nil process yields nil, meaning idle.
func (p *Process) Snapshot() *ProcessSnapshot {
	if p == nil {
		return nil
	}
	return &ProcessSnapshot{
		ID:           p.ID,
		State:        p.State,
		MemoryNeeded: p.MemoryNeeded,
		RemainingCPU: p.RemainingCPU,
		TimeToNextIO: p.TimeToNextIO,
	}
}

// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/procsim/sim/trace"
)

// Simulator is the core object that holds simulation time, system state, and the event loop.
//
// The engine is single-threaded: events are handled one at a time in timestamp
// order and every component is owned by the Simulator.
type Simulator struct {
	Clock   int64
	Horizon int64
	// EventQueue has all future events: arrivals, quantum expiries, completions and I/O.
	EventQueue *EventQueue
	// Memory holds the admission wait queue and tracks free capacity.
	Memory *Memory
	// CPU holds the Round-Robin ready queue and the running process.
	CPU *CPU
	// IO holds the I/O wait queue and the process on the device.
	IO         *IODevice
	Statistics *Statistics
	// Trace records every handled event when enabled; nil disables tracing.
	Trace *trace.SimulationTrace
	RunID string

	workload      Workload
	observer      Observer
	logger        *logrus.Entry
	nextProcessID int64
	handledEvents int64
}

// Option customizes a Simulator at construction.
type Option func(*Simulator)

// WithObserver installs an observer notified after each state change.
func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observer = o }
}

// WithTrace records every handled event into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(s *Simulator) { s.Trace = st }
}

// WithRunID tags log lines with id instead of a generated one.
func WithRunID(id string) Option {
	return func(s *Simulator) { s.RunID = id }
}

// NewSimulator builds a simulator for cfg drawing random quantities from
// workload, and schedules the first arrival at time 0.
func NewSimulator(cfg Config, workload Workload, opts ...Option) *Simulator {
	stats := NewStatistics()
	s := &Simulator{
		Clock:      0,
		Horizon:    cfg.SimulationLength,
		EventQueue: NewEventQueue(),
		Memory:     NewMemory(cfg.MemorySize, stats),
		CPU:        NewCPU(cfg.MaxCPUTime, stats),
		IO:         NewIODevice(stats),
		Statistics: stats,
		workload:   workload,
		observer:   NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.RunID == "" {
		s.RunID = xid.New().String()
	}
	s.logger = logrus.WithField("run", s.RunID)

	s.Schedule(NewArrivalEvent(0))
	return s
}

// Schedule pushes an event into the simulator's EventQueue.
// Inserting an event past the horizon is harmless; it is never handled.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Insert(ev)
}

// Done reports whether the run is over: the horizon was reached or no events remain.
func (sim *Simulator) Done() bool {
	return sim.Clock >= sim.Horizon || sim.EventQueue.IsEmpty()
}

// HandledEvents returns the number of events dispatched to handlers so far.
func (sim *Simulator) HandledEvents() int64 {
	return sim.handledEvents
}

// Step pops the earliest event, advances the clock to it and handles it if it
// lies before the horizon. It reports whether an event was handled.
func (sim *Simulator) Step() bool {
	if sim.Done() {
		return false
	}
	ev := sim.EventQueue.PopEarliest()
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("event %s at %d is earlier than clock %d", ev.Type(), ev.Timestamp(), sim.Clock))
	}
	// Time past the horizon is not accounted for.
	elapsed := min(ev.Timestamp(), sim.Horizon) - sim.Clock
	sim.Clock = ev.Timestamp()
	sim.timePassed(elapsed)
	if sim.Clock >= sim.Horizon {
		return false
	}

	sim.logger.Debugf("[tick %07d] Executing %s", sim.Clock, ev.Type())
	ev.Execute(sim)
	sim.handledEvents++
	sim.record(ev)
	return true
}

// Run processes events until the horizon is reached or the event queue empties.
func (sim *Simulator) Run() {
	sim.logger.Infof("[tick %07d] Simulation started: memory=%d, quantum=%d, horizon=%d",
		sim.Clock, sim.Memory.Size(), sim.CPU.Quantum(), sim.Horizon)
	for !sim.Done() {
		sim.Step()
	}
	sim.logger.Infof("[tick %07d] Simulation ended after %d events, %d processes created, %d completed",
		sim.Clock, sim.handledEvents, sim.Statistics.CreatedProcesses, sim.Statistics.CompletedProcesses)
}

// ProcessesInSystem counts live processes: waiting for memory, ready, running,
// waiting for I/O or doing I/O.
func (sim *Simulator) ProcessesInSystem() int64 {
	n := int64(sim.Memory.QueueLen() + sim.CPU.QueueLen() + sim.IO.QueueLen())
	if !sim.CPU.IsIdle() {
		n++
	}
	if !sim.IO.IsIdle() {
		n++
	}
	return n
}

func (sim *Simulator) timePassed(delta int64) {
	sim.Memory.TimePassed(delta)
	sim.CPU.TimePassed(delta)
	sim.observer.TimePassed(delta)
}

// handleArrival creates a process, tries to admit it and schedules the next arrival.
func (sim *Simulator) handleArrival() {
	sim.nextProcessID++
	p := sim.workload.NewProcess(sim.nextProcessID, sim.Clock)
	p.TimeToNextIO = sim.workload.TimeToNextIO(p)
	sim.Statistics.CreatedProcesses++
	sim.logger.Debugf("<< Arrival: process %d (memory %d, cpu %d) at %d ticks", p.ID, p.MemoryNeeded, p.CPUTimeNeeded, sim.Clock)

	sim.Memory.Admit(p, sim.Clock)
	sim.flushMemoryQueue()

	sim.Schedule(NewArrivalEvent(sim.Clock + sim.workload.ArrivalInterval()))
}

// flushMemoryQueue moves processes from the memory queue to the ready queue as
// long as the head fits, starting the CPU if it is idle.
func (sim *Simulator) flushMemoryQueue() {
	for p := sim.Memory.CheckMemory(sim.Clock); p != nil; p = sim.Memory.CheckMemory(sim.Clock) {
		sim.CPU.Enqueue(p, sim.Clock)
		if sim.CPU.IsIdle() {
			sim.dispatch()
		}
	}
}

// dispatch puts the head of the ready queue on the CPU and schedules the event
// ending that dispatch. The CPU goes idle if nothing is ready.
func (sim *Simulator) dispatch() {
	p := sim.CPU.DispatchNext(sim.Clock)
	if p != nil {
		sim.Schedule(sim.CPU.NextEvent(p, sim.Clock))
	}
	sim.observer.CPUActive(p.Snapshot())
}

func (sim *Simulator) expectOnCPU(ev Event) {
	if cur := sim.CPU.Current(); cur == nil || cur != ev.Process() {
		panic(fmt.Sprintf("%s at %d for process %d, but CPU runs %v", ev.Type(), ev.Timestamp(), ev.Process().ID, cur))
	}
}

// handleSwitch preempts the running process after a full quantum.
func (sim *Simulator) handleSwitch(ev Event) {
	sim.expectOnCPU(ev)
	sim.CPU.Preempt(sim.Clock)
	sim.dispatch()
}

// handleEnd terminates the running process, releases its memory and lets
// waiting processes in.
func (sim *Simulator) handleEnd(ev Event) {
	sim.expectOnCPU(ev)
	p := sim.CPU.Terminate(sim.Clock)
	sim.Memory.ProcessCompleted(p)
	p.FoldInto(sim.Statistics)
	sim.logger.Debugf(">> Finished process %d at %d ticks", p.ID, sim.Clock)

	sim.flushMemoryQueue()
	if sim.CPU.IsIdle() {
		sim.dispatch()
	}
}

// handleIORequest moves the running process to the I/O device or its wait line.
func (sim *Simulator) handleIORequest(ev Event) {
	sim.expectOnCPU(ev)
	p := sim.CPU.BlockForIO(sim.Clock)
	if sim.IO.Request(p, sim.Clock) {
		sim.startIO(p)
	}
	sim.dispatch()
}

func (sim *Simulator) startIO(p *Process) {
	sim.Schedule(NewIOEndEvent(sim.Clock+sim.workload.IOServiceTime(), p))
	sim.observer.IOActive(p.Snapshot())
}

// handleIOEnd returns the served process to the ready queue and serves the
// next waiting process, if any.
func (sim *Simulator) handleIOEnd(ev Event) {
	if cur := sim.IO.Current(); cur == nil || cur != ev.Process() {
		panic(fmt.Sprintf("%s at %d for process %d, but I/O device serves %v", ev.Type(), ev.Timestamp(), ev.Process().ID, cur))
	}
	p := sim.IO.Finish(sim.Clock)
	p.TimeToNextIO = sim.workload.TimeToNextIO(p)
	sim.CPU.Enqueue(p, sim.Clock)

	if next := sim.IO.StartNext(sim.Clock); next != nil {
		sim.startIO(next)
	} else {
		sim.observer.IOActive(nil)
	}

	if sim.CPU.IsIdle() {
		sim.dispatch()
	}
}

func (sim *Simulator) record(ev Event) {
	if !sim.Trace.Enabled() {
		return
	}
	r := trace.EventRecord{
		Clock:       sim.Clock,
		Type:        ev.Type().String(),
		MemoryQueue: sim.Memory.QueueLen(),
		ReadyQueue:  sim.CPU.QueueLen(),
		IOQueue:     sim.IO.QueueLen(),
		FreeMemory:  sim.Memory.Free(),
	}
	if p := ev.Process(); p != nil {
		r.ProcessID = p.ID
	}
	if p := sim.CPU.Current(); p != nil {
		r.CPUProcess = p.ID
	}
	if p := sim.IO.Current(); p != nil {
		r.IOProcess = p.ID
	}
	sim.Trace.RecordEvent(r)
}

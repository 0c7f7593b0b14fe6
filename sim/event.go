package sim

import "fmt"

// EventType tags the five kinds of occurrence the driver knows how to handle.
type EventType int

const (
	// ProcessArrival is the arrival of a process into the system.
	ProcessArrival EventType = iota
	// SwitchProcess is the expiry of the running process's quantum.
	SwitchProcess
	// EndProcess is the running process exhausting its CPU demand.
	EndProcess
	// IORequest is the running process leaving the CPU to perform I/O.
	IORequest
	// EndIO is the process on the I/O device finishing its operation.
	EndIO
)

var eventTypeNames = map[EventType]string{
	ProcessArrival: "NEW_PROCESS",
	SwitchProcess:  "SWITCH_PROCESS",
	EndProcess:     "END_PROCESS",
	IORequest:      "IO_REQUEST",
	EndIO:          "END_IO",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event defines the interface for all simulation events.
// Each event has an absolute Timestamp (in ticks), a Type tag and an Execute
// method that hands the event to the matching Simulator handler.
//
// Events are owned by the EventQueue until popped and are never re-inserted;
// future occurrences always get a fresh event.
type Event interface {
	Timestamp() int64
	Type() EventType
	// Process returns the process the event concerns, or nil for arrivals.
	Process() *Process
	Execute(*Simulator)
}

// baseEvent provides the fields every event carries.
type baseEvent struct {
	time    int64
	process *Process
}

func (e *baseEvent) Timestamp() int64 {
	return e.time
}

func (e *baseEvent) Process() *Process {
	return e.process
}

// ArrivalEvent represents the creation of a new process.
type ArrivalEvent struct {
	baseEvent
}

// NewArrivalEvent creates a NEW_PROCESS event at time t.
func NewArrivalEvent(t int64) *ArrivalEvent {
	return &ArrivalEvent{baseEvent{time: t}}
}

func (e *ArrivalEvent) Type() EventType { return ProcessArrival }

func (e *ArrivalEvent) Execute(sim *Simulator) {
	sim.handleArrival()
}

// QuantumExpiryEvent fires when the running process has used its full quantum
// and must be moved to the tail of the ready queue.
type QuantumExpiryEvent struct {
	baseEvent
}

// NewQuantumExpiryEvent creates a SWITCH_PROCESS event for p at time t.
func NewQuantumExpiryEvent(t int64, p *Process) *QuantumExpiryEvent {
	return &QuantumExpiryEvent{baseEvent{time: t, process: p}}
}

func (e *QuantumExpiryEvent) Type() EventType { return SwitchProcess }

func (e *QuantumExpiryEvent) Execute(sim *Simulator) {
	sim.handleSwitch(e)
}

// ProcessEndEvent fires when the running process has no CPU demand left.
type ProcessEndEvent struct {
	baseEvent
}

// NewProcessEndEvent creates an END_PROCESS event for p at time t.
func NewProcessEndEvent(t int64, p *Process) *ProcessEndEvent {
	return &ProcessEndEvent{baseEvent{time: t, process: p}}
}

func (e *ProcessEndEvent) Type() EventType { return EndProcess }

func (e *ProcessEndEvent) Execute(sim *Simulator) {
	sim.handleEnd(e)
}

// IORequestEvent fires when the running process reaches its next I/O trigger.
type IORequestEvent struct {
	baseEvent
}

// NewIORequestEvent creates an IO_REQUEST event for p at time t.
func NewIORequestEvent(t int64, p *Process) *IORequestEvent {
	return &IORequestEvent{baseEvent{time: t, process: p}}
}

func (e *IORequestEvent) Type() EventType { return IORequest }

func (e *IORequestEvent) Execute(sim *Simulator) {
	sim.handleIORequest(e)
}

// IOEndEvent fires when the process occupying the I/O device is done.
type IOEndEvent struct {
	baseEvent
}

// NewIOEndEvent creates an END_IO event for p at time t.
func NewIOEndEvent(t int64, p *Process) *IOEndEvent {
	return &IOEndEvent{baseEvent{time: t, process: p}}
}

func (e *IOEndEvent) Type() EventType { return EndIO }

func (e *IOEndEvent) Execute(sim *Simulator) {
	sim.handleIOEnd(e)
}

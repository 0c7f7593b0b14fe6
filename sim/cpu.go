package sim

import "fmt"

// CPU is a single core scheduled Round-Robin with a fixed quantum.
type CPU struct {
	ready   *ProcessQueue
	quantum int64
	current *Process
	stats   *Statistics
}

// NewCPU creates an idle CPU with an empty ready queue.
func NewCPU(quantum int64, stats *Statistics) *CPU {
	return &CPU{
		ready:   &ProcessQueue{},
		quantum: quantum,
		stats:   stats,
	}
}

// Quantum returns the maximum uninterrupted CPU time per dispatch.
func (c *CPU) Quantum() int64 { return c.quantum }

// Current returns the running process, or nil when the CPU is idle.
func (c *CPU) Current() *Process { return c.current }

// IsIdle reports whether no process is running.
func (c *CPU) IsIdle() bool { return c.current == nil }

// QueueLen returns the ready queue length.
func (c *CPU) QueueLen() int { return c.ready.Len() }

// Enqueue appends p to the tail of the ready queue.
func (c *CPU) Enqueue(p *Process, clock int64) {
	c.ready.Enqueue(p)
	p.EnteredReadyQueue(clock)
	c.stats.ObserveCPUQueue(c.ready.Len())
}

// DispatchNext moves the head of the ready queue onto the CPU and returns it.
// With an empty ready queue the CPU stays idle and nil is returned.
func (c *CPU) DispatchNext(clock int64) *Process {
	if c.current != nil {
		panic(fmt.Sprintf("DispatchNext: CPU is still running process %d", c.current.ID))
	}
	p := c.ready.Dequeue()
	if p == nil {
		return nil
	}
	p.LeftReadyQueue(clock)
	p.EnteredCPU(clock)
	c.current = p
	c.stats.CPUDispatches++
	return p
}

// decideNext is the single decision point for what happens to a freshly
// dispatched process: it returns the event type and its delay from now, given
// the quantum, the remaining CPU demand and the CPU time left before the next
// I/O request.
func decideNext(quantum, remaining, toIO int64) (EventType, int64) {
	if quantum >= toIO {
		if remaining > toIO {
			return IORequest, toIO
		}
		return EndProcess, remaining
	}
	if remaining > quantum {
		return SwitchProcess, quantum
	}
	return EndProcess, remaining
}

// NextEvent builds the event that ends the current dispatch of p at clock.
// It is recomputed on every dispatch from the values persisted on p.
func (c *CPU) NextEvent(p *Process, clock int64) Event {
	typ, delay := decideNext(c.quantum, p.RemainingCPU, p.TimeToNextIO)
	switch typ {
	case IORequest:
		return NewIORequestEvent(clock+delay, p)
	case SwitchProcess:
		return NewQuantumExpiryEvent(clock+delay, p)
	default:
		return NewProcessEndEvent(clock+delay, p)
	}
}

// leave takes the running process off the CPU and samples the ready queue.
func (c *CPU) leave(clock int64) *Process {
	p := c.current
	if p == nil {
		panic("CPU: no process is running")
	}
	p.LeftCPU(clock)
	c.stats.SampleCPUQueue(c.ready.Len())
	c.current = nil
	return p
}

// Preempt handles quantum expiry: the running process is charged exactly one
// quantum and re-inserted at the tail of the ready queue.
func (c *CPU) Preempt(clock int64) *Process {
	p := c.leave(clock)
	p.ConsumeCPU(c.quantum)
	c.Enqueue(p, clock)
	c.stats.ProcessSwitches++
	return p
}

// BlockForIO takes the running process off the CPU after it has used up its
// CPU time until the I/O trigger.
func (c *CPU) BlockForIO(clock int64) *Process {
	p := c.leave(clock)
	p.ConsumeCPU(p.TimeToNextIO)
	return p
}

// Terminate takes the finished process off the CPU.
func (c *CPU) Terminate(clock int64) *Process {
	p := c.leave(clock)
	p.Complete(clock)
	return p
}

// TimePassed accumulates CPU busy time over delta ticks.
func (c *CPU) TimePassed(delta int64) {
	if c.current != nil {
		c.stats.CPUBusyTime += delta
	}
}

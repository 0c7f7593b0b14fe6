package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Memory governs which arrived processes may enter the system.
//
// Admission is strict FIFO: only the head of the wait queue is ever considered,
// so a large process blocks every process behind it even when they would fit.
type Memory struct {
	queue *ProcessQueue
	size  int64
	free  int64
	stats *Statistics
}

// NewMemory creates a memory unit of the given capacity.
func NewMemory(size int64, stats *Statistics) *Memory {
	return &Memory{
		queue: &ProcessQueue{},
		size:  size,
		free:  size,
		stats: stats,
	}
}

// Size returns the configured capacity.
func (m *Memory) Size() int64 { return m.size }

// Free returns the capacity not held by admitted processes.
func (m *Memory) Free() int64 { return m.free }

// Used returns the capacity held by admitted processes.
func (m *Memory) Used() int64 { return m.size - m.free }

// QueueLen returns the number of processes waiting for memory.
func (m *Memory) QueueLen() int { return m.queue.Len() }

// Admit places a newly arrived process at the tail of the memory wait queue.
func (m *Memory) Admit(p *Process, clock int64) {
	if p.MemoryNeeded > m.size {
		logrus.Warnf("[tick %07d] process %d needs %d units but memory holds %d; it will block the memory queue",
			clock, p.ID, p.MemoryNeeded, m.size)
	}
	m.queue.Enqueue(p)
	p.EnteredMemoryQueue(clock)
	m.stats.ObserveMemoryQueue(m.queue.Len())
}

// CheckMemory admits the head of the wait queue if its footprint fits in free
// memory, returning it; otherwise it returns nil and the queue is unchanged.
// Callers loop until nil to admit every process that fits in order.
func (m *Memory) CheckMemory(clock int64) *Process {
	head := m.queue.Peek()
	if head == nil || head.MemoryNeeded > m.free {
		return nil
	}
	m.queue.Dequeue()
	m.free -= head.MemoryNeeded
	head.LeftMemoryQueue(clock)
	return head
}

// ProcessCompleted releases the memory held by p.
func (m *Memory) ProcessCompleted(p *Process) {
	m.free += p.MemoryNeeded
	if m.free > m.size {
		panic(fmt.Sprintf("ProcessCompleted: free memory %d exceeds size %d after releasing process %d", m.free, m.size, p.ID))
	}
}

// TimePassed accumulates the memory queue length over delta ticks.
func (m *Memory) TimePassed(delta int64) {
	m.stats.MemoryQueueLengthTime += int64(m.queue.Len()) * delta
}

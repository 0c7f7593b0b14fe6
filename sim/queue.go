// Implements the ProcessQueue, the FIFO line used for the memory-wait,
// CPU-ready and I/O-wait queues.

package sim

import (
	"fmt"
	"strings"
)

// ProcessQueue represents a FIFO queue of processes.
// Processes are always appended at the tail and removed from the head; Round-Robin
// preemption re-inserts at the tail like any other arrival.
type ProcessQueue struct {
	queue []*Process // FIFO queue of processes
}

// Enqueue adds a process to the back of the queue.
// Enqueueing a process that is already queued is an invariant violation.
func (pq *ProcessQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	for _, q := range pq.queue {
		if q == p {
			panic(fmt.Sprintf("Enqueue: process %d is already queued", p.ID))
		}
	}
	pq.queue = append(pq.queue, p)
}

func (pq *ProcessQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range pq.queue {
		sb.WriteString(fmt.Sprint(p.ID))
		if i < len(pq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes in the queue.
func (pq *ProcessQueue) Len() int {
	return len(pq.queue)
}

// IsEmpty reports whether the queue holds no processes.
func (pq *ProcessQueue) IsEmpty() bool {
	return len(pq.queue) == 0
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (pq *ProcessQueue) Peek() *Process {
	if len(pq.queue) == 0 {
		return nil
	}
	return pq.queue[0]
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers MUST NOT
// append to or reslice it.
func (pq *ProcessQueue) Items() []*Process {
	return pq.queue
}

// Dequeue removes the process at the front of the queue.
// Returns nil if the queue is empty.
func (pq *ProcessQueue) Dequeue() *Process {
	if len(pq.queue) == 0 {
		return nil
	}
	p := pq.queue[0]
	pq.queue[0] = nil
	pq.queue = pq.queue[1:]
	return p
}

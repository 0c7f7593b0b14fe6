package sim

import "container/heap"

// queuedEvent pairs an event with its insertion sequence number.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// eventHeap implements heap.Interface and orders events by timestamp.
// Equal timestamps pop in insertion order, which keeps runs reproducible.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].ev.Timestamp() != h[j].ev.Timestamp() {
		return h[i].ev.Timestamp() < h[j].ev.Timestamp()
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = queuedEvent{}
	*h = old[0 : n-1]
	return item
}

// EventQueue is a priority queue of future events. The front of the queue is
// always the event to happen next.
//
// Thread-safety: NOT thread-safe. Owned by the driver goroutine.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Insert adds an event to the queue.
func (q *EventQueue) Insert(ev Event) {
	if ev == nil {
		panic("EventQueue.Insert: event must not be nil")
	}
	heap.Push(&q.events, queuedEvent{ev: ev, seq: q.nextSeq})
	q.nextSeq++
}

// IsEmpty reports whether no events remain.
func (q *EventQueue) IsEmpty() bool {
	return len(q.events) == 0
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// PopEarliest removes and returns the event with the smallest timestamp.
// Calling it on an empty queue is a caller bug and panics; check IsEmpty first.
func (q *EventQueue) PopEarliest() Event {
	if q.IsEmpty() {
		panic("EventQueue.PopEarliest: queue is empty")
	}
	return heap.Pop(&q.events).(queuedEvent).ev
}

// Peek returns the next event without removing it, or nil if the queue is empty.
func (q *EventQueue) Peek() Event {
	if q.IsEmpty() {
		return nil
	}
	return q.events[0].ev
}

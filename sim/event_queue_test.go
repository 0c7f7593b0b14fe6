package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_TimestampOrdering(t *testing.T) {
	// GIVEN events inserted out of order
	q := NewEventQueue()
	q.Insert(NewArrivalEvent(100))
	q.Insert(NewArrivalEvent(50))
	q.Insert(NewArrivalEvent(150))

	// WHEN popped
	var got []int64
	for !q.IsEmpty() {
		got = append(got, q.PopEarliest().Timestamp())
	}

	// THEN they come out by timestamp
	assert.Equal(t, []int64{50, 100, 150}, got)
}

func TestEventQueue_EqualTimestamps_PopInInsertionOrder(t *testing.T) {
	// GIVEN several events at the same timestamp with different types
	p := NewProcess(1, 0, 100, 100, 0)
	q := NewEventQueue()
	first := NewIOEndEvent(10, p)
	second := NewArrivalEvent(10)
	third := NewQuantumExpiryEvent(10, p)
	q.Insert(first)
	q.Insert(second)
	q.Insert(third)

	// THEN FIFO among equal timestamps, independent of type
	assert.Same(t, first, q.PopEarliest())
	assert.Same(t, second, q.PopEarliest())
	assert.Same(t, third, q.PopEarliest())
}

func TestEventQueue_TieBreak_SurvivesInterleavedInserts(t *testing.T) {
	// GIVEN ties inserted before and after an earlier event was popped
	q := NewEventQueue()
	a := NewArrivalEvent(20)
	q.Insert(a)
	q.Insert(NewArrivalEvent(5))
	q.PopEarliest()
	b := NewArrivalEvent(20)
	q.Insert(b)

	// THEN the older tie still pops first
	assert.Same(t, a, q.PopEarliest())
	assert.Same(t, b, q.PopEarliest())
}

func TestEventQueue_PopEarliest_Empty_Panics(t *testing.T) {
	q := NewEventQueue()
	require.True(t, q.IsEmpty())
	assert.Panics(t, func() { q.PopEarliest() })
}

func TestEventQueue_Insert_Nil_Panics(t *testing.T) {
	q := NewEventQueue()
	assert.Panics(t, func() { q.Insert(nil) })
}

func TestEventQueue_Peek_DoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.Peek())

	ev := NewArrivalEvent(7)
	q.Insert(ev)

	assert.Same(t, ev, q.Peek())
	assert.Equal(t, 1, q.Len())
}

func TestEventType_String(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{ProcessArrival, "NEW_PROCESS"},
		{SwitchProcess, "SWITCH_PROCESS"},
		{EndProcess, "END_PROCESS"},
		{IORequest, "IO_REQUEST"},
		{EndIO, "END_IO"},
		{EventType(42), "EventType(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestEventConstructors_TypeAndProcess(t *testing.T) {
	p := NewProcess(3, 0, 100, 100, 0)
	tests := []struct {
		ev      Event
		want    EventType
		process *Process
	}{
		{NewArrivalEvent(1), ProcessArrival, nil},
		{NewQuantumExpiryEvent(2, p), SwitchProcess, p},
		{NewProcessEndEvent(3, p), EndProcess, p},
		{NewIORequestEvent(4, p), IORequest, p},
		{NewIOEndEvent(5, p), EndIO, p},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.Type())
		assert.Equal(t, tt.process, tt.ev.Process())
	}
}

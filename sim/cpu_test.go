package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideNext(t *testing.T) {
	tests := []struct {
		name                     string
		quantum, remaining, toIO int64
		wantType                 EventType
		wantDelay                int64
	}{
		{"io before quantum and before end", 200, 300, 120, IORequest, 120},
		{"ends before io trigger", 200, 100, 120, EndProcess, 100},
		{"io trigger equals remaining ends instead", 200, 120, 120, EndProcess, 120},
		{"io trigger equals quantum requests io", 200, 300, 200, IORequest, 200},
		{"quantum expires first", 100, 250, 1000, SwitchProcess, 100},
		{"fits in last quantum", 100, 50, 1000, EndProcess, 50},
		{"remaining equals quantum ends", 100, 100, 1000, EndProcess, 100},
		{"zero io trigger requests io immediately", 100, 50, 0, IORequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, delay := decideNext(tt.quantum, tt.remaining, tt.toIO)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantDelay, delay)
		})
	}
}

func TestCPU_NextEvent_IOInterleave(t *testing.T) {
	// GIVEN demand 300, I/O after 120, quantum 200
	cpu := NewCPU(200, NewStatistics())
	p := NewProcess(1, 0, 100, 300, 0)
	p.TimeToNextIO = 120

	// WHEN the event for a dispatch at clock 1000 is built
	ev := cpu.NextEvent(p, 1000)

	// THEN it is an IO_REQUEST at clock+120, not a SWITCH_PROCESS
	assert.Equal(t, IORequest, ev.Type())
	assert.Equal(t, int64(1120), ev.Timestamp())
	assert.Same(t, p, ev.Process())
}

func TestCPU_DispatchNext_EmptyQueue_StaysIdle(t *testing.T) {
	stats := NewStatistics()
	cpu := NewCPU(100, stats)

	assert.Nil(t, cpu.DispatchNext(0))
	assert.True(t, cpu.IsIdle())
	assert.Equal(t, int64(0), stats.CPUDispatches)
}

func TestCPU_DispatchNext_WhileRunning_Panics(t *testing.T) {
	cpu := NewCPU(100, NewStatistics())
	cpu.Enqueue(NewProcess(1, 0, 100, 300, 0), 0)
	cpu.Enqueue(NewProcess(2, 0, 100, 300, 0), 0)
	cpu.DispatchNext(0)

	assert.Panics(t, func() { cpu.DispatchNext(0) })
}

func TestCPU_Preempt_ReinsertsAtTail(t *testing.T) {
	// GIVEN process 1 running and process 2 ready
	stats := NewStatistics()
	cpu := NewCPU(100, stats)
	p1 := NewProcess(1, 0, 100, 300, 0)
	p1.TimeToNextIO = farFuture
	p2 := NewProcess(2, 0, 100, 300, 0)
	cpu.Enqueue(p1, 0)
	cpu.Enqueue(p2, 0)
	require.Same(t, p1, cpu.DispatchNext(0))

	// WHEN the quantum expires
	got := cpu.Preempt(100)

	// THEN p1 is charged exactly one quantum and queued behind p2
	assert.Same(t, p1, got)
	assert.Equal(t, int64(200), p1.RemainingCPU)
	assert.Equal(t, farFuture-100, p1.TimeToNextIO)
	assert.Equal(t, StateReady, p1.State)
	assert.True(t, cpu.IsIdle())
	assert.Same(t, p2, cpu.DispatchNext(100))
	assert.Same(t, p1, cpu.ready.Peek())
	assert.Equal(t, int64(1), stats.ProcessSwitches)
	assert.Equal(t, int64(1), stats.CPUQueueSamples)
	assert.Equal(t, int64(1), stats.CPUQueueLengthSum)
}

func TestCPU_BlockForIO_ChargesTimeToTrigger(t *testing.T) {
	cpu := NewCPU(200, NewStatistics())
	p := NewProcess(1, 0, 100, 300, 0)
	p.TimeToNextIO = 120
	cpu.Enqueue(p, 0)
	cpu.DispatchNext(0)

	got := cpu.BlockForIO(120)

	assert.Same(t, p, got)
	assert.Equal(t, int64(180), p.RemainingCPU)
	assert.Equal(t, int64(0), p.TimeToNextIO)
	assert.Equal(t, int64(120), p.TimeInCPU)
	assert.True(t, cpu.IsIdle())
}

func TestCPU_Terminate_CompletesProcess(t *testing.T) {
	cpu := NewCPU(200, NewStatistics())
	p := NewProcess(1, 0, 100, 150, 0)
	p.TimeToNextIO = farFuture
	cpu.Enqueue(p, 0)
	cpu.DispatchNext(0)

	cpu.Terminate(150)

	assert.Equal(t, int64(0), p.RemainingCPU)
	assert.Equal(t, StateCompleted, p.State)
	assert.Panics(t, func() { cpu.Terminate(150) }, "terminating with idle CPU")
}

func TestCPU_Enqueue_TracksLargestQueue(t *testing.T) {
	stats := NewStatistics()
	cpu := NewCPU(100, stats)
	for id := int64(1); id <= 3; id++ {
		cpu.Enqueue(NewProcess(id, 0, 100, 100, 0), 0)
	}
	cpu.DispatchNext(0)

	assert.Equal(t, int64(3), stats.LargestCPUQueue)
}

func TestCPU_TimePassed_CountsOnlyBusyTime(t *testing.T) {
	stats := NewStatistics()
	cpu := NewCPU(100, stats)

	cpu.TimePassed(40)
	cpu.Enqueue(NewProcess(1, 0, 100, 100, 0), 40)
	cpu.DispatchNext(40)
	cpu.TimePassed(25)

	assert.Equal(t, int64(25), stats.CPUBusyTime)
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRandomWorkload(cfg Config) *RandomWorkload {
	return NewRandomWorkload(cfg, NewPartitionedRNG(NewSimulationKey(cfg.Seed)))
}

func TestRandomWorkload_NewProcess_WithinRanges(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestRandomWorkload(cfg)

	for id := int64(1); id <= 500; id++ {
		p := w.NewProcess(id, 0)
		assert.GreaterOrEqual(t, p.MemoryNeeded, int64(minProcessMemory))
		assert.Less(t, p.MemoryNeeded, cfg.MemorySize/4)
		assert.GreaterOrEqual(t, p.CPUTimeNeeded, int64(minProcessCPUTime))
		assert.Less(t, p.CPUTimeNeeded, int64(minProcessCPUTime+processCPUTimeSpan))
		assert.GreaterOrEqual(t, p.AvgIOInterval, p.CPUTimeNeeded/100)
		assert.LessOrEqual(t, p.AvgIOInterval, p.CPUTimeNeeded*maxIOIntervalPct/100)

		io := w.TimeToNextIO(p)
		assert.GreaterOrEqual(t, io, int64(0))
		assert.Less(t, io, 2*p.AvgIOInterval+1)
	}
}

func TestRandomWorkload_Intervals_WithinRanges(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestRandomWorkload(cfg)

	for i := 0; i < 500; i++ {
		a := w.ArrivalInterval()
		assert.GreaterOrEqual(t, a, int64(1), "arrivals are never simultaneous")
		assert.LessOrEqual(t, a, 1+2*cfg.AvgArrivalInterval)

		s := w.IOServiceTime()
		assert.GreaterOrEqual(t, s, int64(0))
		assert.LessOrEqual(t, s, 2*cfg.AvgIOTime)
	}
}

func TestRandomWorkload_SameSeed_SameDraws(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestRandomWorkload(cfg)
	b := newTestRandomWorkload(cfg)

	for id := int64(1); id <= 20; id++ {
		pa, pb := a.NewProcess(id, 0), b.NewProcess(id, 0)
		assert.Equal(t, pa.MemoryNeeded, pb.MemoryNeeded)
		assert.Equal(t, pa.CPUTimeNeeded, pb.CPUTimeNeeded)
		assert.Equal(t, a.ArrivalInterval(), b.ArrivalInterval())
		assert.Equal(t, a.IOServiceTime(), b.IOServiceTime())
	}
}

func TestRandomWorkload_IODrawsDoNotShiftArrivals(t *testing.T) {
	// GIVEN two workloads with the same seed
	cfg := DefaultConfig()
	a := newTestRandomWorkload(cfg)
	b := newTestRandomWorkload(cfg)

	// WHEN only one of them draws I/O service times
	for i := 0; i < 10; i++ {
		a.IOServiceTime()
	}

	// THEN the arrival sequence is unaffected
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.ArrivalInterval(), b.ArrivalInterval())
	}
}

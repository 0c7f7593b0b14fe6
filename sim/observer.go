package sim

import "github.com/sirupsen/logrus"

// Observer receives one-way notifications after each state change, e.g. to
// drive a display. Observers only ever see copies of process state and have no
// way to alter the run.
type Observer interface {
	// TimePassed reports that the clock advanced by delta ticks.
	TimePassed(delta int64)
	// CPUActive reports the process now on the CPU; nil means idle.
	CPUActive(p *ProcessSnapshot)
	// IOActive reports the process now on the I/O device; nil means idle.
	IOActive(p *ProcessSnapshot)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) TimePassed(int64)           {}
func (NopObserver) CPUActive(*ProcessSnapshot) {}
func (NopObserver) IOActive(*ProcessSnapshot)  {}

// LogObserver reports notifications through logrus at trace level.
type LogObserver struct {
	Logger *logrus.Entry
}

// NewLogObserver creates a LogObserver that logs through entry.
func NewLogObserver(entry *logrus.Entry) *LogObserver {
	return &LogObserver{Logger: entry}
}

func (o *LogObserver) TimePassed(delta int64) {
	if delta > 0 {
		o.Logger.Tracef("time passed: %d ticks", delta)
	}
}

func (o *LogObserver) CPUActive(p *ProcessSnapshot) {
	if p == nil {
		o.Logger.Trace("CPU idle")
		return
	}
	o.Logger.Tracef("CPU running process %d (remaining %d)", p.ID, p.RemainingCPU)
}

func (o *LogObserver) IOActive(p *ProcessSnapshot) {
	if p == nil {
		o.Logger.Trace("I/O device idle")
		return
	}
	o.Logger.Tracef("I/O device serving process %d", p.ID)
}

package sim

// IODevice is a single serial I/O device with a FIFO wait line.
type IODevice struct {
	queue   *ProcessQueue
	current *Process
	stats   *Statistics
}

// NewIODevice creates an idle device.
func NewIODevice(stats *Statistics) *IODevice {
	return &IODevice{
		queue: &ProcessQueue{},
		stats: stats,
	}
}

// Current returns the process using the device, or nil when idle.
func (d *IODevice) Current() *Process { return d.current }

// IsIdle reports whether the device is free.
func (d *IODevice) IsIdle() bool { return d.current == nil }

// QueueLen returns the number of processes waiting for the device.
func (d *IODevice) QueueLen() int { return d.queue.Len() }

// Request hands p to the device. It returns true if p started I/O right away,
// false if it joined the wait line.
func (d *IODevice) Request(p *Process, clock int64) bool {
	if d.current == nil {
		d.current = p
		p.EnteredIO(clock)
		return true
	}
	d.queue.Enqueue(p)
	p.EnteredIOQueue(clock)
	d.stats.ObserveIOQueue(d.queue.Len())
	return false
}

// Finish takes the served process off the device.
func (d *IODevice) Finish(clock int64) *Process {
	p := d.current
	if p == nil {
		panic("IODevice.Finish: no process is doing I/O")
	}
	p.LeftIO(clock)
	d.stats.SampleIOQueue(d.queue.Len())
	d.stats.ProcessedIOOperations++
	d.current = nil
	return p
}

// StartNext moves the head of the wait line onto the idle device and returns
// it, or returns nil if nobody is waiting.
func (d *IODevice) StartNext(clock int64) *Process {
	if d.current != nil {
		panic("IODevice.StartNext: device is busy")
	}
	p := d.queue.Dequeue()
	if p == nil {
		return nil
	}
	p.LeftIOQueue(clock)
	p.EnteredIO(clock)
	d.current = p
	return p
}

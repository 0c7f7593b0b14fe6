// Package trace provides event-trace recording for post-run analysis of a simulation.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventRecord captures the system state right after one event was handled.
// Process IDs are 0 when not applicable (arrival events, idle CPU or device).
type EventRecord struct {
	Seq         int64  `yaml:"seq"`
	Clock       int64  `yaml:"clock"`
	Type        string `yaml:"type"`
	ProcessID   int64  `yaml:"process_id"`
	CPUProcess  int64  `yaml:"cpu_process"`
	IOProcess   int64  `yaml:"io_process"`
	MemoryQueue int    `yaml:"memory_queue"`
	ReadyQueue  int    `yaml:"ready_queue"`
	IOQueue     int    `yaml:"io_queue"`
	FreeMemory  int64  `yaml:"free_memory"`
}

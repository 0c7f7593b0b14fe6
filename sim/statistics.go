// Tracks run-wide performance statistics: counters, running sums and maxima
// collected by the memory unit, the CPU, the I/O device and completed processes.

package sim

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Statistics aggregates counters about one simulation run for final reporting.
// One instance is created per Simulator and injected into every component that
// updates it; it is only read once the run is over.
type Statistics struct {
	CreatedProcesses      int64 // Processes generated by NEW_PROCESS events
	CompletedProcesses    int64 // Processes that reached END_PROCESS
	ProcessSwitches       int64 // SWITCH_PROCESS events handled
	ProcessedIOOperations int64 // END_IO events handled
	CPUDispatches         int64 // Times a process was placed on the CPU

	CPUQueueLengthSum     int64 // Sum of ready-queue lengths sampled when a process leaves the CPU
	CPUQueueSamples       int64 // Number of ready-queue samples
	LargestCPUQueue       int64 // Largest ready-queue length observed
	IOQueueLengthSum      int64 // Sum of I/O-queue lengths sampled at END_IO
	IOQueueSamples        int64 // Number of I/O-queue samples
	LargestIOQueue        int64 // Largest I/O-queue length observed
	MemoryQueueLengthTime int64 // Integral of memory-queue length over time
	LargestMemoryQueue    int64 // Largest memory-queue length observed
	CPUBusyTime           int64 // Time the CPU spent running a process

	TotalTimeWaitingForMemory int64
	TotalTimeWaitingForCPU    int64
	TotalTimeInCPU            int64
	TotalTimeWaitingForIO     int64
	TotalTimeInIO             int64
	TotalTimesInReadyQueue    int64
	TotalTimesInIOQueue       int64
}

// NewStatistics returns a zeroed accumulator.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// SampleCPUQueue records the ready-queue length at a CPU departure.
func (s *Statistics) SampleCPUQueue(length int) {
	s.CPUQueueLengthSum += int64(length)
	s.CPUQueueSamples++
}

// SampleIOQueue records the I/O-queue length at an I/O completion.
func (s *Statistics) SampleIOQueue(length int) {
	s.IOQueueLengthSum += int64(length)
	s.IOQueueSamples++
}

// ObserveCPUQueue updates the ready-queue maximum.
func (s *Statistics) ObserveCPUQueue(length int) {
	s.LargestCPUQueue = max(s.LargestCPUQueue, int64(length))
}

// ObserveIOQueue updates the I/O-queue maximum.
func (s *Statistics) ObserveIOQueue(length int) {
	s.LargestIOQueue = max(s.LargestIOQueue, int64(length))
}

// ObserveMemoryQueue updates the memory-queue maximum.
func (s *Statistics) ObserveMemoryQueue(length int) {
	s.LargestMemoryQueue = max(s.LargestMemoryQueue, int64(length))
}

// Summary holds the derived figures of a finished run.
// Ratios whose denominator is zero are reported as 0.
type Summary struct {
	CreatedProcesses      int64   `yaml:"created_processes"`
	CompletedProcesses    int64   `yaml:"completed_processes"`
	ProcessSwitches       int64   `yaml:"process_switches"`
	ProcessedIOOperations int64   `yaml:"processed_io_operations"`
	CPUDispatches         int64   `yaml:"cpu_dispatches"`
	AvgCPUQueueLength     float64 `yaml:"avg_cpu_queue_length"`
	LargestCPUQueue       int64   `yaml:"largest_cpu_queue"`
	AvgIOQueueLength      float64 `yaml:"avg_io_queue_length"`
	LargestIOQueue        int64   `yaml:"largest_io_queue"`
	AvgMemoryQueueLength  float64 `yaml:"avg_memory_queue_length"`
	LargestMemoryQueue    int64   `yaml:"largest_memory_queue"`
	Throughput            float64 `yaml:"throughput"`
	CPUBusyTime           int64   `yaml:"cpu_busy_time"`
	CPUUtilization        float64 `yaml:"cpu_utilization"`
	AvgTimeWaitingForMem  float64 `yaml:"avg_time_waiting_for_memory"`
	AvgTimeWaitingForCPU  float64 `yaml:"avg_time_waiting_for_cpu"`
	AvgTimeInCPU          float64 `yaml:"avg_time_in_cpu"`
	AvgTimeWaitingForIO   float64 `yaml:"avg_time_waiting_for_io"`
	AvgTimeInIO           float64 `yaml:"avg_time_in_io"`
	AvgTimesInReadyQueue  float64 `yaml:"avg_times_in_ready_queue"`
	AvgTimesInIOQueue     float64 `yaml:"avg_times_in_io_queue"`
}

func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Summarize derives averages over a run of the given horizon.
// Per-process means are taken over completed processes.
func (s *Statistics) Summarize(horizon int64) Summary {
	done := s.CompletedProcesses
	return Summary{
		CreatedProcesses:      s.CreatedProcesses,
		CompletedProcesses:    done,
		ProcessSwitches:       s.ProcessSwitches,
		ProcessedIOOperations: s.ProcessedIOOperations,
		CPUDispatches:         s.CPUDispatches,
		AvgCPUQueueLength:     ratio(s.CPUQueueLengthSum, s.CPUQueueSamples),
		LargestCPUQueue:       s.LargestCPUQueue,
		AvgIOQueueLength:      ratio(s.IOQueueLengthSum, s.IOQueueSamples),
		LargestIOQueue:        s.LargestIOQueue,
		AvgMemoryQueueLength:  ratio(s.MemoryQueueLengthTime, horizon),
		LargestMemoryQueue:    s.LargestMemoryQueue,
		Throughput:            ratio(done, horizon),
		CPUBusyTime:           s.CPUBusyTime,
		CPUUtilization:        ratio(s.CPUBusyTime, horizon),
		AvgTimeWaitingForMem:  ratio(s.TotalTimeWaitingForMemory, done),
		AvgTimeWaitingForCPU:  ratio(s.TotalTimeWaitingForCPU, done),
		AvgTimeInCPU:          ratio(s.TotalTimeInCPU, done),
		AvgTimeWaitingForIO:   ratio(s.TotalTimeWaitingForIO, done),
		AvgTimeInIO:           ratio(s.TotalTimeInIO, done),
		AvgTimesInReadyQueue:  ratio(s.TotalTimesInReadyQueue, done),
		AvgTimesInIOQueue:     ratio(s.TotalTimesInIOQueue, done),
	}
}

// Report renders the end-of-run statistics as text. It does not mutate s, so
// calling it twice without an intervening event yields identical output.
func (s *Statistics) Report(horizon int64) string {
	sum := s.Summarize(horizon)
	var sb strings.Builder
	sb.WriteString("=== Simulation Statistics ===\n")
	fmt.Fprintf(&sb, "Simulation length                    : %d ticks\n", horizon)
	fmt.Fprintf(&sb, "Processes created                    : %d\n", sum.CreatedProcesses)
	fmt.Fprintf(&sb, "Processes completed                  : %d\n", sum.CompletedProcesses)
	fmt.Fprintf(&sb, "Process switches                     : %d\n", sum.ProcessSwitches)
	fmt.Fprintf(&sb, "Processed I/O operations             : %d\n", sum.ProcessedIOOperations)
	fmt.Fprintf(&sb, "CPU dispatches                       : %d\n", sum.CPUDispatches)
	fmt.Fprintf(&sb, "Throughput                           : %.6f processes/tick\n", sum.Throughput)
	fmt.Fprintf(&sb, "CPU busy time                        : %d ticks\n", sum.CPUBusyTime)
	fmt.Fprintf(&sb, "CPU utilization                      : %.2f%%\n", sum.CPUUtilization*100)
	sb.WriteString("--- Queues ---\n")
	fmt.Fprintf(&sb, "Largest memory queue length          : %d\n", sum.LargestMemoryQueue)
	fmt.Fprintf(&sb, "Average memory queue length          : %.4f\n", sum.AvgMemoryQueueLength)
	fmt.Fprintf(&sb, "Largest CPU queue length             : %d\n", sum.LargestCPUQueue)
	fmt.Fprintf(&sb, "Average CPU queue length             : %.4f\n", sum.AvgCPUQueueLength)
	fmt.Fprintf(&sb, "Largest I/O queue length             : %d\n", sum.LargestIOQueue)
	fmt.Fprintf(&sb, "Average I/O queue length             : %.4f\n", sum.AvgIOQueueLength)
	sb.WriteString("--- Per completed process ---\n")
	fmt.Fprintf(&sb, "Average time waiting for memory      : %.2f ticks\n", sum.AvgTimeWaitingForMem)
	fmt.Fprintf(&sb, "Average time waiting for CPU         : %.2f ticks\n", sum.AvgTimeWaitingForCPU)
	fmt.Fprintf(&sb, "Average time spent on CPU            : %.2f ticks\n", sum.AvgTimeInCPU)
	fmt.Fprintf(&sb, "Average time waiting for I/O         : %.2f ticks\n", sum.AvgTimeWaitingForIO)
	fmt.Fprintf(&sb, "Average time doing I/O               : %.2f ticks\n", sum.AvgTimeInIO)
	fmt.Fprintf(&sb, "Average times placed in ready queue  : %.2f\n", sum.AvgTimesInReadyQueue)
	fmt.Fprintf(&sb, "Average times placed in I/O queue    : %.2f\n", sum.AvgTimesInIOQueue)
	return sb.String()
}

// WriteYAML writes the summary for the given horizon to w as a YAML document.
func (s *Statistics) WriteYAML(w io.Writer, horizon int64) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Summarize(horizon)); err != nil {
		return fmt.Errorf("encoding statistics summary: %w", err)
	}
	return enc.Close()
}

// Print writes the report to w.
func (s *Statistics) Print(w io.Writer, horizon int64) error {
	_, err := io.WriteString(w, s.Report(horizon))
	return err
}

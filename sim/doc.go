// Package sim provides the discrete-event engine that simulates a process's
// lifecycle in an operating system: memory admission, Round-Robin CPU
// scheduling, I/O on a single serial device, and termination.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (memory-wait → ready ⇄ running ⇄ I/O → completed)
//   - event.go: the five event types that drive the simulation
//   - simulator.go: the event loop and one handler per event type
//   - cpu.go: the quantum decision that picks the event ending each dispatch
//
// # Time
//
// All time is virtual. The clock only jumps to the timestamp of the next
// event; nothing sleeps and nothing runs concurrently.
//
// # Extension points
//   - Workload: every random quantity (arrivals, process shapes, I/O times)
//   - Observer: one-way notifications for displays and logging
//   - sim/trace: per-event records for post-run analysis
package sim

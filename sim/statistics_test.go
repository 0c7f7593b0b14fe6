package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStatistics_Report_NoCompletedProcesses_PrintsZeros(t *testing.T) {
	// GIVEN statistics of a run in which nothing completed
	stats := NewStatistics()
	stats.CreatedProcesses = 3

	// WHEN the report is rendered
	report := stats.Report(1000)

	// THEN averages are zero rather than NaN
	assert.NotContains(t, report, "NaN")
	assert.Contains(t, report, "Processes created                    : 3")
	assert.Contains(t, report, "Average time waiting for memory      : 0.00 ticks")
	assert.Contains(t, report, "Average CPU queue length             : 0.0000")
}

func TestStatistics_Summarize_Averages(t *testing.T) {
	stats := NewStatistics()
	stats.CompletedProcesses = 4
	stats.TotalTimeWaitingForMemory = 100
	stats.TotalTimeInCPU = 1000
	stats.TotalTimesInReadyQueue = 10
	stats.CPUBusyTime = 750
	stats.MemoryQueueLengthTime = 500
	stats.SampleCPUQueue(2)
	stats.SampleCPUQueue(4)
	stats.SampleIOQueue(1)

	sum := stats.Summarize(1000)

	assert.InDelta(t, 25.0, sum.AvgTimeWaitingForMem, 1e-9)
	assert.InDelta(t, 250.0, sum.AvgTimeInCPU, 1e-9)
	assert.InDelta(t, 2.5, sum.AvgTimesInReadyQueue, 1e-9)
	assert.InDelta(t, 0.75, sum.CPUUtilization, 1e-9)
	assert.InDelta(t, 0.5, sum.AvgMemoryQueueLength, 1e-9)
	assert.InDelta(t, 3.0, sum.AvgCPUQueueLength, 1e-9)
	assert.InDelta(t, 1.0, sum.AvgIOQueueLength, 1e-9)
	assert.InDelta(t, 0.004, sum.Throughput, 1e-9)
}

func TestStatistics_Report_IsIdempotent(t *testing.T) {
	stats := NewStatistics()
	stats.CompletedProcesses = 2
	stats.TotalTimeInCPU = 300
	stats.SampleCPUQueue(3)

	first := stats.Report(500)
	second := stats.Report(500)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), stats.CPUQueueSamples, "rendering must not sample")
}

func TestStatistics_Print_WritesReport(t *testing.T) {
	stats := NewStatistics()
	var buf bytes.Buffer

	require.NoError(t, stats.Print(&buf, 100))

	assert.True(t, strings.HasPrefix(buf.String(), "=== Simulation Statistics ==="))
	assert.Equal(t, stats.Report(100), buf.String())
}

func TestStatistics_WriteYAML_MatchesSummary(t *testing.T) {
	// GIVEN statistics of a run with two completed processes
	stats := NewStatistics()
	stats.CreatedProcesses = 3
	stats.CompletedProcesses = 2
	stats.TotalTimeInCPU = 400
	stats.CPUBusyTime = 400

	// WHEN written as YAML
	var buf bytes.Buffer
	require.NoError(t, stats.WriteYAML(&buf, 1000))

	// THEN decoding gives back the summary
	var decoded Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, stats.Summarize(1000), decoded)
	assert.Contains(t, buf.String(), "avg_time_in_cpu: 200")
}

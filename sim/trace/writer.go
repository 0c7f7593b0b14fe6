package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

var csvHeader = []string{
	"seq", "clock", "type", "process_id", "cpu_process", "io_process",
	"memory_queue", "ready_queue", "io_queue", "free_memory",
}

// WriteCSV writes every record of st as one CSV row after a header row.
func WriteCSV(w io.Writer, st *SimulationTrace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}
	if st != nil {
		for _, r := range st.Records {
			row := []string{
				strconv.FormatInt(r.Seq, 10),
				strconv.FormatInt(r.Clock, 10),
				r.Type,
				strconv.FormatInt(r.ProcessID, 10),
				strconv.FormatInt(r.CPUProcess, 10),
				strconv.FormatInt(r.IOProcess, 10),
				strconv.Itoa(r.MemoryQueue),
				strconv.Itoa(r.ReadyQueue),
				strconv.Itoa(r.IOQueue),
				strconv.FormatInt(r.FreeMemory, 10),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing trace record %d: %w", r.Seq, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryYAML writes the summary as a YAML document.
func WriteSummaryYAML(w io.Writer, summary *TraceSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encoding trace summary: %w", err)
	}
	return enc.Close()
}

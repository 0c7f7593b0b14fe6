package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	sim "github.com/inference-sim/procsim/sim"
)

// Fallback values for console input that cannot be used as a number.
const (
	unreadableInput = 100 // the line could not be read at all
	malformedInput  = 0   // the line was read but is not an integer
)

// paramReader reads one integer per line from the console.
type paramReader struct {
	r         *bufio.Reader
	exhausted bool // set once the input is closed or fails
}

func newParamReader(in io.Reader) *paramReader {
	return &paramReader{r: bufio.NewReader(in)}
}

// readLong never fails: an unreadable line yields unreadableInput and a
// line that does not parse yields malformedInput.
func (pr *paramReader) readLong() int64 {
	line, err := pr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		pr.exhausted = true
		return unreadableInput
	}
	v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return malformedInput
	}
	return v
}

// readAtLeast re-prompts until the value reaches least. If the input runs dry
// first, fallback is used.
func (pr *paramReader) readAtLeast(out io.Writer, least, fallback int64, retry string) int64 {
	v := pr.readLong()
	for v < least && !pr.exhausted {
		fmt.Fprint(out, retry)
		v = pr.readLong()
	}
	if v < least {
		logrus.Warnf("Input ended before a value >= %d was given; using %d", least, fallback)
		return fallback
	}
	return v
}

// promptConfig asks for the five simulation parameters in order. Values not
// covered by the prompts (the seed) are kept from base.
func promptConfig(in io.Reader, out io.Writer, base sim.Config) sim.Config {
	pr := newParamReader(in)
	cfg := base

	fmt.Fprintln(out, "Please input system parameters: ")

	fmt.Fprint(out, "Memory size (KB): ")
	cfg.MemorySize = pr.readAtLeast(out, sim.MinMemorySize, base.MemorySize,
		fmt.Sprintf("Memory size must be at least %d KB. Specify memory size (KB): ", sim.MinMemorySize))

	fmt.Fprint(out, "Maximum uninterrupted cpu time for a process (ms): ")
	cfg.MaxCPUTime = pr.readAtLeast(out, 1, base.MaxCPUTime,
		"Maximum cpu time must be at least 1 ms. Specify maximum cpu time (ms): ")

	fmt.Fprint(out, "Average I/O operation time (ms): ")
	cfg.AvgIOTime = pr.readAtLeast(out, 0, base.AvgIOTime,
		"Average I/O time must not be negative. Specify average I/O operation time (ms): ")

	fmt.Fprint(out, "Simulation length (ms): ")
	cfg.SimulationLength = pr.readAtLeast(out, 1, base.SimulationLength,
		"Simulation length must be at least 1 ms. Specify simulation length (ms): ")

	fmt.Fprint(out, "Average time between process arrivals (ms): ")
	cfg.AvgArrivalInterval = pr.readAtLeast(out, 0, base.AvgArrivalInterval,
		"Average arrival interval must not be negative. Specify average time between process arrivals (ms): ")

	fmt.Fprintln(out)
	return cfg
}

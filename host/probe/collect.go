package probe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
)

// idle wait between console reads that came back empty
const pollInterval = 10 * time.Millisecond

// Collector reads console output until it has Want timer samples
type Collector struct {
	Want    int
	Timeout time.Duration

	OnLine   func(line string) // every complete line, parsed or not
	OnReport func(Report)      // every self-test report
	OnError  func(error)       // malformed report lines, which are skipped
}

// Collect reads from r. A read that hits EOF is treated as a serial read
// timeout and retried. Timeout bounds the whole collection, including a
// console that keeps printing lines without reports.
func (c *Collector) Collect(r io.Reader) (*Summary, error) {
	sum := NewSummary()
	br := bufio.NewReader(r)
	deadline := time.Now().Add(c.Timeout)
	partial := ""

	for sum.Samples() < c.Want {
		if time.Now().After(deadline) {
			return sum, fmt.Errorf("timed out after %v with %d of %d samples", c.Timeout, sum.Samples(), c.Want)
		}

		chunk, err := br.ReadString('\n')
		partial += chunk
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return sum, fmt.Errorf("reading console: %w", err)
			}
			time.Sleep(pollInterval)
			continue
		}

		line := partial
		partial = ""
		if c.OnLine != nil {
			c.OnLine(line)
		}
		rep, err := ParseLine(line)
		if err != nil {
			if c.OnError != nil {
				c.OnError(err)
			}
			continue
		}
		if rep.Kind == KindNone {
			continue
		}
		sum.Add(rep)
		if c.OnReport != nil {
			c.OnReport(rep)
		}
	}
	return sum, nil
}

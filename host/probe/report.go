// Package probe turns the self-test console output of a board into timing
// statistics.
package probe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"coretime/selftest"
)

// Kind says what a report line carried
type Kind int

const (
	KindNone Kind = iota
	KindTimer
	KindCalib
)

// Report is one parsed console line
type Report struct {
	Kind   Kind
	Sample selftest.Sample
	Calib  selftest.Calibration
}

// ParseLine parses one console line. Lines that are not self-test reports
// (boot chatter, debug output) return KindNone and no error; a report whose
// checksum does not match is an error.
func ParseLine(line string) (Report, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, selftest.TimerTag) && !strings.HasPrefix(line, selftest.CalibTag) {
		return Report{}, nil
	}

	body, ok := selftest.Verify(line)
	if !ok {
		return Report{}, fmt.Errorf("checksum mismatch in %q", line)
	}

	tokens, err := shlex.Split(body)
	if err != nil {
		return Report{}, fmt.Errorf("tokenizing %q: %w", line, err)
	}

	fields := make(map[string]uint64, len(tokens)-1)
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return Report{}, fmt.Errorf("malformed field %q in %q", tok, line)
		}
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Report{}, fmt.Errorf("field %s: %w", key, err)
		}
		fields[key] = n
	}

	need := func(keys ...string) error {
		for _, k := range keys {
			if _, ok := fields[k]; !ok {
				return fmt.Errorf("missing field %s in %q", k, line)
			}
		}
		return nil
	}

	switch tokens[0] {
	case selftest.TimerTag:
		if err := need("core", "freq", "armed_us", "elapsed_us"); err != nil {
			return Report{}, err
		}
		return Report{Kind: KindTimer, Sample: selftest.Sample{
			Core:      uint8(fields["core"]),
			FreqHz:    fields["freq"],
			ArmedUS:   fields["armed_us"],
			ElapsedUS: fields["elapsed_us"],
		}}, nil
	case selftest.CalibTag:
		if err := need("core", "cycles", "elapsed_us"); err != nil {
			return Report{}, err
		}
		return Report{Kind: KindCalib, Calib: selftest.Calibration{
			Core:      uint8(fields["core"]),
			Cycles:    fields["cycles"],
			ElapsedUS: fields["elapsed_us"],
		}}, nil
	}
	return Report{}, fmt.Errorf("unknown report tag %q", tokens[0])
}

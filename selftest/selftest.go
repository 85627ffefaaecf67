// Package selftest measures the timer against itself: arm a one-shot, poll
// until it is delivered, and report how long that took. The same code runs
// on the board and on a simulated board; reports are single text lines that
// host/probe parses.
package selftest

import (
	"math"

	"coretime/debug"
	"coretime/deverr"
	"coretime/hw/arch"
	"coretime/timer"
)

// Line prefixes
const (
	TimerTag = "[TIMER]"
	CalibTag = "[CALIB]"
)

// poll budget past the deadline before the alarm is declared lost
const pollSlackUS = 1000

// DefaultDurations is the arm sequence the firmware runs
var DefaultDurations = []uint64{10, 100, 1000, 10000, 100000, 1000000}

// Sample is one arm-and-poll measurement
type Sample struct {
	Core      uint8
	FreqHz    uint64
	ArmedUS   uint64
	ElapsedUS uint64
}

// Line formats the sample as a sealed report line
func (s Sample) Line() string {
	return Seal(TimerTag +
		" core=" + debug.Utoa(uint64(s.Core)) +
		" freq=" + debug.Utoa(s.FreqHz) +
		" armed_us=" + debug.Utoa(s.ArmedUS) +
		" elapsed_us=" + debug.Utoa(s.ElapsedUS))
}

// Calibration is the wall time of a no-op loop
type Calibration struct {
	Core      uint8
	Cycles    uint64
	ElapsedUS uint64
}

// Line formats the calibration as a sealed report line
func (c Calibration) Line() string {
	return Seal(CalibTag +
		" core=" + debug.Utoa(uint64(c.Core)) +
		" cycles=" + debug.Utoa(c.Cycles) +
		" elapsed_us=" + debug.Utoa(c.ElapsedUS))
}

// Runner runs the self-test on one core
type Runner struct {
	Timer timer.BasicTimer
	Core  uint8        // reported core number
	Emit  func(string) // receives one line per result; may be nil
}

func (r *Runner) emit(line string) {
	if r.Emit != nil {
		r.Emit(line)
	}
}

// Measure arms the timer us microseconds out and polls until the interrupt
// is pending. The timer is stopped again before returning; a failing Stop
// is reported even though the line was already emitted.
func (r *Runner) Measure(us uint64) (s Sample, err error) {
	const op = "selftest.Measure"
	t := r.Timer

	if err := t.Init(); err != nil {
		return Sample{}, err
	}
	defer func() {
		if stopErr := t.Stop(); stopErr != nil && err == nil {
			s, err = Sample{}, stopErr
		}
	}()

	start := t.Read()
	if err := t.TickIn(us); err != nil {
		return Sample{}, err
	}

	limit := 2*us + pollSlackUS
	for !t.IsPending() {
		if t.Read()-start > limit {
			debug.Async("selftest: no interrupt after " + debug.Utoa(limit) + "us")
			return Sample{}, deverr.New(op, deverr.ErrIo, "alarm of "+debug.Utoa(us)+"us never delivered")
		}
	}

	now := t.Read()
	elapsed := now - start
	debug.RecordTiming(debug.EvtPending, r.Core, uint32(now),
		uint32(min(us, math.MaxUint32)), uint32(min(elapsed, math.MaxUint32)))

	s = Sample{
		Core:      r.Core,
		FreqHz:    t.Freq(),
		ArmedUS:   us,
		ElapsedUS: elapsed,
	}
	r.emit(s.Line())
	return s, nil
}

// Run measures every duration in turn and stops at the first failure
func (r *Runner) Run(durations []uint64) ([]Sample, error) {
	samples := make([]Sample, 0, len(durations))
	for _, us := range durations {
		s, err := r.Measure(us)
		if err != nil {
			return samples, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// Calibrate times arch.DelayCycles(cycles) with the timer
func (r *Runner) Calibrate(cycles uint64) (Calibration, error) {
	if err := r.Timer.Init(); err != nil {
		return Calibration{}, err
	}
	start := r.Timer.Read()
	arch.DelayCycles(cycles)
	c := Calibration{
		Core:      r.Core,
		Cycles:    cycles,
		ElapsedUS: r.Timer.Read() - start,
	}
	r.emit(c.Line())
	return c, nil
}

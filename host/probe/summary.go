package probe

import (
	"fmt"
	"sort"

	"coretime/selftest"
)

// Stats aggregates the lateness of alarms armed for one duration. Lateness
// is elapsed minus armed, in microseconds; negative means the alarm fired
// early, which is a bug.
type Stats struct {
	ArmedUS uint64
	Count   int
	MinLate int64
	MaxLate int64
	sumLate int64
}

// MeanLate is the average lateness
func (s *Stats) MeanLate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.sumLate) / float64(s.Count)
}

// Summary collects samples from any number of cores
type Summary struct {
	byDuration map[uint64]*Stats
	freqs      map[uint64]bool
	calibs     []selftest.Calibration
	early      int
}

// NewSummary returns an empty summary
func NewSummary() *Summary {
	return &Summary{
		byDuration: make(map[uint64]*Stats),
		freqs:      make(map[uint64]bool),
	}
}

// Add records a parsed report; KindNone is ignored
func (s *Summary) Add(r Report) {
	switch r.Kind {
	case KindTimer:
		s.addSample(r.Sample)
	case KindCalib:
		s.calibs = append(s.calibs, r.Calib)
	}
}

func (s *Summary) addSample(smp selftest.Sample) {
	late := int64(smp.ElapsedUS) - int64(smp.ArmedUS)
	st, ok := s.byDuration[smp.ArmedUS]
	if !ok {
		st = &Stats{ArmedUS: smp.ArmedUS, MinLate: late, MaxLate: late}
		s.byDuration[smp.ArmedUS] = st
	}
	st.Count++
	st.sumLate += late
	st.MinLate = min(st.MinLate, late)
	st.MaxLate = max(st.MaxLate, late)
	s.freqs[smp.FreqHz] = true
	if late < 0 {
		s.early++
	}
}

// Samples is the number of timer samples added
func (s *Summary) Samples() int {
	n := 0
	for _, st := range s.byDuration {
		n += st.Count
	}
	return n
}

// Early is the number of alarms that fired before their deadline
func (s *Summary) Early() int {
	return s.early
}

// Stats returns per-duration statistics ordered by duration
func (s *Summary) Stats() []Stats {
	out := make([]Stats, 0, len(s.byDuration))
	for _, st := range s.byDuration {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArmedUS < out[j].ArmedUS })
	return out
}

// Lines renders the summary for a terminal
func (s *Summary) Lines() []string {
	var lines []string
	if len(s.freqs) > 0 {
		freqs := make([]uint64, 0, len(s.freqs))
		for f := range s.freqs {
			freqs = append(freqs, f)
		}
		sort.Slice(freqs, func(i, j int) bool { return freqs[i] < freqs[j] })
		lines = append(lines, fmt.Sprintf("counter frequency: %v Hz", freqs))
	}
	for _, st := range s.Stats() {
		lines = append(lines, fmt.Sprintf("%10dus  n=%-4d late min=%d max=%d mean=%.1f",
			st.ArmedUS, st.Count, st.MinLate, st.MaxLate, st.MeanLate()))
	}
	for _, c := range s.calibs {
		lines = append(lines, fmt.Sprintf("core %d: %d no-op cycles took %dus", c.Core, c.Cycles, c.ElapsedUS))
	}
	if s.early > 0 {
		lines = append(lines, fmt.Sprintf("WARNING: %d alarms fired early", s.early))
	}
	return lines
}

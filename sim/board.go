// Package sim models the parts of a BCM2837 that the time subsystem touches:
// one free-running counter shared by four cores, each core's physical
// generic timer, and the QA7 rows that gate the timer interrupts. A Board is
// a qa7.Bank and hands out per-core arch.Registers, so the real timer and
// interrupt code runs against it unchanged.
package sim

import (
	"sync"

	"coretime/hw/arch"
	"coretime/hw/qa7"
)

// mpidrRES1 is MPIDR_EL1 bit 31, which reads as one
const mpidrRES1 = 1 << 31

type physicalTimer struct {
	ctl      uint32 // ENABLE and IMASK; ISTATUS is derived
	compare  uint64 // CNTP_CVAL
	lastTval uint32
}

// Board is a simulated SoC. It is safe for concurrent use, typically one
// goroutine per simulated core.
type Board struct {
	mu       sync.Mutex
	name     string
	freq     uint64
	counter  uint64
	autoStep uint64
	timers   [qa7.NumCores]physicalTimer
	raised   [qa7.NumCores]uint32 // non-timer sources asserted by the test
	regs     qa7.RegisterMap
	cpus     [qa7.NumCores]CPU
}

// NewBoard builds a board from a profile
func NewBoard(p Profile) *Board {
	b := &Board{
		name:     p.Name,
		freq:     p.FrequencyHz,
		counter:  p.CounterStart,
		autoStep: p.AutoStep,
	}
	for i := range b.cpus {
		b.cpus[i] = CPU{board: b, core: qa7.Core(i)}
	}
	return b
}

// NewBoardFreq builds an anonymous board counting at hz
func NewBoardFreq(hz uint64) *Board {
	return NewBoard(Profile{Name: "custom", FrequencyHz: hz})
}

// Name returns the profile name the board was built from
func (b *Board) Name() string {
	return b.name
}

// CPU returns the register view of core. It panics on an invalid core, as
// the hardware has no such core to run on.
func (b *Board) CPU(core qa7.Core) *CPU {
	if !core.Valid() {
		panic("sim: no such core")
	}
	return &b.cpus[core]
}

// Frequency returns the value CNTFRQ_EL0 reports
func (b *Board) Frequency() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.freq
}

// SetFrequency changes the value CNTFRQ_EL0 reports. Firmware normally sets
// it once during boot; emulators often report a different value.
func (b *Board) SetFrequency(hz uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.freq = hz
}

// Counter returns the physical count without advancing it
func (b *Board) Counter() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counter
}

// SetCounter moves the counter to ticks
func (b *Board) SetCounter(ticks uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counter = ticks
}

// Advance moves the counter forward by ticks
func (b *Board) Advance(ticks uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counter += ticks
}

// SetAutoStep makes every CNTPCT_EL0 read advance the counter by ticks
// afterwards, so busy-wait loops make progress. Zero freezes the counter
// between explicit Advance calls.
func (b *Board) SetAutoStep(ticks uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.autoStep = ticks
}

// LastTimerValue returns the last value written to core's CNTP_TVAL_EL0
func (b *Board) LastTimerValue(core qa7.Core) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timers[core].lastTval
}

// TimerCondition reports whether core's physical timer condition is met,
// whether or not it is masked anywhere
func (b *Board) TimerCondition(core qa7.Core) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conditionLocked(core)
}

func (b *Board) conditionLocked(core qa7.Core) bool {
	t := &b.timers[core]
	return t.ctl&arch.TimerEnable != 0 && b.counter >= t.compare
}

// timer output line as seen by the QA7 block
func (b *Board) assertedLocked(core qa7.Core) bool {
	return b.conditionLocked(core) && b.timers[core].ctl&arch.TimerIMask == 0
}

// Raise asserts a non-timer source (mailbox, GPU, PMU, local timer) on core
func (b *Board) Raise(core qa7.Core, src qa7.Source) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raised[core] |= 1 << src
}

// Lower deasserts a source raised with Raise
func (b *Board) Lower(core qa7.Core, src qa7.Source) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raised[core] &^= 1 << src
}

func (b *Board) TimerControl(core qa7.Core) uint32 {
	return b.regs.TimerInterruptControl[core].Get()
}

func (b *Board) SetTimerControl(core qa7.Core, word uint32) {
	b.regs.TimerInterruptControl[core].Set(word)
}

// IRQSource reports the sources delivered to core as IRQ. Only the
// non-secure physical timer is modelled among the generic timers; it shows
// up when its line is asserted and the control word routes it to IRQ
// (FIQ routing takes precedence).
func (b *Board) IRQSource(core qa7.Core) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	word := b.raised[core]
	word &^= 0xF
	if b.assertedLocked(core) {
		ctl := qa7.Mask(b.regs.TimerInterruptControl[core].Get())
		src := qa7.NonSecurePhysicalTimer
		if ctl&src.Bit() != 0 && ctl&src.FIQBit() == 0 {
			word |= uint32(src.Bit())
		}
	}
	return word
}

// FIQSource reports the timer sources delivered to core as FIQ
func (b *Board) FIQSource(core qa7.Core) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	src := qa7.NonSecurePhysicalTimer
	ctl := qa7.Mask(b.regs.TimerInterruptControl[core].Get())
	if b.assertedLocked(core) && ctl&src.FIQBit() != 0 {
		return uint32(src.Bit())
	}
	return 0
}

// CPU is one core's view of the board. It implements arch.Registers.
type CPU struct {
	board *Board
	core  qa7.Core
}

func (c *CPU) Affinity() uint64 {
	return mpidrRES1 | uint64(c.core)
}

func (c *CPU) CounterFrequency() uint64 {
	return c.board.Frequency()
}

func (c *CPU) PhysicalCount() uint64 {
	b := c.board
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.counter
	b.counter += b.autoStep
	return v
}

func (c *CPU) PhysicalTimerControl() uint32 {
	b := c.board
	b.mu.Lock()
	defer b.mu.Unlock()
	ctl := b.timers[c.core].ctl
	if b.conditionLocked(c.core) {
		ctl |= arch.TimerIStatus
	}
	return ctl
}

func (c *CPU) SetPhysicalTimerControl(ctl uint32) {
	b := c.board
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timers[c.core].ctl = ctl & (arch.TimerEnable | arch.TimerIMask)
}

// SetPhysicalTimerValue sets the compare value tval ticks past the current
// count. The value is zero-extended; silicon sign-extends it.
func (c *CPU) SetPhysicalTimerValue(tval uint32) {
	b := c.board
	b.mu.Lock()
	defer b.mu.Unlock()
	t := &b.timers[c.core]
	t.compare = b.counter + uint64(tval)
	t.lastTval = tval
}

var (
	_ qa7.Bank       = (*Board)(nil)
	_ arch.Registers = (*CPU)(nil)
)

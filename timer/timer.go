// Package timer is the per-core clock and one-shot alarm built on the ARM
// generic timer. Readings are microseconds since the counter's reset; an
// alarm raises CNTPNSIRQ on the calling core through the QA7 block.
package timer

import (
	"math"
	"math/bits"

	"coretime/debug"
	"coretime/deverr"
	"coretime/hw/arch"
	"coretime/hw/qa7"
)

const usPerSecond = 1000000

// BasicTimer is the clock and alarm contract drivers depend on. Other timer
// sources on other SoCs can satisfy it.
type BasicTimer interface {
	// Freq returns the counter frequency in Hz
	Freq() uint64

	// Init unmasks the timer interrupt on the calling core and enables
	// the countdown
	Init() error

	// Stop masks local interrupt delivery on the calling core
	Stop() error

	// Read returns microseconds elapsed since the counter's reset
	Read() uint64

	// TickIn arms a one-shot interrupt us microseconds from now
	TickIn(us uint64) error

	// IsPending reports whether the alarm has fired and is deliverable
	IsPending() bool
}

// GenericTimer drives the non-secure physical generic timer of whichever
// core calls it. It keeps nothing but its two handles; frequency, count and
// compare value live in the system registers, so any number of instances may
// exist and creating one changes no hardware state.
type GenericTimer struct {
	lic  *qa7.Control
	regs arch.Registers
}

// NewGeneric binds a timer to a local interrupt controller and the system
// registers of the executing core
func NewGeneric(lic *qa7.Control, regs arch.Registers) *GenericTimer {
	return &GenericTimer{lic: lic, regs: regs}
}

// current core, read fresh on every call: the caller may have moved
func (t *GenericTimer) core() qa7.Core {
	return qa7.Core(arch.CoreID(t.regs.Affinity()))
}

func (t *GenericTimer) clock() uint32 {
	return uint32(t.regs.PhysicalCount())
}

// Freq reads CNTFRQ_EL0. It is never cached: emulators report a different
// value than silicon, and boot firmware may program it late.
func (t *GenericTimer) Freq() uint64 {
	return t.regs.CounterFrequency()
}

// Init replaces the calling core's control word with the CNTPNSIRQ enable
// alone, then enables the countdown. Any other source enabled on this core
// is disabled as a side effect.
func (t *GenericTimer) Init() error {
	core := t.core()
	if err := t.lic.ReplaceCoreMask(core, qa7.NonSecurePhysicalTimer.Bit()); err != nil {
		return err
	}
	t.regs.SetPhysicalTimerControl(arch.TimerEnable)
	debug.RecordTiming(debug.EvtInit, uint8(core), t.clock(), uint32(qa7.NonSecurePhysicalTimer.Bit()), 0)
	return nil
}

// Stop clears the calling core's whole control word, masking every local
// interrupt source of that core, not only the timer.
//
// The countdown is not disabled and the comparator keeps counting. The
// timer condition is level triggered: if the deadline has already passed, a
// later Init delivers it again at once. Arm with TickIn after Init to get a
// fresh deadline.
func (t *GenericTimer) Stop() error {
	core := t.core()
	if err := t.lic.ReplaceCoreMask(core, 0); err != nil {
		return err
	}
	debug.RecordTiming(debug.EvtStop, uint8(core), t.clock(), 0, 0)
	return nil
}

// Read converts CNTPCT_EL0 to microseconds, truncating. The result is
// non-decreasing for a fixed frequency. A zero frequency reads as 0.
func (t *GenericTimer) Read() uint64 {
	return TicksToUS(t.Freq(), t.regs.PhysicalCount())
}

// TickIn programs CNTP_TVAL_EL0 with freq*us/1e6 ticks. CNTP_TVAL_EL0 is 32
// bits wide: a count that does not fit fails with deverr.ErrInvalidParam
// instead of wrapping, and the caller must split the delay. Arming before
// Init, or with CNTFRQ_EL0 unset, fails with deverr.ErrBadState.
//
// Silicon sign-extends TVAL, so counts above 0x7FFFFFFF fire at once there.
// MaxTickUS gives the unsigned bound.
func (t *GenericTimer) TickIn(us uint64) error {
	const op = "timer.TickIn"
	core := t.core()

	freq := t.Freq()
	if freq == 0 {
		return deverr.New(op, deverr.ErrBadState, "CNTFRQ_EL0 is zero")
	}
	if t.regs.PhysicalTimerControl()&arch.TimerEnable == 0 {
		return deverr.New(op, deverr.ErrBadState, "countdown not enabled")
	}

	count, ok := TicksFromUS(freq, us)
	if !ok {
		debug.RecordTiming(debug.EvtReject, uint8(core), t.clock(), uint32(min(us, math.MaxUint32)), 0)
		debug.Println("timer: reject " + debug.Utoa(us) + "us on core " + debug.Utoa(uint64(core)))
		return deverr.New(op, deverr.ErrInvalidParam,
			debug.Utoa(us)+"us exceeds "+debug.Utoa(MaxTickUS(freq))+"us")
	}

	t.regs.SetPhysicalTimerValue(count)
	debug.RecordTiming(debug.EvtArm, uint8(core), t.clock(), uint32(min(us, math.MaxUint32)), count)
	return nil
}

// IsPending reports whether CNTPNSIRQ is asserted and delivered to the
// calling core. It reads false after Stop even when the deadline passed.
func (t *GenericTimer) IsPending() bool {
	// CoreID masks into range, so the only error case cannot occur
	pending, _ := t.lic.IsPending(t.core(), qa7.NonSecurePhysicalTimer)
	return pending
}

// TicksFromUS converts a duration to counter ticks. ok is false when the
// tick count does not fit the 32-bit comparator.
func TicksFromUS(freq, us uint64) (ticks uint32, ok bool) {
	hi, lo := bits.Mul64(freq, us)
	if hi != 0 {
		return 0, false
	}
	count := lo / usPerSecond
	if count > math.MaxUint32 {
		return 0, false
	}
	return uint32(count), true
}

// TicksToUS converts counter ticks to microseconds, truncating. It equals
// ticks*1e6/freq without overflowing the intermediate product.
func TicksToUS(freq, ticks uint64) uint64 {
	if freq == 0 {
		return 0
	}
	whole := ticks / freq
	rem := ticks % freq
	return whole*usPerSecond + rem*usPerSecond/freq
}

// MaxTickUS is the longest TickIn duration at freq: about 68.7 s at
// 62.5 MHz and 223.7 s at 19.2 MHz.
func MaxTickUS(freq uint64) uint64 {
	if freq == 0 {
		return 0
	}
	return ((math.MaxUint32+1)*usPerSecond - 1) / freq
}

var _ BasicTimer = (*GenericTimer)(nil)

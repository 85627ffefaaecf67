package qa7

import (
	"coretime/debug"
	"coretime/deverr"
	"coretime/hw/arch"
)

// Control is the local interrupt controller handle. It holds no state of its
// own; every call goes to the bank.
//
// Each core owns its own row. Control never writes another core's row on
// its own initiative, and callers must not either without synchronising the
// two cores themselves.
type Control struct {
	bank Bank
}

// New returns a Control over bank
func New(bank Bank) *Control {
	return &Control{bank: bank}
}

func checkCore(op string, core Core) error {
	if !core.Valid() {
		return deverr.New(op, deverr.ErrInvalidParam, "core "+debug.Utoa(uint64(core)))
	}
	return nil
}

// ReplaceCoreMask writes the whole timer control word of core. Every source
// not in mask is disabled for that core, including ones another driver
// enabled; use EnableSource to keep them.
func (c *Control) ReplaceCoreMask(core Core, mask Mask) error {
	const op = "qa7.ReplaceCoreMask"
	if err := checkCore(op, core); err != nil {
		return err
	}
	if mask&^ValidMask != 0 {
		return deverr.New(op, deverr.ErrInvalidParam, "reserved bits "+debug.Hex(uint64(mask&^ValidMask)))
	}
	c.bank.SetTimerControl(core, uint32(mask))
	debug.RecordTiming(debug.EvtMask, uint8(core), 0, uint32(mask), 0)
	return nil
}

// CoreMask reads back the timer control word of core
func (c *Control) CoreMask(core Core) (Mask, error) {
	if err := checkCore("qa7.CoreMask", core); err != nil {
		return 0, err
	}
	return Mask(c.bank.TimerControl(core)), nil
}

// EnableSource sets the IRQ enable of one timer source and keeps the rest of
// the word. The read-modify-write runs with local interrupts masked so a
// handler on the same core cannot interleave.
func (c *Control) EnableSource(core Core, src Source) error {
	return c.updateSource("qa7.EnableSource", core, src, true)
}

// DisableSource clears the IRQ enable of one timer source and keeps the rest
// of the word.
func (c *Control) DisableSource(core Core, src Source) error {
	return c.updateSource("qa7.DisableSource", core, src, false)
}

func (c *Control) updateSource(op string, core Core, src Source, on bool) error {
	if err := checkCore(op, core); err != nil {
		return err
	}
	if !src.IsTimer() {
		return deverr.New(op, deverr.ErrInvalidParam, "source "+src.String()+" has no timer enable bit")
	}

	state := arch.DisableInterrupts()
	defer arch.RestoreInterrupts(state)

	word := Mask(c.bank.TimerControl(core))
	if on {
		word |= src.Bit()
	} else {
		word &^= src.Bit()
	}
	c.bank.SetTimerControl(core, uint32(word))
	debug.RecordTiming(debug.EvtMask, uint8(core), 0, uint32(word), uint32(src))
	return nil
}

// IsPending reports whether src is currently asserted and delivered to core
func (c *Control) IsPending(core Core, src Source) (bool, error) {
	const op = "qa7.IsPending"
	if err := checkCore(op, core); err != nil {
		return false, err
	}
	if src >= numSources {
		return false, deverr.New(op, deverr.ErrInvalidParam, "source "+debug.Utoa(uint64(src)))
	}
	return c.bank.IRQSource(core)&(1<<src) != 0, nil
}

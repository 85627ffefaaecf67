package qa7

import "coretime/hw/arch"

// Bank is the per-core register row the Control operates on.
// Implementations are the memory-mapped block and simulated boards.
// Callers guarantee core < NumCores.
type Bank interface {
	// TimerControl reads the core's timer interrupt control word
	TimerControl(core Core) uint32

	// SetTimerControl writes the core's timer interrupt control word
	SetTimerControl(core Core, word uint32)

	// IRQSource reads the core's IRQ source (pending) register
	IRQSource(core Core) uint32
}

// MMIOBank is a Bank over a RegisterMap
type MMIOBank struct {
	regs *RegisterMap
}

// NewMMIOBank wraps a register map. On hardware regs points at LocalBase;
// under test it can be any RegisterMap.
func NewMMIOBank(regs *RegisterMap) *MMIOBank {
	return &MMIOBank{regs: regs}
}

func (b *MMIOBank) TimerControl(core Core) uint32 {
	arch.DeviceReadBarrier()
	return b.regs.TimerInterruptControl[core].Get()
}

func (b *MMIOBank) SetTimerControl(core Core, word uint32) {
	b.regs.TimerInterruptControl[core].Set(word)
	arch.DeviceWriteBarrier()
}

func (b *MMIOBank) IRQSource(core Core) uint32 {
	arch.DeviceReadBarrier()
	return b.regs.IRQSource[core].Get()
}

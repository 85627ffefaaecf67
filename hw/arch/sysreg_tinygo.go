//go:build tinygo && arm64

package arch

import "device/arm64"

// Native reads and writes the system registers of the executing core.
type Native struct{}

func (Native) Affinity() uint64 {
	return uint64(arm64.AsmFull("mrs {}, MPIDR_EL1", nil))
}

func (Native) CounterFrequency() uint64 {
	return uint64(arm64.AsmFull("mrs {}, CNTFRQ_EL0", nil))
}

func (Native) PhysicalCount() uint64 {
	// isb keeps the counter read from being hoisted above earlier code
	arm64.Asm("isb")
	return uint64(arm64.AsmFull("mrs {}, CNTPCT_EL0", nil))
}

func (Native) PhysicalTimerControl() uint32 {
	return uint32(arm64.AsmFull("mrs {}, CNTP_CTL_EL0", nil))
}

func (Native) SetPhysicalTimerControl(ctl uint32) {
	arm64.AsmFull("msr CNTP_CTL_EL0, {ctl}", map[string]interface{}{
		"ctl": uint64(ctl),
	})
	arm64.Asm("isb")
}

func (Native) SetPhysicalTimerValue(tval uint32) {
	arm64.AsmFull("msr CNTP_TVAL_EL0, {tval}", map[string]interface{}{
		"tval": uint64(tval),
	})
	arm64.Asm("isb")
}

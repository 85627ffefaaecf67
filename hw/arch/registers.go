// Package arch exposes the AArch64 system registers the time subsystem
// depends on. Firmware builds read the real registers; host builds supply
// any Registers implementation (see package sim).
package arch

// Registers is the per-core view of the architectural generic timer and the
// multiprocessor affinity register. Every method touches the registers of
// the core the caller is currently running on.
type Registers interface {
	// Affinity reads MPIDR_EL1.
	Affinity() uint64

	// CounterFrequency reads CNTFRQ_EL0 (Hz).
	CounterFrequency() uint64

	// PhysicalCount reads CNTPCT_EL0, the free-running physical counter.
	PhysicalCount() uint64

	// PhysicalTimerControl reads CNTP_CTL_EL0.
	PhysicalTimerControl() uint32

	// SetPhysicalTimerControl writes CNTP_CTL_EL0.
	SetPhysicalTimerControl(ctl uint32)

	// SetPhysicalTimerValue writes CNTP_TVAL_EL0, arming the comparator
	// tval ticks after the current count.
	SetPhysicalTimerValue(tval uint32)
}

// CNTP_CTL_EL0 bits (same layout for CNTV_CTL_EL0)
const (
	TimerEnable  = 1 << 0 // countdown enabled
	TimerIMask   = 1 << 1 // timer output masked
	TimerIStatus = 1 << 2 // condition met (read-only)
)

// MPIDR_EL1 Aff0 bits that enumerate the four Cortex-A53 cores
const coreIDMask = 0x3

// CoreID extracts the core number from an MPIDR_EL1 value.
func CoreID(mpidr uint64) uint8 {
	return uint8(mpidr & coreIDMask)
}

//go:build tinygo && arm64

package arch

import "device/arm64"

// State is the saved DAIF value
type State uintptr

// DisableInterrupts masks IRQ and FIQ on the executing core and returns the
// previous DAIF state
func DisableInterrupts() State {
	state := State(arm64.AsmFull("mrs {}, DAIF", nil))
	arm64.Asm("msr daifset, #3")
	return state
}

// RestoreInterrupts restores the DAIF state saved by DisableInterrupts
func RestoreInterrupts(state State) {
	arm64.AsmFull("msr DAIF, {state}", map[string]interface{}{
		"state": uint64(state),
	})
}

// DeviceWriteBarrier orders a device-memory store before later accesses
func DeviceWriteBarrier() {
	arm64.Asm("dsb st")
}

// DeviceReadBarrier orders earlier accesses before a device-memory load
func DeviceReadBarrier() {
	arm64.Asm("dsb sy")
}

// Nop executes a single no-op instruction
func Nop() {
	arm64.Asm("nop")
}

//go:build !tinygo

package arch

import "sync/atomic"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// DisableInterrupts is a no-op on regular Go (for testing)
func DisableInterrupts() State {
	return 0
}

// RestoreInterrupts is a no-op on regular Go (for testing)
func RestoreInterrupts(state State) {
}

// DeviceWriteBarrier is a no-op on regular Go; host register models use
// atomics instead
func DeviceWriteBarrier() {
}

// DeviceReadBarrier is a no-op on regular Go
func DeviceReadBarrier() {
}

var nops atomic.Uint64

// Nop stands in for the no-op instruction. The atomic add keeps the compiler
// from deleting calibration loops.
func Nop() {
	nops.Add(1)
}

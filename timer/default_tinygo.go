//go:build tinygo && arm64 && (rpi3 || rpi3_qemu)

package timer

import (
	"coretime/hw/arch"
	"coretime/hw/qa7"
)

// New returns a timer bound to the QA7 block and the system registers of
// whichever core runs it
func New() *GenericTimer {
	return NewGeneric(qa7.New(qa7.Default()), arch.Native{})
}

// DelayUS busy-waits for us microseconds on the calling core
func DelayUS(us uint64) {
	// Init only fails for an out-of-range core, which CoreID rules out
	_ = Delay(New(), us)
}

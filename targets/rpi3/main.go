//go:build tinygo && arm64 && (rpi3 || rpi3_qemu)

package main

import (
	"coretime/debug"
	"coretime/hw/arch"
	"coretime/selftest"
	"coretime/timer"
)

// no-op loop timed once at boot
const calibrationCycles = 1000000

// pause between self-test rounds
const roundGapUS = 1000000

func main() {
	debug.SetWriter(func(s string) { println(s) })
	debug.SetEnabled(true)
	debug.InitAsync()

	core := arch.CoreID(arch.Native{}.Affinity())
	t := timer.New()

	println("coretime self-test on " + boardName + ", core " + debug.Utoa(uint64(core)) +
		", CNTFRQ_EL0 " + debug.Utoa(t.Freq()) + " Hz (nominal " + debug.Utoa(nominalFreq) + ")")

	r := &selftest.Runner{
		Timer: t,
		Core:  core,
		Emit:  func(s string) { println(s) },
	}

	if _, err := r.Calibrate(calibrationCycles); err != nil {
		fail(err)
	}

	for {
		if _, err := r.Run(selftest.DefaultDurations); err != nil {
			fail(err)
		}
		timer.DelayUS(roundGapUS)
	}
}

func fail(err error) {
	println("self-test failed: " + err.Error())
	debug.DumpTimingRing()
	for {
		arch.Nop()
	}
}

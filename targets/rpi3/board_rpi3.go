//go:build tinygo && arm64 && rpi3 && !rpi3_qemu

package main

const boardName = "rpi3"

// 19.2 MHz crystal, programmed into CNTFRQ_EL0 by the GPU firmware
const nominalFreq = 19200000

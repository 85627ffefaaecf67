//go:build tinygo && arm64 && rpi3_qemu

package main

const boardName = "rpi3-qemu"

// qemu's raspi3b generic timer
const nominalFreq = 62500000

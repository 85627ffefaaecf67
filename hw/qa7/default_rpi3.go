//go:build tinygo && (rpi3 || rpi3_qemu)

package qa7

import "unsafe"

var local = (*RegisterMap)(unsafe.Pointer(LocalBase))

// Default returns the bank of the local peripheral block at LocalBase
func Default() *MMIOBank {
	return NewMMIOBank(local)
}

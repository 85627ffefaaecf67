//go:build !tinygo

package qa7

import "sync/atomic"

// Register32 stands in for runtime/volatile.Register32 on regular Go so the
// register map can live in ordinary memory under test.
type Register32 struct {
	Reg uint32
}

// Get reads the register
func (r *Register32) Get() uint32 {
	return atomic.LoadUint32(&r.Reg)
}

// Set writes the register
func (r *Register32) Set(value uint32) {
	atomic.StoreUint32(&r.Reg, value)
}

// HasBits reports whether any bit of value is set
func (r *Register32) HasBits(value uint32) bool {
	return r.Get()&value != 0
}

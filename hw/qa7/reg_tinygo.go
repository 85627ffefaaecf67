//go:build tinygo

package qa7

import "runtime/volatile"

// Register32 is a memory-mapped device register
type Register32 = volatile.Register32

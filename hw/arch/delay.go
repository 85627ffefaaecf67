package arch

// DelayCycles executes cycles no-op instructions. It does not depend on the
// counter frequency, so it can run before the generic timer is set up.
func DelayCycles(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		Nop()
	}
}

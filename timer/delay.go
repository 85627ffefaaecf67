package timer

import "coretime/hw/arch"

// Delay initialises t and spins until Read has advanced by at least us.
// The calling core does nothing else for the whole duration.
func Delay(t BasicTimer, us uint64) error {
	if err := t.Init(); err != nil {
		return err
	}
	start := t.Read()
	for t.Read()-start < us {
		arch.Nop()
	}
	return nil
}

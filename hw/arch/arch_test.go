package arch

import "testing"

func TestCoreID(t *testing.T) {
	testCases := []struct {
		name  string
		mpidr uint64
		want  uint8
	}{
		{"core0", 0x80000000, 0},
		{"core1", 0x80000001, 1},
		{"core3", 0x80000003, 3},
		{"cluster bits ignored", 0x80000102, 2},
		{"aff0 above core count", 0x80000007, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoreID(tc.mpidr); got != tc.want {
				t.Errorf("CoreID(%#x) = %d, want %d", tc.mpidr, got, tc.want)
			}
		})
	}
}

func TestDelayCyclesExecutesEachNop(t *testing.T) {
	before := nops.Load()
	DelayCycles(1000)
	if got := nops.Load() - before; got != 1000 {
		t.Errorf("Expected 1000 no-ops, got %d", got)
	}

	before = nops.Load()
	DelayCycles(0)
	if got := nops.Load() - before; got != 0 {
		t.Errorf("Expected no no-ops for zero cycles, got %d", got)
	}
}

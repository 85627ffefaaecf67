package debug

import (
	"strings"
	"testing"
	"time"
)

func captureWriter() (*[]string, func()) {
	var lines []string
	SetWriter(func(s string) { lines = append(lines, s) })
	return &lines, func() {
		SetWriter(nil)
		SetEnabled(false)
	}
}

func TestPrintlnHonoursEnable(t *testing.T) {
	lines, restore := captureWriter()
	defer restore()

	Println("hidden")
	if len(*lines) != 0 {
		t.Fatalf("Expected no output while disabled, got %v", *lines)
	}

	SetEnabled(true)
	Println("shown")
	if len(*lines) != 1 || (*lines)[0] != "shown" {
		t.Errorf("Expected [shown], got %v", *lines)
	}
}

func TestAsyncQueueDrains(t *testing.T) {
	got := make(chan string, 4)
	SetWriter(func(s string) { got <- s })
	defer SetWriter(nil)

	InitAsync()
	Async("dropped while disabled")

	SetEnabled(true)
	defer SetEnabled(false)
	Async("first")
	Async("second")

	for _, want := range []string{"first", "second"} {
		select {
		case msg := <-got:
			if msg != want {
				t.Errorf("Expected %q, got %q", want, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("Queue never delivered %q", want)
		}
	}
}

func TestTimingRingOrderAndWrap(t *testing.T) {
	ClearTimingRing()
	defer ClearTimingRing()

	for i := 0; i < TimingRingSize+3; i++ {
		RecordTiming(EvtArm, 1, uint32(i), uint32(i*10), 0)
	}

	events := TimingEvents(1)
	if len(events) != TimingRingSize {
		t.Fatalf("Expected %d events, got %d", TimingRingSize, len(events))
	}
	if events[0].Clock != 3 {
		t.Errorf("Expected oldest surviving clock 3, got %d", events[0].Clock)
	}
	if last := events[len(events)-1]; last.Clock != TimingRingSize+2 {
		t.Errorf("Expected newest clock %d, got %d", TimingRingSize+2, last.Clock)
	}
}

func TestDumpTimingRing(t *testing.T) {
	lines, restore := captureWriter()
	defer restore()
	ClearTimingRing()
	defer ClearTimingRing()

	RecordTiming(EvtInit, 2, 100, 2, 0)
	RecordTiming(EvtReject, 2, 150, 90000000, 0)
	DumpTimingRing()

	out := strings.Join(*lines, "\n")
	for _, want := range []string{"INIT core=2 clock=100 v1=2", "REJECT! core=2 clock=150 v1=90000000", "End Dump"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump missing %q:\n%s", want, out)
		}
	}
}

func TestTimingRingsArePerCore(t *testing.T) {
	ClearTimingRing()
	defer ClearTimingRing()

	RecordTiming(EvtInit, 0, 1, 0, 0)
	RecordTiming(EvtArm, 3, 2, 0, 0)
	RecordTiming(EvtStop, 3, 3, 0, 0)

	if n := len(TimingEvents(0)); n != 1 {
		t.Errorf("Expected 1 event on core 0, got %d", n)
	}
	events := TimingEvents(3)
	if len(events) != 2 || events[0].EventType != EvtArm || events[1].EventType != EvtStop {
		t.Errorf("Unexpected core 3 events %+v", events)
	}
	if n := len(TimingEvents(1)); n != 0 {
		t.Errorf("Expected no events on core 1, got %d", n)
	}
}

func TestTimingDisabled(t *testing.T) {
	ClearTimingRing()
	SetTimingEnabled(false)
	defer SetTimingEnabled(true)

	RecordTiming(EvtStop, 0, 1, 0, 0)
	if n := len(TimingEvents(0)); n != 0 {
		t.Errorf("Expected no events while capture is off, got %d", n)
	}
}

func TestFormatting(t *testing.T) {
	testCases := []struct {
		name string
		got  string
		want string
	}{
		{"zero", Utoa(0), "0"},
		{"freq", Utoa(62500000), "62500000"},
		{"max", Utoa(18446744073709551615), "18446744073709551615"},
		{"hex zero", Hex(0), "0x0"},
		{"hex base", Hex(0x40000000), "0x40000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, tc.got)
			}
		})
	}
}

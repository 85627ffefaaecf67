// Package debug is the diagnostic output of the time subsystem. The platform
// supplies the writer (UART, semihosting, a test buffer); nothing is printed
// until output is enabled.
package debug

// Writer is a function type for writing debug messages
type Writer func(string)

// TimingEvent captures a timer operation for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Core      uint8  // Core the operation ran on
	Clock     uint32 // Low 32 bits of the physical counter, or 0 (see event codes)
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtInit    = 1 // timer delivery unmasked, countdown enabled
	EvtStop    = 2 // core control word cleared
	EvtArm     = 3 // comparator programmed (Value1 = us, Value2 = ticks)
	EvtReject  = 4 // arm refused (Value1 = us)
	EvtMask    = 5 // QA7 control word written (Value1 = new word, Value2 = source for single-source updates; Clock = 0)
	EvtPending = 6 // alarm seen pending by a poller (Value1 = armed us, Value2 = elapsed us; Clock = low bits of Read)
)

const (
	TimingRingSize = 32 // Keep last 32 events per core for post-mortem
	MaxCores       = 4
)

var (
	// writer is the global debug print function (can be set by platform code)
	writer Writer = func(s string) {}

	// enabled controls whether debug output is active
	enabled bool = false

	// one ring per core: a core only ever writes its own
	timingRing     [MaxCores][TimingRingSize]TimingEvent
	timingRingHead [MaxCores]uint8
	timingEnabled  bool = true

	asyncChan chan string
)

// SetWriter sets the platform-specific debug output function
func SetWriter(w Writer) {
	if w == nil {
		w = func(string) {}
	}
	writer = w
}

// SetEnabled enables or disables debug output
func SetEnabled(on bool) {
	enabled = on
}

// Enabled returns whether debug output is enabled
func Enabled() bool {
	return enabled
}

// SetTimingEnabled turns capture into the timing ring on or off
func SetTimingEnabled(on bool) {
	timingEnabled = on
}

// InitAsync starts the async debug output goroutine.
// Call this after SetWriter.
func InitAsync() {
	asyncChan = make(chan string, 16)
	go asyncWorker(asyncChan)
}

func asyncWorker(ch chan string) {
	for msg := range ch {
		writer(msg)
	}
}

// Println writes a debug message if output is enabled
func Println(msg string) {
	if enabled {
		writer(msg)
	}
}

// Async queues a debug message without blocking.
// The message is dropped if the queue is full or was never started.
func Async(msg string) {
	if asyncChan == nil || !enabled {
		return
	}
	select {
	case asyncChan <- msg:
	default:
	}
}

// RecordTiming captures a timing event in the ring buffer
func RecordTiming(eventType, core uint8, clock, value1, value2 uint32) {
	if !timingEnabled {
		return
	}
	ring := core % MaxCores
	idx := timingRingHead[ring]
	timingRing[ring][idx] = TimingEvent{
		EventType: eventType,
		Core:      core,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead[ring] = (idx + 1) % TimingRingSize
}

// TimingEvents returns the events recorded on core, oldest first
func TimingEvents(core uint8) []TimingEvent {
	ring := core % MaxCores
	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead[ring]
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[ring][(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue
		}
		events = append(events, evt)
	}
	return events
}

// EventName returns the dump label of an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtInit:
		return "INIT"
	case EvtStop:
		return "STOP"
	case EvtArm:
		return "ARM"
	case EvtReject:
		return "REJECT!"
	case EvtMask:
		return "MASK"
	case EvtPending:
		return "PENDING"
	default:
		return "UNKNOWN"
	}
}

// DumpTimingRing writes the timing ring through the debug writer regardless
// of the enable switch. Call on shutdown or after a fault.
func DumpTimingRing() {
	writer("[TIMING] === Timing Ring Dump ===")
	for core := uint8(0); core < MaxCores; core++ {
		for _, evt := range TimingEvents(core) {
			writer("[TIMING] " + EventName(evt.EventType) +
				" core=" + Utoa(uint64(evt.Core)) +
				" clock=" + Utoa(uint64(evt.Clock)) +
				" v1=" + Utoa(uint64(evt.Value1)) +
				" v2=" + Utoa(uint64(evt.Value2)))
		}
	}
	writer("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	for i := range timingRing {
		timingRing[i] = [TimingRingSize]TimingEvent{}
		timingRingHead[i] = 0
	}
}

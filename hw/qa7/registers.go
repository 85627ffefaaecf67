// Package qa7 drives the BCM2836/7 local peripheral block ("QA7"): per-core
// routing and enabling of the generic-timer, mailbox and local-timer
// interrupts.
package qa7

// LocalBase is the physical address of the local peripheral block.
const LocalBase = uintptr(0x40000000)

// NumCores is the number of Cortex-A53 cores served by the block.
const NumCores = 4

// RegisterMap is the layout of the block (QA7_rev3.4.pdf, section 4).
type RegisterMap struct {
	Control                 Register32           // 0x00
	_                       Register32           // 0x04
	Prescaler               Register32           // 0x08
	GPUInterruptRouting     Register32           // 0x0C
	PMUInterruptRoutingSet  Register32           // 0x10
	PMUInterruptRoutingClr  Register32           // 0x14
	_                       Register32           // 0x18
	CoreTimerLower32        Register32           // 0x1C
	CoreTimerUpper32        Register32           // 0x20
	LocalInterruptRouting   Register32           // 0x24
	_                       Register32           // 0x28
	AXIOutstandingCounters  Register32           // 0x2C
	AXIOutstandingIRQ       Register32           // 0x30
	LocalTimerControl       Register32           // 0x34
	LocalTimerWriteFlags    Register32           // 0x38
	_                       Register32           // 0x3C
	TimerInterruptControl   [NumCores]Register32 // 0x40-0x4C
	MailboxInterruptControl [NumCores]Register32 // 0x50-0x5C
	IRQSource               [NumCores]Register32 // 0x60-0x6C
	FIQSource               [NumCores]Register32 // 0x70-0x7C
}

// Core identifies one of the four cores.
type Core uint8

// Valid reports whether c addresses a row of the register bank.
func (c Core) Valid() bool {
	return c < NumCores
}

// Source is a bit position in a core's IRQ/FIQ source register. Positions
// 0-3 are also the IRQ enable bits of the core's timer control word.
type Source uint8

const (
	SecurePhysicalTimer    Source = 0 // CNTPSIRQ
	NonSecurePhysicalTimer Source = 1 // CNTPNSIRQ
	HypervisorTimer        Source = 2 // CNTHPIRQ
	VirtualTimer           Source = 3 // CNTVIRQ
	Mailbox0               Source = 4
	Mailbox1               Source = 5
	Mailbox2               Source = 6
	Mailbox3               Source = 7
	GPU                    Source = 8
	PMU                    Source = 9
	AXIOutstanding         Source = 10 // core 0 only
	LocalTimer             Source = 11

	numSources = 12
)

var sourceNames = [numSources]string{
	"CNTPSIRQ", "CNTPNSIRQ", "CNTHPIRQ", "CNTVIRQ",
	"MAILBOX0", "MAILBOX1", "MAILBOX2", "MAILBOX3",
	"GPU", "PMU", "AXI", "LOCAL_TIMER",
}

func (s Source) String() string {
	if s < numSources {
		return sourceNames[s]
	}
	return "UNKNOWN"
}

// IsTimer reports whether s is one of the four generic-timer sources that
// the timer control word can enable.
func (s Source) IsTimer() bool {
	return s <= VirtualTimer
}

// Bit returns the IRQ enable bit of s in a timer control word.
func (s Source) Bit() Mask {
	return 1 << s
}

// FIQBit returns the FIQ enable bit of a timer source. FIQ takes precedence
// over IRQ when both are set.
func (s Source) FIQBit() Mask {
	return 1 << (s + 4)
}

// Mask is a core's timer interrupt control word.
type Mask uint32

// ValidMask covers the IRQ (bits 0-3) and FIQ (bits 4-7) enables; the rest
// of the word is reserved.
const ValidMask Mask = 0xFF

// Has reports whether the IRQ enable of s is set.
func (m Mask) Has(s Source) bool {
	return s.IsTimer() && m&s.Bit() != 0
}

package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a debounce transition for post-mortem analysis
type Event struct {
	EventType uint8  // Event type code
	Conn      uint8  // Connection index in the wiring table
	Clock     uint32 // Jiffies at the event, 0 when unknown
	Value     uint8  // Context-dependent value
}

// Event type codes
const (
	EvtAssert  = 1 // connection confirmed an assertion; Value is the output level after
	EvtRelease = 2 // connection confirmed a release; Value is the output level after
	EvtFault   = 3 // fatal fault; Value is the reason code
)

// EventRingSize keeps the last transitions for post-mortem
const EventRingSize = 32

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// Transition capture ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]Event
	eventRingHead uint8 // Next write position
)

// SetDebugWriter sets the platform-specific debug output function.
// This allows platforms to redirect output to UART, USB, a log file, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// DebugPrintln writes a message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures a transition in the ring buffer.
// Always non-blocking and cheap enough for the scan loop.
func RecordEvent(eventType, conn uint8, clock uint32, value uint8) {
	idx := eventRingHead
	eventRing[idx] = Event{
		EventType: eventType,
		Conn:      conn,
		Clock:     clock,
		Value:     value,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// DumpEventRing outputs the transition ring, oldest first. Called on
// shutdown, after time-critical code has stopped.
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Transition Ring Dump ===")

	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		idx := (start + i) % EventRingSize
		evt := &eventRing[idx]
		if evt.EventType == 0 {
			continue // Empty slot
		}

		var name string
		switch evt.EventType {
		case EvtAssert:
			name = "ASSERT"
		case EvtRelease:
			name = "RELEASE"
		case EvtFault:
			name = "FAULT!"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[EVENTS] " + name +
			" conn=" + itoa(int(evt.Conn)) +
			" clock=" + utoa(evt.Clock) +
			" value=" + itoa(int(evt.Value)))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEventRing clears the transition buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
}

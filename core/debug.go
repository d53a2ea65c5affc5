package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// AcqEvent captures an acquisition pipeline event for post-mortem analysis
type AcqEvent struct {
	EventType uint8  // Event type code
	Value     uint32 // Context-dependent value
}

// Event type codes
const (
	EvtEdge       = 1 // Data-ready edge accepted
	EvtEdgeBusy   = 2 // Data-ready edge ignored, session active
	EvtFrameDone  = 3 // Completion notification, frame pushed
	EvtOverflow   = 4 // Ring buffer overflow, oldest frame lost
	EvtCommand    = 5 // Inbound command, session aborted
	EvtDisconnect = 6 // Link lost, session aborted
)

const (
	AcqRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	// Disabled by default; the acquisition burst is timing sensitive
	debugEnabled bool = false

	// Acquisition event ring (non-blocking, for post-mortem)
	acqRing     [AcqRingSize]AcqEvent
	acqRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, RTT, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures an acquisition event in the ring buffer.
// Non-blocking and safe from notification contexts.
func RecordEvent(eventType uint8, value uint32) {
	idx := acqRingHead
	acqRing[idx] = AcqEvent{EventType: eventType, Value: value}
	acqRingHead = (idx + 1) % AcqRingSize
}

// DumpEventRing outputs the event ring buffer (call on shutdown/error)
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Acquisition Event Dump ===")

	start := acqRingHead
	for i := uint8(0); i < AcqRingSize; i++ {
		idx := (start + i) % AcqRingSize
		evt := &acqRing[idx]
		if evt.EventType == 0 {
			continue // Empty slot
		}

		var name string
		switch evt.EventType {
		case EvtEdge:
			name = "EDGE"
		case EvtEdgeBusy:
			name = "EDGE_BUSY"
		case EvtFrameDone:
			name = "FRAME_DONE"
		case EvtOverflow:
			name = "OVERFLOW!"
		case EvtCommand:
			name = "COMMAND"
		case EvtDisconnect:
			name = "DISCONNECT"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[EVENTS] " + name + " v=" + utoa(evt.Value))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

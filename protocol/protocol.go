// Package protocol implements the wire formats of the ultrasound probe:
// the chunked BLE framing used to stream acquisition frames to the host,
// and the serial packet format spoken by the USB receiver dongle.
package protocol

// Version represents the probe firmware version
const Version = "0.1.0"

// Acquisition frame geometry. One frame is produced by a fixed number of
// equal-width bus transfers and is streamed to the host as one message per
// transfer region. These values are part of the wire contract with the
// host application and must not be changed independently of it.
const (
	XfersPerFrame = 4   // Bus transfers per acquisition frame
	BytesPerXfer  = 201 // Bytes moved by one bus transfer
	FrameSize     = XfersPerFrame * BytesPerXfer

	// StartOfFrame marks the first byte of the first message of a frame.
	// The sensor controller places it one byte into the frame, which is
	// why message 0 is sent from offset 1.
	StartOfFrame = 0xFF
)

// Package core implements the hardware-independent firmware core of the
// wireless ultrasound probe: the acquisition pipeline from the sensor-side
// bus to the wireless link. Platform code registers concrete drivers for
// the abstract interfaces declared in the *_hal.go files.
package core

import "wulpus/protocol"

// BLE configuration
const (
	BLEDeviceName      = "WULPUS_PROBE" // Advertised device name
	BLEAdvInterval     = 64             // Advertising interval, 0.625 ms units (40 ms)
	BLEMaxConnHandlers = 5              // Maximum registered link listeners
)

// GPIO configuration
const (
	GPIONumLED          = 17 // On-board LED pin
	GPIONumLinkConn     = 18 // Link-connected indicator output pin
	GPIONumDataReady    = 13 // Data ready input pin from the sensor controller
	GPIOMaxEdgeHandlers = 5  // Maximum registered data-ready edge listeners
	GPIOLEDInvert       = true
)

// Sensor bus configuration
const (
	SPINumCS   = 7
	SPINumSCK  = 8
	SPINumMISO = 9
	SPINumMOSI = 10

	// SPIPacketIntervalMicros is the fixed period between autonomous bus
	// transfers during an acquisition burst.
	SPIPacketIntervalMicros = 300
)

// Acquisition geometry, shared with the host via the protocol package
const (
	XfersPerFrame     = protocol.XfersPerFrame
	BytesPerXfer      = protocol.BytesPerXfer
	FrameSize         = protocol.FrameSize
	NumBufferedFrames = 35 // Frame ring buffer capacity
	MaxEndHandlers    = 5  // Maximum registered transfer-end listeners
)

package serial

import (
	"io"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (the receiver dongle runs its CDC link at 4 MBaud)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the default configuration for the receiver dongle
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        4000000, // Dongle CDC baud rate
		ReadTimeout: 0,       // Blocking reads; records arrive at frame rate
	}
}

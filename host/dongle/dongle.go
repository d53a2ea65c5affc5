// Package dongle talks to the USB receiver dongle that bridges the
// probe's wireless link to a serial port: configuration payloads go out,
// acquisition records come back.
package dongle

import (
	"fmt"

	"wulpus/host/serial"
	"wulpus/protocol"
)

// Dongle represents an open connection to the receiver dongle.
type Dongle struct {
	port   serial.Port
	reader *protocol.DongleReader
}

// Open connects to the dongle on the given serial device. acqLength is
// the number of RF samples per acquisition, which must match the probe's
// active configuration.
func Open(device string, baud int, acqLength int) (*Dongle, error) {
	cfg := serial.DefaultConfig(device)
	if baud != 0 {
		cfg.Baud = baud
	}

	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open dongle: %w", err)
	}

	return &Dongle{
		port:   port,
		reader: protocol.NewDongleReader(port, acqLength),
	}, nil
}

// SendConfig forwards a configuration payload to the probe. Stale
// buffered data is discarded first so the next record read starts clean.
func (d *Dongle) SendConfig(payload []byte) error {
	if err := d.port.Flush(); err != nil {
		return fmt.Errorf("failed to flush dongle buffers: %w", err)
	}
	if _, err := d.port.Write(payload); err != nil {
		return fmt.Errorf("failed to send config: %w", err)
	}
	return nil
}

// ReceiveRecord blocks until the next acquisition record arrives.
func (d *Dongle) ReceiveRecord() (protocol.DongleRecord, error) {
	rec, err := d.reader.ReadRecord()
	if err != nil {
		return rec, fmt.Errorf("failed to read record: %w", err)
	}
	return rec, nil
}

// Close closes the serial connection.
func (d *Dongle) Close() error {
	return d.port.Close()
}

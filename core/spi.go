package core

import "errors"

var ErrPayloadTooLarge = errors.New("configuration payload exceeds transfer width")

// TransferEngine owns the sensor-bus transfer buffers and wraps the SPI
// driver: it points the autonomous receive sequence at frame slots and
// performs blocking configuration writes. The outbound buffer is single
// owner (command path); a new configuration must not be written while a
// blocking send is in progress.
type TransferEngine struct {
	driver SPIDriver
	tx     [BytesPerXfer]byte // Outbound buffer, also clocked out during acquisitions
}

// NewTransferEngine creates a TransferEngine on the given driver.
func NewTransferEngine(driver SPIDriver) *TransferEngine {
	return &TransferEngine{driver: driver}
}

// Init programs the fixed bus parameters and describes the autonomous
// transfer sequence. Failure here is fatal for the firmware: there is no
// degraded mode without the sensor bus.
func (e *TransferEngine) Init() error {
	config := SPIConfig{
		CSPin:    SPINumCS,
		SCKPin:   SPINumSCK,
		MISOPin:  SPINumMISO,
		MOSIPin:  SPINumMOSI,
		Rate:     8000000,
		Mode:     1,
		MSBFirst: true,
	}
	if err := e.driver.Configure(config); err != nil {
		return err
	}
	return e.driver.SetupTransfer(e.tx[:], BytesPerXfer)
}

// Arm points the next autonomous sequence at destSlot, replacing the
// previous destination. destSlot contents are undefined until the
// completion notification fires.
func (e *TransferEngine) Arm(destSlot []byte) {
	e.driver.SetRxBuffer(destSlot)
}

// SendBlocking writes a configuration payload to the sensor controller,
// zero-padded to the fixed transfer width. Used for the one-shot initial
// setup and for mid-stream reconfiguration.
func (e *TransferEngine) SendBlocking(payload []byte) error {
	if len(payload) > len(e.tx) {
		return ErrPayloadTooLarge
	}

	n := copy(e.tx[:], payload)
	for i := n; i < len(e.tx); i++ {
		e.tx[i] = 0
	}

	return e.driver.SendBlocking(e.tx[:])
}

// Abort halts any in-progress autonomous sequence. Idempotent.
func (e *TransferEngine) Abort() {
	e.driver.Abort()
}

package core

// SPIMode represents SPI clock polarity and phase (0-3)
// Mode 0: CPOL=0, CPHA=0 (clock idle low, sample on rising edge)
// Mode 1: CPOL=0, CPHA=1 (clock idle low, sample on falling edge)
// Mode 2: CPOL=1, CPHA=0 (clock idle high, sample on falling edge)
// Mode 3: CPOL=1, CPHA=1 (clock idle high, sample on rising edge)
type SPIMode uint8

// SPIConfig holds the fixed bus parameters. They are programmed once at
// initialization and never changed at runtime.
type SPIConfig struct {
	CSPin    uint32
	SCKPin   uint32
	MISOPin  uint32
	MOSIPin  uint32
	Rate     uint32 // Clock rate in Hz
	Mode     SPIMode
	MSBFirst bool
}

// SPIDriver is the abstract sensor-bus interface the core uses.
// Platform code implements it on top of a DMA-capable SPI peripheral.
type SPIDriver interface {
	// Configure programs the fixed bus parameters.
	Configure(config SPIConfig) error

	// SetupTransfer describes the autonomous repeating transfer: each
	// hardware trigger moves xferLen bytes out of tx and into the
	// current receive buffer, advancing the receive pointer afterwards.
	// No transfer starts until the event router fires the start task.
	SetupTransfer(tx []byte, xferLen int) error

	// SetRxBuffer retargets the autonomous reception at a new
	// destination, replacing the previous one.
	SetRxBuffer(buf []byte)

	// SendBlocking performs one immediate fixed-width bus write and
	// returns when it has finished.
	SendBlocking(tx []byte) error

	// Abort halts any in-progress transfer immediately. Data already
	// moved into the current receive buffer is undefined. Safe to call
	// when nothing is running.
	Abort()
}

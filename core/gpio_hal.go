package core

// PinDriver is the abstract GPIO interface the core uses: the data-ready
// input from the sensor controller plus two status outputs.
type PinDriver interface {
	// ConfigureDataReadyInput configures pin for edge sensing and
	// installs the edge callback. The callback runs in a hardware
	// notification context with the observed polarity (true for a
	// low-to-high transition) and must not block.
	ConfigureDataReadyInput(pin uint32, onEdge func(rising bool)) error

	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin uint32) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin uint32, value bool) error
}

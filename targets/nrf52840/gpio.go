//go:build nrf52840

package main

import (
	"machine"
)

// PinDriver implements the data-ready input and the indicator outputs
// on top of the machine package. The GPIOTE channel behind SetInterrupt
// fires on the rising edge only, matching the sensor controller's
// active-high ready line.
type PinDriver struct {
	onEdge func(rising bool)
}

func NewPinDriver() *PinDriver {
	return &PinDriver{}
}

func (p *PinDriver) ConfigureDataReadyInput(pin uint32, onEdge func(rising bool)) error {
	p.onEdge = onEdge
	in := machine.Pin(pin)
	in.Configure(machine.PinConfig{Mode: machine.PinInput})
	return in.SetInterrupt(machine.PinRising, func(machine.Pin) {
		p.onEdge(true)
	})
}

func (p *PinDriver) ConfigureOutput(pin uint32) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

func (p *PinDriver) SetPin(pin uint32, value bool) error {
	machine.Pin(pin).Set(value)
	return nil
}

//go:build nrf52840

package main

import (
	"errors"
	"machine"
	"unsafe"

	"device/nrf"

	"wulpus/core"
)

// SPIMDriver drives SPIM0 with EasyDMA. The transmit and receive
// pointers are programmed up front and transfers are started by the
// event router, not by the CPU, so the per-transfer path touches no
// code at all. The receive side uses list mode so MAXCNT-sized chunks
// land back to back inside the frame slot.
type SPIMDriver struct {
	spim    *nrf.SPIM_Type
	csPin   machine.Pin
	xferLen uint32
}

func NewSPIMDriver() *SPIMDriver {
	return &SPIMDriver{spim: nrf.SPIM0}
}

func (d *SPIMDriver) Configure(config core.SPIConfig) error {
	spim := d.spim

	spim.ENABLE.Set(nrf.SPIM_ENABLE_ENABLE_Disabled)

	spim.PSEL.SCK.Set(config.SCKPin)
	spim.PSEL.MOSI.Set(config.MOSIPin)
	spim.PSEL.MISO.Set(config.MISOPin)

	switch config.Rate {
	case 8000000:
		spim.FREQUENCY.Set(nrf.SPIM_FREQUENCY_FREQUENCY_M8)
	case 4000000:
		spim.FREQUENCY.Set(nrf.SPIM_FREQUENCY_FREQUENCY_M4)
	case 1000000:
		spim.FREQUENCY.Set(nrf.SPIM_FREQUENCY_FREQUENCY_M1)
	default:
		return errors.New("spim: unsupported clock rate")
	}

	var cfg uint32
	if !config.MSBFirst {
		cfg |= nrf.SPIM_CONFIG_ORDER_LsbFirst << nrf.SPIM_CONFIG_ORDER_Pos
	}
	if config.Mode&0x1 != 0 {
		cfg |= nrf.SPIM_CONFIG_CPHA_Trailing << nrf.SPIM_CONFIG_CPHA_Pos
	}
	if config.Mode&0x2 != 0 {
		cfg |= nrf.SPIM_CONFIG_CPOL_ActiveLow << nrf.SPIM_CONFIG_CPOL_Pos
	}
	spim.CONFIG.Set(cfg)

	// SPIM0 has no hardware chip select. The sensor controller is the
	// only peer on the bus, so CS stays asserted between sessions.
	d.csPin = machine.Pin(config.CSPin)
	d.csPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.csPin.Low()

	spim.ENABLE.Set(nrf.SPIM_ENABLE_ENABLE_Enabled)
	return nil
}

func (d *SPIMDriver) SetupTransfer(tx []byte, xferLen int) error {
	if xferLen <= 0 || xferLen > len(tx) {
		return errors.New("spim: bad transfer length")
	}
	d.xferLen = uint32(xferLen)

	spim := d.spim
	spim.TXD.PTR.Set(uint32(uintptr(unsafe.Pointer(&tx[0]))))
	spim.TXD.MAXCNT.Set(d.xferLen)
	spim.RXD.MAXCNT.Set(d.xferLen)

	// List mode advances RXD.PTR by MAXCNT after every END event, so
	// successive triggered transfers fill the slot contiguously. The
	// transmit pointer is not listed and resends the same buffer.
	spim.RXD.LIST.Set(nrf.SPIM_RXD_LIST_LIST_ArrayList)
	spim.TXD.LIST.Set(nrf.SPIM_TXD_LIST_LIST_Disabled)
	return nil
}

func (d *SPIMDriver) SetRxBuffer(buf []byte) {
	d.spim.RXD.PTR.Set(uint32(uintptr(unsafe.Pointer(&buf[0]))))
}

func (d *SPIMDriver) SendBlocking(tx []byte) error {
	if len(tx) == 0 {
		return errors.New("spim: empty write")
	}
	spim := d.spim

	// Park reception for the duration of the write so the outbound
	// command does not clobber an armed frame slot.
	savedRxMax := spim.RXD.MAXCNT.Get()
	spim.RXD.MAXCNT.Set(0)
	spim.TXD.PTR.Set(uint32(uintptr(unsafe.Pointer(&tx[0]))))
	spim.TXD.MAXCNT.Set(uint32(len(tx)))

	spim.EVENTS_END.Set(0)
	spim.TASKS_START.Set(1)
	for spim.EVENTS_END.Get() == 0 {
	}
	spim.EVENTS_END.Set(0)

	spim.TXD.MAXCNT.Set(d.xferLen)
	spim.RXD.MAXCNT.Set(savedRxMax)
	return nil
}

func (d *SPIMDriver) Abort() {
	spim := d.spim
	spim.EVENTS_STOPPED.Set(0)
	spim.TASKS_STOP.Set(1)
	for spim.EVENTS_STOPPED.Get() == 0 {
	}
	spim.EVENTS_STOPPED.Set(0)
	spim.EVENTS_END.Set(0)
}

// startTaskAddr and endEventAddr expose the EasyDMA endpoints for the
// event router channels.
func (d *SPIMDriver) startTaskAddr() uint32 {
	return uint32(uintptr(unsafe.Pointer(&d.spim.TASKS_START)))
}

func (d *SPIMDriver) endEventAddr() uint32 {
	return uint32(uintptr(unsafe.Pointer(&d.spim.EVENTS_END)))
}

//go:build nrf52840

package main

import (
	"errors"
	"runtime/interrupt"
	"unsafe"

	"device/nrf"

	"wulpus/core"
)

// TimerRouterDriver chains two timers to the bus peripheral over PPI:
//
//	TIMER3 compare -> (ch0) -> SPIM START task
//	SPIM END event -> (ch1) -> TIMER4 COUNT task
//
// TIMER3 runs at 1 MHz and self-clears on compare, so it fires the bus
// every interval. TIMER4 runs in counter mode and its compare raises
// the only interrupt in the whole burst, once the configured number of
// transfers has finished.
type TimerRouterDriver struct {
	spi *SPIMDriver
}

// routerComplete is read from the TIMER4 interrupt handler, which must
// be a package-level function. Set once during Configure, before the
// interrupt is enabled.
var routerComplete func()

func NewTimerRouterDriver(spi *SPIMDriver) *TimerRouterDriver {
	return &TimerRouterDriver{spi: spi}
}

func (d *TimerRouterDriver) Configure(intervalMicros uint32, transferCount uint32, onComplete func()) error {
	if intervalMicros == 0 || transferCount == 0 {
		return errors.New("router: zero interval or count")
	}
	if onComplete == nil {
		return errors.New("router: nil completion callback")
	}

	interval := nrf.TIMER3
	interval.TASKS_STOP.Set(1)
	interval.MODE.Set(nrf.TIMER_MODE_MODE_Timer)
	interval.BITMODE.Set(nrf.TIMER_BITMODE_BITMODE_32Bit)
	interval.PRESCALER.Set(4) // 16 MHz / 2^4 = 1 tick per microsecond
	interval.CC[0].Set(intervalMicros)
	interval.SHORTS.Set(nrf.TIMER_SHORTS_COMPARE0_CLEAR)

	counter := nrf.TIMER4
	counter.TASKS_STOP.Set(1)
	counter.MODE.Set(nrf.TIMER_MODE_MODE_Counter)
	counter.BITMODE.Set(nrf.TIMER_BITMODE_BITMODE_32Bit)
	counter.CC[0].Set(transferCount)
	counter.EVENTS_COMPARE[0].Set(0)
	counter.INTENSET.Set(nrf.TIMER_INTENSET_COMPARE0)

	nrf.PPI.CH[0].EEP.Set(uint32(uintptr(unsafe.Pointer(&interval.EVENTS_COMPARE[0]))))
	nrf.PPI.CH[0].TEP.Set(d.spi.startTaskAddr())
	nrf.PPI.CH[1].EEP.Set(d.spi.endEventAddr())
	nrf.PPI.CH[1].TEP.Set(uint32(uintptr(unsafe.Pointer(&counter.TASKS_COUNT))))
	nrf.PPI.CHENSET.Set(1<<0 | 1<<1)

	routerComplete = onComplete
	intr := interrupt.New(nrf.IRQ_TIMER4, timer4Handler)
	intr.SetPriority(0x40)
	intr.Enable()
	return nil
}

func (d *TimerRouterDriver) ClearTimers() {
	nrf.TIMER3.TASKS_CLEAR.Set(1)
	nrf.TIMER4.TASKS_CLEAR.Set(1)
}

func (d *TimerRouterDriver) EnableTimers() {
	nrf.TIMER4.TASKS_START.Set(1)
	nrf.TIMER3.TASKS_START.Set(1)
}

func (d *TimerRouterDriver) DisableTimers() {
	nrf.TIMER3.TASKS_STOP.Set(1)
	nrf.TIMER4.TASKS_STOP.Set(1)
}

func timer4Handler(interrupt.Interrupt) {
	counter := nrf.TIMER4
	if counter.EVENTS_COMPARE[0].Get() != 0 {
		counter.EVENTS_COMPARE[0].Set(0)
		if routerComplete != nil {
			routerComplete()
		}
	}
}

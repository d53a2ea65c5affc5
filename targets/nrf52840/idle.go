//go:build nrf52840

package main

import "device/arm"

// WFEWaiter sleeps the CPU until the next event or interrupt. Every
// wakeup source in the pipeline (GPIOTE edge, timer compare, link
// event) sets the ARM event register, so the main loop spends the gaps
// between frames powered down.
type WFEWaiter struct{}

func (WFEWaiter) Wait() {
	arm.Asm("wfe")
}

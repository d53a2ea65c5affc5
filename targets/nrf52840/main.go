//go:build nrf52840

// Probe firmware entry point for the nRF52840. Registers the concrete
// drivers with the core and runs the acquisition loop.
package main

import (
	"context"

	"wulpus/core"
)

func main() {
	InitDebug()

	ring := core.NewFrameRing(core.NumBufferedFrames)

	spiDriver := NewSPIMDriver()
	engine := core.NewTransferEngine(spiDriver)

	routerDriver := NewTimerRouterDriver(spiDriver)
	trigger := core.NewTriggerController(routerDriver)

	dispatcher := core.NewEdgeDispatcher(NewPinDriver())

	linkDriver := NewNUSDriver()
	streamer := core.NewLinkStreamer(linkDriver)
	linkDriver.Bind(streamer)

	session := core.NewSessionController(ring, engine, trigger, dispatcher, streamer, WFEWaiter{})

	// Init order matters: the event router references the configured
	// SPI peripheral, and the link comes up last so no event arrives
	// before the pipeline is wired. Failures are unrecoverable.
	if err := session.Init(); err != nil {
		fatal("init: " + err.Error())
	}
	if err := linkDriver.Enable(); err != nil {
		fatal("link: " + err.Error())
	}
	if err := linkDriver.StartAdvertising(); err != nil {
		fatal("advertising: " + err.Error())
	}

	dispatcher.SetLED(true)

	session.Run(context.Background())
}

// fatal halts the firmware; there is no degraded mode without the
// peripherals.
func fatal(msg string) {
	println("FATAL: " + msg)
	core.DumpEventRing()
	for {
	}
}

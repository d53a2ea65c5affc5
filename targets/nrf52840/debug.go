//go:build nrf52840

package main

import "wulpus/core"

// InitDebug routes core debug output to the runtime console (RTT or
// UART, whichever the build is configured for) and turns it on. Only
// session-level events print; the per-transfer path never logs.
func InitDebug() {
	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(true)

	core.DebugPrintln("=== WULPUS probe debug console ===")
}

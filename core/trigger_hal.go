package core

// EventRouterDriver abstracts the hardware timer pair and the event
// router that drive an acquisition burst without CPU involvement:
//
//   - an interval timer whose compare event triggers one bus transfer
//     every period,
//   - a transfer counter incremented by the bus transfer-end event,
//     which stops the chain and raises the completion callback when it
//     reaches the configured transfer count.
//
// Both signal routes are wired once during Configure; the rest of the
// core never assumes any particular router mechanism exists.
type EventRouterDriver interface {
	// Configure programs the interval and transfer count and installs
	// the completion callback. The callback runs in a hardware
	// notification context and must not block.
	Configure(intervalMicros uint32, transferCount uint32, onComplete func()) error

	// ClearTimers resets both counters to zero.
	ClearTimers()

	// EnableTimers starts the autonomous transfer cadence.
	EnableTimers()

	// DisableTimers freezes both counters without clearing them. Safe
	// to call when already disabled.
	DisableTimers()
}
